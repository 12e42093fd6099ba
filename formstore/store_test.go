// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package formstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-form/models"
)

const sampleForms = `
forms:
  - id: onboarding
    formKey: 7
    title: Onboarding
    status: Published
    sections:
      - sectionId: s1
        title: About you
        fields:
          - fieldId: age
            label: Age
            type: number
            required: true
          - fieldId: dept
            label: Department
            type: radio
            options:
              - id: D1
                text: Ops
              - id: D2
                text: Eng
  - formKey: 8
    title: Draft survey
    status: Draft
    sections: []
`

func TestParseYAML(t *testing.T) {
	store, err := ParseYAML([]byte(sampleForms))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	form, err := store.GetByFormKey(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if form == nil {
		t.Fatal("expected form 7")
	}
	if form.ID != "onboarding" {
		t.Errorf("expected id onboarding, got %q", form.ID)
	}
	if !form.IsPublished() {
		t.Error("form 7 should be published")
	}
	if len(form.Sections) != 1 || len(form.Sections[0].Fields) != 2 {
		t.Fatalf("unexpected layout: %+v", form.Sections)
	}
	age := form.Sections[0].Fields[0]
	if !age.Required || age.Type != "number" {
		t.Errorf("unexpected age field: %+v", age)
	}
	if got := form.Sections[0].Fields[1].Options; len(got) != 2 || got[1].ID != "D2" {
		t.Errorf("unexpected options: %+v", got)
	}

	draft, _ := store.GetByFormKey(ctx, 8)
	if draft == nil || draft.ID == "" {
		t.Fatal("draft form should get a generated id")
	}

	missing, err := store.GetByFormKey(ctx, 99)
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for missing form, got (%v, %v)", missing, err)
	}
}

func TestParseYAMLRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "duplicate form key",
			doc:  "forms:\n  - formKey: 1\n  - formKey: 1\n",
			want: "duplicate formKey",
		},
		{
			name: "duplicate field id",
			doc: `forms:
  - formKey: 1
    sections:
      - fields:
          - fieldId: a
      - fields:
          - fieldId: a
`,
			want: "duplicate field id",
		},
		{
			name: "duplicate option id",
			doc: `forms:
  - formKey: 1
    sections:
      - fields:
          - fieldId: a
            type: radio
            options:
              - id: x
              - id: x
`,
			want: "duplicate option id",
		},
		{
			name: "choice field without options",
			doc: `forms:
  - formKey: 1
    sections:
      - fields:
          - fieldId: dept
            type: Dropdown
`,
			want: "choice field has no options",
		},
		{
			name: "missing form key",
			doc:  "forms:\n  - title: nope\n",
			want: "formKey must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.yaml")
	if err := os.WriteFile(path, []byte(sampleForms), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := LoadYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	published, err := store.ListPublished(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 || published[0].FormKey != 7 {
		t.Errorf("expected only form 7 published, got %+v", published)
	}

	if _, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	store := NewMemoryStore(models.Form{ID: "f1", FormKey: 3, Status: models.StatusDraft})
	store.Put(models.Form{ID: "f1", FormKey: 3, Status: models.StatusPublished})

	form, _ := store.GetByFormKey(context.Background(), 3)
	if !form.IsPublished() {
		t.Error("Put should replace the stored form")
	}
}

// TestMongoStore runs against a live server when TEST_MONGO_URI is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := ConnectMongo(ctx, uri, "quickly_form_test")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close(ctx)
	defer store.coll.Drop(ctx)

	form := models.Form{
		FormKey: 41,
		Title:   "Mongo form",
		Status:  models.StatusPublished,
		Sections: []models.Section{{
			SectionID: "s1",
			Fields:    []models.Field{{FieldID: "q1", Label: "Q1", Type: "shortText", Required: true}},
		}},
	}
	if err := store.Put(ctx, form); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetByFormKey(ctx, 41)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID == "" {
		t.Fatalf("expected stored form with id, got %+v", got)
	}
	if len(got.Sections) != 1 || got.Sections[0].Fields[0].FieldID != "q1" {
		t.Errorf("layout did not round trip: %+v", got.Sections)
	}

	published, err := store.ListPublished(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 {
		t.Errorf("expected 1 published form, got %d", len(published))
	}

	missing, err := store.GetByFormKey(ctx, 404)
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for missing form, got (%v, %v)", missing, err)
	}
}
