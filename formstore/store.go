// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package formstore

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-form/fields"
	"github.com/danielhkuo/quickly-form/models"
)

// Store gives read access to form definitions. GetByFormKey returns
// (nil, nil) when no form has the key.
type Store interface {
	GetByFormKey(ctx context.Context, formKey int) (*models.Form, error)
	ListPublished(ctx context.Context) ([]models.Form, error)
}

// MemoryStore keeps form definitions in process, keyed by form key.
type MemoryStore struct {
	mu    sync.RWMutex
	forms map[int]models.Form
}

func NewMemoryStore(forms ...models.Form) *MemoryStore {
	s := &MemoryStore{forms: make(map[int]models.Form, len(forms))}
	for _, f := range forms {
		s.Put(f)
	}
	return s
}

// Put adds or replaces the form with the same key. Forms without an id get
// a generated one.
func (s *MemoryStore) Put(f models.Form) models.Form {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.forms[f.FormKey] = f
	s.mu.Unlock()
	return f
}

func (s *MemoryStore) GetByFormKey(_ context.Context, formKey int) (*models.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.forms[formKey]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (s *MemoryStore) ListPublished(_ context.Context) ([]models.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Form, 0, len(s.forms))
	for _, f := range s.forms {
		if f.IsPublished() {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FormKey < out[j].FormKey })
	return out, nil
}

type formsFile struct {
	Forms []models.Form `yaml:"forms"`
}

// LoadYAML reads a file of the form
//
//	forms:
//	  - formKey: 7
//	    status: Published
//	    sections: [...]
//
// into a new MemoryStore.
func LoadYAML(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forms file: %w", err)
	}
	return ParseYAML(raw)
}

func ParseYAML(raw []byte) (*MemoryStore, error) {
	var doc formsFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse forms: %w", err)
	}

	seen := make(map[int]bool, len(doc.Forms))
	for _, f := range doc.Forms {
		if f.FormKey <= 0 {
			return nil, fmt.Errorf("form %q: formKey must be positive", f.Title)
		}
		if seen[f.FormKey] {
			return nil, fmt.Errorf("duplicate formKey %d", f.FormKey)
		}
		seen[f.FormKey] = true
		if err := checkUniqueIDs(f); err != nil {
			return nil, err
		}
	}
	return NewMemoryStore(doc.Forms...), nil
}

// checkUniqueIDs enforces unique field ids per form and unique option ids
// per field, and requires choice fields to declare at least one option.
func checkUniqueIDs(f models.Form) error {
	fieldIDs := make(map[string]bool)
	for _, sec := range f.Sections {
		for _, fld := range sec.Fields {
			if fieldIDs[fld.FieldID] {
				return fmt.Errorf("form %d: duplicate field id %q", f.FormKey, fld.FieldID)
			}
			fieldIDs[fld.FieldID] = true

			optIDs := make(map[string]bool, len(fld.Options))
			for _, o := range fld.Options {
				if optIDs[o.ID] {
					return fmt.Errorf("form %d field %q: duplicate option id %q", f.FormKey, fld.FieldID, o.ID)
				}
				optIDs[o.ID] = true
			}
			if fields.IsChoice(fld.Type) && len(fld.Options) == 0 {
				return fmt.Errorf("form %d field %q: choice field has no options", f.FormKey, fld.FieldID)
			}
		}
	}
	return nil
}
