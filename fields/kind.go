// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fields

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/models"
)

// Stored field type tags
const (
	TagShortText   = "shortText"
	TagTextarea    = "textarea"
	TagEmail       = "email"
	TagNumber      = "number"
	TagDate        = "date"
	TagRadio       = "radio"
	TagDropdown    = "dropdown"
	TagCheckbox    = "checkbox"
	TagMultiselect = "multiselect"
	TagMCQ         = "mcq"
	TagFile        = "file"
)

const (
	ShortTextMax = 100
	LongTextMax  = 500
	DateLayout   = "02/01/2006"
	DateFormat   = "dd/MM/yyyy"
)

// Kind is one variant of the closed set of field kinds. Each variant owns
// its validation and encoding; the set cannot be extended outside this
// package.
type Kind interface {
	// Tag is the stored type tag, empty for types with no tag.
	Tag() string
	validate(f models.Field, a models.AnswerInput) error
	encode(f models.Field, a models.AnswerInput) (Encoded, error)
}

type textKind struct {
	tag string
	max int
}

type numberKind struct{}

type dateKind struct{}

type emailKind struct{}

type choiceKind struct{ tag string }

type fileKind struct{}

// untypedKind covers custom types this service does not know about; the
// value passes through with no checks and no stored tag.
type untypedKind struct{}

var kinds = map[string]Kind{
	"shorttext":    textKind{tag: TagShortText, max: ShortTextMax},
	"short_text":   textKind{tag: TagShortText, max: ShortTextMax},
	"text":         textKind{tag: TagShortText, max: ShortTextMax},
	"longtext":     textKind{tag: TagTextarea, max: LongTextMax},
	"long_text":    textKind{tag: TagTextarea, max: LongTextMax},
	"textarea":     textKind{tag: TagTextarea, max: LongTextMax},
	"email":        emailKind{},
	"number":       numberKind{},
	"date":         dateKind{},
	"radio":        choiceKind{tag: TagRadio},
	"dropdown":     choiceKind{tag: TagDropdown},
	"checkbox":     choiceKind{tag: TagCheckbox},
	"multiselect":  choiceKind{tag: TagMultiselect},
	"multi-select": choiceKind{tag: TagMultiselect},
	"mcq":          choiceKind{tag: TagMCQ},
	"multiple":     choiceKind{tag: TagMCQ},
	"file":         fileKind{},
}

// KindOf maps a declared field type to its kind. Matching ignores case and
// surrounding whitespace.
func KindOf(fieldType string) Kind {
	if k, ok := kinds[strings.ToLower(strings.TrimSpace(fieldType))]; ok {
		return k
	}
	return untypedKind{}
}

// IsChoice reports whether the declared type presents selectable options.
func IsChoice(fieldType string) bool {
	_, ok := KindOf(fieldType).(choiceKind)
	return ok
}

func (k textKind) Tag() string { return k.tag }
func (numberKind) Tag() string { return TagNumber }
func (dateKind) Tag() string { return TagDate }
func (emailKind) Tag() string { return TagEmail }
func (k choiceKind) Tag() string { return k.tag }
func (fileKind) Tag() string { return TagFile }
func (untypedKind) Tag() string { return "" }

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// requireValue enforces the scalar required rule. ok is false when the
// value is blank and the remaining checks should be skipped.
func requireValue(f models.Field, a models.AnswerInput) (ok bool, err error) {
	if !isBlank(a.Value) {
		return true, nil
	}
	if f.Required {
		return false, apperr.Field(apperr.RequiredFieldMissing, f.Label, "'%s' is required.", f.Label)
	}
	return false, nil
}

func (k textKind) validate(f models.Field, a models.AnswerInput) error {
	ok, err := requireValue(f, a)
	if !ok {
		return err
	}
	if utf8.RuneCountInString(a.Value) > k.max {
		return apperr.Field(apperr.FieldFormatInvalid, f.Label, "'%s' must be ≤ %d characters.", f.Label, k.max)
	}
	return nil
}

func (numberKind) validate(f models.Field, a models.AnswerInput) error {
	ok, err := requireValue(f, a)
	if !ok {
		return err
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(a.Value), 10, 32); err != nil {
		return apperr.Field(apperr.FieldFormatInvalid, f.Label, "'%s' must be an integer.", f.Label)
	}
	return nil
}

func (dateKind) validate(f models.Field, a models.AnswerInput) error {
	ok, err := requireValue(f, a)
	if !ok {
		return err
	}
	if _, err := time.Parse(DateLayout, a.Value); err != nil {
		return apperr.Field(apperr.FieldFormatInvalid, f.Label, "'%s' must be in %s format.", f.Label, DateFormat)
	}
	return nil
}

func (emailKind) validate(f models.Field, a models.AnswerInput) error {
	_, err := requireValue(f, a)
	return err
}

func (untypedKind) validate(f models.Field, a models.AnswerInput) error {
	_, err := requireValue(f, a)
	return err
}

func (choiceKind) validate(f models.Field, a models.AnswerInput) error {
	if len(a.OptionIDs) == 0 {
		if f.Required {
			return apperr.Field(apperr.RequiredFieldMissing, f.Label, "'%s' is required.", f.Label)
		}
		return nil
	}
	valid := make(map[string]bool, len(f.Options))
	for _, o := range f.Options {
		valid[o.ID] = true
	}
	for _, id := range a.OptionIDs {
		if !valid[id] {
			return apperr.Field(apperr.InvalidOption, f.Label, "One or more OptionIds are invalid for '%s'.", f.Label)
		}
	}
	return nil
}

func (fileKind) validate(f models.Field, a models.AnswerInput) error {
	if isBlank(a.FileBase64) {
		if f.Required {
			return apperr.Field(apperr.RequiredFieldMissing, f.Label, "'%s' is required.", f.Label)
		}
		return nil
	}
	_, err := decodeFile(f, a.FileBase64)
	return err
}
