// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fields

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-form/apperr"
	"github.com/danielhkuo/quickly-form/models"
)

const (
	MaxFileBytes       = 10 << 20
	DefaultFileName    = "upload.bin"
	DefaultContentType = "application/octet-stream"
)

// FilePayload is a decoded file answer waiting to be stored.
type FilePayload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Encoded is one answer in its storable form. Tag is nil for field types
// with no stored tag. File is set only for file answers with content; the
// writer replaces Value with the file reference token once the file row
// exists.
type Encoded struct {
	FieldID string
	Tag     *string
	Value   string
	File    *FilePayload
}

func tagOf(k Kind) *string {
	t := k.Tag()
	if t == "" {
		return nil
	}
	return &t
}

func (k textKind) encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	return Encoded{FieldID: f.FieldID, Tag: tagOf(k), Value: a.Value}, nil
}

func (k numberKind) encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	return Encoded{FieldID: f.FieldID, Tag: tagOf(k), Value: a.Value}, nil
}

func (k dateKind) encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	return Encoded{FieldID: f.FieldID, Tag: tagOf(k), Value: a.Value}, nil
}

func (k emailKind) encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	return Encoded{FieldID: f.FieldID, Tag: tagOf(k), Value: a.Value}, nil
}

func (k untypedKind) encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	return Encoded{FieldID: f.FieldID, Tag: tagOf(k), Value: a.Value}, nil
}

// Single selections collapse to the option id, several to a JSON array in
// submission order.
func (k choiceKind) encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	enc := Encoded{FieldID: f.FieldID, Tag: tagOf(k)}
	switch len(a.OptionIDs) {
	case 0:
	case 1:
		enc.Value = a.OptionIDs[0]
	default:
		b, err := json.Marshal(a.OptionIDs)
		if err != nil {
			return Encoded{}, fmt.Errorf("encode options for %s: %w", f.FieldID, err)
		}
		enc.Value = string(b)
	}
	return enc, nil
}

func (k fileKind) encode(f models.Field, a models.AnswerInput) (Encoded, error) {
	enc := Encoded{FieldID: f.FieldID, Tag: tagOf(k)}
	if isBlank(a.FileBase64) {
		return enc, nil
	}
	data, err := decodeFile(f, a.FileBase64)
	if err != nil {
		return Encoded{}, err
	}
	enc.File = &FilePayload{
		Name:        defaultIfBlank(a.FileName, DefaultFileName),
		ContentType: defaultIfBlank(a.ContentType, DefaultContentType),
		Data:        data,
	}
	return enc, nil
}

// decodeFile strips a data URI prefix (everything up to the first comma)
// and decodes standard base64, enforcing MaxFileBytes. Embedded whitespace
// and line breaks are ignored.
func decodeFile(f models.Field, payload string) ([]byte, error) {
	b64 := strings.TrimSpace(payload)
	if i := strings.IndexByte(b64, ','); i >= 0 {
		b64 = b64[i+1:]
	}
	b64 = strings.Join(strings.Fields(b64), "")
	if base64.StdEncoding.DecodedLen(len(b64)) > MaxFileBytes+2 {
		return nil, tooLarge(f)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, apperr.Field(apperr.FilePayloadInvalid, f.Label, "Invalid base64 for '%s'.", f.Label)
	}
	if len(data) > MaxFileBytes {
		return nil, tooLarge(f)
	}
	return data, nil
}

func tooLarge(f models.Field) error {
	return apperr.Field(apperr.FileTooLarge, f.Label, "'%s' exceeds %s.", f.Label, humanize.Bytes(MaxFileBytes))
}

func defaultIfBlank(s, def string) string {
	if isBlank(s) {
		return def
	}
	return s
}
