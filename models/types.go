package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Form status constants
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

// Roles carried in bearer tokens
const (
	RoleAdmin   = "Admin"
	RoleLearner = "Learner"
)

// FileTokenPrefix marks an answer value that points at a stored file.
const FileTokenPrefix = "file:"

// Form definition types (document store, read-only here)

type Option struct {
	ID   string `json:"id" bson:"id" yaml:"id"`
	Text string `json:"text" bson:"text" yaml:"text"`
}

type Field struct {
	FieldID  string   `json:"fieldId" bson:"fieldId" yaml:"fieldId"`
	Label    string   `json:"label" bson:"label" yaml:"label"`
	Type     string   `json:"type" bson:"type" yaml:"type"`
	Required bool     `json:"isRequired" bson:"isRequired" yaml:"required"`
	Options  []Option `json:"options,omitempty" bson:"options,omitempty" yaml:"options,omitempty"`
}

type Section struct {
	SectionID string  `json:"sectionId" bson:"sectionId" yaml:"sectionId"`
	Title     string  `json:"title" bson:"title" yaml:"title"`
	Fields    []Field `json:"fields" bson:"fields" yaml:"fields"`
}

type Form struct {
	ID          string     `json:"id" bson:"-" yaml:"id"`
	FormKey     int        `json:"formKey" bson:"formKey" yaml:"formKey"`
	Title       string     `json:"title" bson:"title" yaml:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	Status      string     `json:"status" bson:"status" yaml:"status"`
	Sections    []Section  `json:"layout" bson:"layout" yaml:"sections"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`
}

// IsPublished reports whether submissions may be accepted against the form.
func (f Form) IsPublished() bool {
	return strings.EqualFold(strings.TrimSpace(f.Status), StatusPublished)
}

// Request types

// AnswerInput is one submitted field answer. Scalar fields use Value,
// choice fields use OptionIDs, file fields use FileBase64.
//
// Struct tags only bound sizes; missing answers and unknown or blank field
// ids are reported by the submission pipeline with their own error codes.
type AnswerInput struct {
	FieldID     string   `json:"fieldId" validate:"max=200"`
	Value       string   `json:"answerValue,omitempty"`
	OptionIDs   []string `json:"optionIds,omitempty" validate:"max=100,dive,max=200"`
	FileBase64  string   `json:"fileBase64,omitempty"`
	FileName    string   `json:"fileName,omitempty" validate:"max=255"`
	ContentType string   `json:"contentType,omitempty" validate:"max=255"`
}

type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" validate:"dive"`
}

type AssignRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// Response types

type SubmitResponse struct {
	ResponseID int64  `json:"response_id"`
	Message    string `json:"message"`
}

type UnassignResponse struct {
	Removed bool `json:"removed"`
}

type PublishedForm struct {
	FormKey     int        `json:"form_key"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Persisted types

type SubmissionHeader struct {
	ID          int64     `json:"id"`
	FormID      string    `json:"form_id"`
	FormKey     int       `json:"form_key"`
	UserID      int64     `json:"user_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type AnswerRow struct {
	ID          int64     `json:"id"`
	ResponseID  int64     `json:"response_id"`
	FormKey     int       `json:"form_key"`
	UserID      int64     `json:"user_id"`
	FieldID     string    `json:"field_id"`
	FieldType   *string   `json:"field_type"`
	AnswerValue *string   `json:"answer_value"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// OptionIDs decodes a stored choice answer: a JSON array for multi-choice,
// a bare id for single choice, nothing for an empty answer.
func (a AnswerRow) OptionIDs() []string {
	if a.AnswerValue == nil || *a.AnswerValue == "" {
		return nil
	}
	v := *a.AnswerValue
	if strings.HasPrefix(v, "[") {
		var ids []string
		if err := json.Unmarshal([]byte(v), &ids); err == nil {
			return ids
		}
	}
	return []string{v}
}

type ResponseDetail struct {
	Header  SubmissionHeader `json:"header"`
	Answers []AnswerRow      `json:"answers"`
}

type StoredFile struct {
	ID          int64     `json:"id"`
	ResponseID  int64     `json:"response_id"`
	FormKey     int       `json:"form_key"`
	FieldID     string    `json:"field_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Blob        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

type Assignment struct {
	ID         int64     `json:"id"`
	FormID     string    `json:"form_id"`
	UserID     int64     `json:"user_id"`
	AssignedBy *int64    `json:"assigned_by,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
	SequenceNo int       `json:"sequence_no"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
