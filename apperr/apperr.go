// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"fmt"
)

// Class groups codes by how a caller is expected to react.
type Class int

const (
	ClassPersistence Class = iota
	ClassNotFound
	ClassNotPublished
	ClassValidation
	ClassConflict
	ClassTransient
)

func (c Class) String() string {
	switch c {
	case ClassNotFound:
		return "NotFound"
	case ClassNotPublished:
		return "NotPublished"
	case ClassValidation:
		return "ValidationError"
	case ClassConflict:
		return "Conflict"
	case ClassTransient:
		return "TransientFailure"
	default:
		return "PersistenceError"
	}
}

type Code string

const (
	NotFound                     Code = "NotFound"
	NotPublished                 Code = "NotPublished"
	EmptySubmission              Code = "EmptySubmission"
	UnknownField                 Code = "UnknownField"
	RequiredFieldMissing         Code = "RequiredFieldMissing"
	FieldFormatInvalid           Code = "FieldFormatInvalid"
	InvalidOption                Code = "InvalidOption"
	FilePayloadInvalid           Code = "FilePayloadInvalid"
	FileTooLarge                 Code = "FileTooLarge"
	AlreadyAssigned              Code = "AlreadyAssigned"
	AssignmentFailedAfterRetries Code = "AssignmentFailedAfterRetries"
	Persistence                  Code = "Persistence"
)

// Class returns the taxonomy class of the code.
func (c Code) Class() Class {
	switch c {
	case NotFound:
		return ClassNotFound
	case NotPublished:
		return ClassNotPublished
	case EmptySubmission, UnknownField, RequiredFieldMissing, FieldFormatInvalid,
		InvalidOption, FilePayloadInvalid, FileTooLarge:
		return ClassValidation
	case AlreadyAssigned:
		return ClassConflict
	case AssignmentFailedAfterRetries:
		return ClassTransient
	default:
		return ClassPersistence
	}
}

// Error is the single error type returned across package boundaries.
// Field holds the field label for validation failures.
type Error struct {
	Code    Code
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so the sentinels below work
// with errors.Is regardless of message or field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is
var (
	ErrNotFound                     = &Error{Code: NotFound}
	ErrNotPublished                 = &Error{Code: NotPublished}
	ErrEmptySubmission              = &Error{Code: EmptySubmission}
	ErrUnknownField                 = &Error{Code: UnknownField}
	ErrRequiredFieldMissing         = &Error{Code: RequiredFieldMissing}
	ErrFieldFormatInvalid           = &Error{Code: FieldFormatInvalid}
	ErrInvalidOption                = &Error{Code: InvalidOption}
	ErrFilePayloadInvalid           = &Error{Code: FilePayloadInvalid}
	ErrFileTooLarge                 = &Error{Code: FileTooLarge}
	ErrAlreadyAssigned              = &Error{Code: AlreadyAssigned}
	ErrAssignmentFailedAfterRetries = &Error{Code: AssignmentFailedAfterRetries}
	ErrPersistence                  = &Error{Code: Persistence}
)

// New builds an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Field builds a validation error naming the field label.
func Field(code Code, label, format string, args ...any) *Error {
	return &Error{Code: code, Field: label, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause. Wrap(code, msg, nil) returns nil.
func Wrap(code Code, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the first *Error in the chain, or Persistence.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Persistence
}

// ClassOf classifies any error. Errors that are not *Error are treated as
// storage failures.
func ClassOf(err error) Class {
	return CodeOf(err).Class()
}
