// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Form Definitions

Read-only documents loaded from the form store:

  - Form: formKey, status, and sections of fields
  - Section, Field, Option

# Request Types

  - AnswerInput: one answer (value, option ids, or a base64 file)
  - SubmitRequest: answers
  - AssignRequest: user_id

# Response Types

  - SubmitResponse: response_id, message
  - UnassignResponse: removed
  - PublishedForm: form summary
  - ErrorResponse: error, code, message

# Persisted Types

  - SubmissionHeader: one row per submission
  - AnswerRow: one row per answered field, with the field type tag
  - ResponseDetail: header plus its answers
  - StoredFile: uploaded file metadata and blob
  - Assignment: form, user, and sequence number

# Constants

	StatusDraft     = "Draft"
	StatusPublished = "Published"

	RoleAdmin   = "Admin"
	RoleLearner = "Learner"
*/
package models
