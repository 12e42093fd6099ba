// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Form API.

# Handler Types

  - ResponseHandler: submissions, answer listings, details, file downloads
  - FormHandler: published form summaries
  - AssignmentHandler: assign, unassign, and list assignments

Handlers are created with the relational connection and the form store:

	responseHandler := handlers.NewResponseHandler(db, forms)

Every handler expects an identity in the request context, placed there by
middleware.RequireRole. Learners only ever see their own submissions and
files; admins see everything.

# Errors

Service errors go through middleware.WriteError, which maps the apperr
code to a status:

	EmptySubmission, RequiredFieldMissing, ... → 400
	UnknownField, NotFound                      → 404
	NotPublished, AlreadyAssigned               → 409
	AssignmentFailedAfterRetries                → 503
*/
package handlers
