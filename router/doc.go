// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Form API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, forms, cfg)

Every API route is wrapped in WithLogging and RequireRole. A bearer token
signed with cfg.JWTSecret is required; a missing or bad token is 401 and
a token with the wrong role is 403.

# Endpoints

Health:

	GET /health

Submissions (Admin or Learner):

	POST /responses/{formKey}         - Submit answers
	GET  /responses/{formKey}?userId= - Flat answer rows (learners see their own)
	GET  /submissions/mine            - Caller's submission headers
	GET  /submissions/{responseId}    - One submission with answers
	GET  /files/{fileId}              - Download an uploaded file

Form administration (Admin):

	GET /forms/published            - Published form summaries
	GET /forms/{formKey}/responses  - Submission headers for a form

Assignments:

	POST   /forms/{formKey}/assignments          - Assign a user (Admin)
	GET    /forms/{formKey}/assignments          - Assignees by sequence (Admin)
	DELETE /forms/{formKey}/assignments/{userId} - Unassign (Admin)
	GET    /assignments/mine                     - Caller's assignments
*/
package router
