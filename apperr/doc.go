// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the error codes returned by the submission and
assignment services.

Each Code belongs to a Class (NotFound, NotPublished, Validation,
Conflict, Transient, Persistence). Callers branch on the class or match a
sentinel with errors.Is:

	if errors.Is(err, apperr.ErrAlreadyAssigned) { ... }

Any error that is not an *Error classifies as Persistence.
*/
package apperr
