// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assignments tracks which users are assigned to which forms.

Each (form, user) pair holds at most one row, and each row carries a
sequence number that increases per form starting at 1:

	seq := assignments.NewSequencer(assignments.NewSQLStore(db))
	a, err := seq.Assign(ctx, form.ID, userID, &adminID)

Assign reads MAX(sequence_no), inserts max+1, and on a uniqueness conflict
waits and tries again (DefaultPolicy: 3 attempts, 25ms apart). Exhausting
the attempts returns apperr.AssignmentFailedAfterRetries. The loop is the
generic Retry combinator in retry.go, which tests drive with a flaky
Store double.

Forms are keyed by their document id, not the numeric form key.
*/
package assignments
