// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the relational store and manages its schema.

# Connections

Open supports postgres (lib/pq) and sqlite (modernc.org/sqlite):

	conn, err := db.Open(db.TypePostgres, cfg.DatabaseURL)

# Migrations

Migrate applies the embedded goose migrations for the dialect:

	if err := db.Migrate(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

# Tables

  - form_keys: parent rows for numeric form keys
  - form_responses: one header per submission
  - form_response_answers: one row per answered field
  - form_response_files: uploaded file blobs
  - form_assignments: per-form user assignments with sequence numbers

# Relationships

	form_keys 1──* form_responses
	form_responses 1──* form_response_answers
	form_responses 1──* form_response_files

form_assignments has UNIQUE (form_id, user_id) and UNIQUE (form_id,
sequence_no). IsUniqueViolation recognises both drivers' errors.
*/
package db
