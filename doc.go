// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Form API server.

Quickly Form accepts learner submissions against published form
definitions, validates every answer against the field's type, and stores
the result as one header plus one row per answer. Admins can also assign
learners to a form; each assignment gets the next sequence number for
that form.

# Starting the Server

	DATABASE_URL=forms.db JWT_SECRET=... FORMS_FILE=forms.yaml go run .

Or against postgres and MongoDB:

	go run . -t postgres -d "postgres://..." -mongo-uri "mongodb://..." -jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): relational store DSN or sqlite path
  - JWT_SECRET (-jwt-secret): HS256 key for bearer tokens
  - MONGO_URI (-mongo-uri) or FORMS_FILE (-forms): where form definitions live

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (default: sqlite)
  - MONGO_DATABASE (-mongo-db): default formbuilder
  - -env: dotenv file to load first (default: .env if present)

# Architecture

  - handlers: HTTP request handlers (responses, forms, assignments)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, auth, JSON helpers, error mapping
  - submissions: resolve, validate and write pipeline, plus read models
  - fields: per-type validation and encoding
  - assignments: sequence allocation with retry
  - formstore: form definitions from MongoDB or YAML
  - apperr: error codes and classes
  - auth: bearer token parsing
  - db: connections and goose migrations
  - cliparse: Configuration parsing
*/
package main
