// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a validated Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: postgres connection string or sqlite file path (required)
  - DatabaseType: postgres or sqlite (default: sqlite)
  - JWTSecret: HS256 secret shared with the identity service (required)
  - MongoURI, MongoDatabase: form definition store (database default: formbuilder)
  - FormsFile: YAML form definitions, used when MongoURI is empty

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	JWT_SECRET     → --jwt-secret
	MONGO_URI      → --mongo-uri
	MONGO_DATABASE → --mongo-db
	FORMS_FILE     → --forms

A .env file in the working directory is loaded first if present; --env
names a different file, which must exist. Variables already set in the
environment win over the file. CLI flags take precedence over both.

# Validation

Config carries validator struct tags. ParseFlags names the offending
setting when DATABASE_URL or JWT_SECRET is missing, when neither
MONGO_URI nor FORMS_FILE is set, or when DATABASE_TYPE is unknown.
*/
package cliparse
