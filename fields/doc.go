// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fields validates submitted answers and converts them to the single
text column they are stored in.

# Field Kinds

Declared field types map onto a closed set of kinds:

	shortText, text         → text (≤ 100 characters)
	longText, textarea      → text (≤ 500 characters)
	number                  → 32-bit integer
	date                    → dd/MM/yyyy
	email                   → no format check
	radio, dropdown, ...    → choice (option ids)
	file                    → base64 payload (≤ 10 MB)

Unknown types are accepted as plain text with no stored tag.

# Storage Encoding

	single choice  → "o1"
	multi choice   → ["o1","o2"]
	file           → file:<id> (set by the writer)
	everything else → raw text

Prepare validates a whole payload before encoding any of it:

	encoded, err := fields.Prepare(schema.Fields, req.Answers)
*/
package fields
