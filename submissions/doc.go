// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submissions accepts and lists learner answers to published forms.

# Pipeline

	Resolver.Resolve   form store → published Schema (NotFound, NotPublished)
	fields.Prepare     validate every answer, then encode
	Writer.Write       one transaction: form key, header, files, answers

Service.Submit runs the three in order. Nothing is written unless every
answer validates and every insert succeeds.

# Storage

	form_keys              parent row per form key, created on first submit
	form_responses         one header per submission
	form_response_files    uploaded blobs
	form_response_answers  one row per answer, denormalised with user and form key

File answers store a "file:<id>" token in answer_value pointing at their
form_response_files row. Multi-choice answers store a JSON array of option
ids; see models.AnswerRow.OptionIDs.

# Reading

Reader lists rows newest submission first. Rows of one submission keep
insertion order. Reader does no authorization; handlers pin learners to
their own user id.
*/
package submissions
