// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package formstore reads form definitions from MongoDB or a YAML file.
package formstore
