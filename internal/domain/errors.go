package domain

import "errors"

// ErrNotFound is returned when a referenced id or index does not exist.
// Callers treat it as a no-op; the HTTP layer maps it to 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when user input fails a business rule
// (empty required field, negative cost, end time not after start time).
// State is never mutated before validation passes. Maps to HTTP 422.
var ErrValidation = errors.New("validation failed")

// ErrImportFormat is returned when an import payload is malformed or its
// root is not a JSON object. No storage key is modified. Maps to HTTP 400.
var ErrImportFormat = errors.New("invalid import format")
