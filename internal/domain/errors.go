package domain

import "errors"

// ErrNotFound is returned when a session or a destination index does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when form input fails validation
// (e.g. missing destination name, negative stay).
var ErrValidation = errors.New("validation error")
