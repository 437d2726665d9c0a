package domain

import "errors"

// ErrValidation wraps input that fails a domain rule; the wrapped message is
// safe to show to the caller.
var ErrValidation = errors.New("validation failed")
