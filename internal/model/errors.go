package model

import "errors"

// Error kinds. Every failure returned by paperclass wraps exactly one of these.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrInputSchema   = errors.New("input schema error")
	ErrIO            = errors.New("io error")
)
