package entities

import "errors"

// Sentinel errors shared by repositories and services. Controllers map them
// to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
