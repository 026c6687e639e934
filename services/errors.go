package services

import "errors"

// Validation failures. These are recovered locally, surfaced as transient
// status messages, and never retried automatically.
var (
	ErrLookupRequired = errors.New("look up nutrients before saving")
	ErrNoSession      = errors.New("sign in before saving to the log")
	ErrEmptyName      = errors.New("enter a food name first")
	ErrEmptyLog       = errors.New("log at least one food before analyzing your day")
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrInvalidEntry   = errors.New("invalid log entry")
)
