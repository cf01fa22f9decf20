package model

import "errors"

// Sentinel errors for the workflow engine. Lookup and validation failures
// are returned to the caller of the failing operation; delivery and routing
// failures are collected per target and never abort a running cycle.
var (
	ErrDuplicateID               = errors.New("id already registered")
	ErrNotFound                  = errors.New("text not found")
	ErrSourceNotFound            = errors.New("source file not found")
	ErrUnknownUser               = errors.New("unknown user")
	ErrUnknownSender             = errors.New("unknown sender")
	ErrAlreadyAssigned           = errors.New("text already assigned to user")
	ErrNotAssigned               = errors.New("text not assigned to user")
	ErrInvalidUserContact        = errors.New("missing contact for delivery method")
	ErrUnsupportedDeliveryMethod = errors.New("unsupported delivery method")
	ErrUnsupportedFormat         = errors.New("unsupported output format")
	ErrResourceUnavailable       = errors.New("language resources unavailable")
	ErrDeliveryFailed            = errors.New("delivery failed")
	ErrCursorRegression          = errors.New("position would move backwards")
	ErrInvalidSentenceIndex      = errors.New("invalid sentence index")
)
