package model

import "errors"

// Sentinel errors for the three failure classes. Callers wrap these with
// context via fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrValidation marks a malformed record rejected before any state change.
	ErrValidation = errors.New("invalid record")

	// ErrInsufficientData marks a forecast or schedule attempted with no history.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrConfiguration marks invalid policy or calendar constants.
	ErrConfiguration = errors.New("invalid configuration")
)
