// Package errors provides sentinel errors shared across the journal.
package errors

import "errors"

var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrTradeLimit    = errors.New("free plan trade limit reached")
	ErrInvalidPlan   = errors.New("invalid plan tier")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrValidation    = errors.New("input validation failed")
)
