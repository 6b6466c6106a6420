// Package common defines shared constants and sentinel errors used across
// client layers of TABZ. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrEmptyBaseURL = errors.New("empty base url")

	// Validation errors raised before any request is sent.
	ErrorValidation    = errors.New("validation error")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingBankInfo = errors.New("bank name, account holder, routing number, and account number are required")
)
