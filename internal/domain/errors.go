package domain

import "errors"

var (
	ErrInvalidCurrency            = errors.New("invalid currency code")
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
	ErrUserNotFound               = errors.New("user not found")
	ErrStorageFailure             = errors.New("storage failure")

	// ErrRateNotFound is returned by the backup store when no snapshot was ever saved for a base.
	ErrRateNotFound = errors.New("rate not found")
)
