package domain

import "errors"

var (
	ErrTenantNotFound      = errors.New("rating: tenant not found")
	ErrInvalidDays         = errors.New("rating: days elapsed must be positive")
	ErrNegativeConsumption = errors.New("rating: consumption must be non-negative")
	ErrUnknownUtility      = errors.New("rating: unknown utility type")
)
