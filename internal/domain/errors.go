package domain

import "errors"

var (
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrCurrencyExists   = errors.New("currency already exists")
	ErrQuotaExceeded    = errors.New("monthly provider quota exceeded")
	ErrProfileNotFound  = errors.New("admin profile not found")
)
