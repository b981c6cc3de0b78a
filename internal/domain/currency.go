package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateMode string

const (
	ModeLive   RateMode = "live"
	ModeManual RateMode = "manual"
)

type FetchStatus string

const (
	FetchNone  FetchStatus = "none"
	FetchOK    FetchStatus = "ok"
	FetchError FetchStatus = "error"
)

type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// CurrencyRate is the per-currency record driving all pricing. Canonical
// prices are stored in the base currency; every other currency resolves an
// effective rate from either the live (provider) or manual (admin) source.
type CurrencyRate struct {
	Code           string
	Name           string
	Symbol         string
	DecimalPlaces  int
	SymbolPosition SymbolPosition

	LiveRate   decimal.NullDecimal
	LiveRateAt *time.Time

	ManualRate      decimal.NullDecimal
	ManualRateAt    *time.Time
	ManualExpiresAt *time.Time

	RateMode       RateMode
	IsActive       bool
	IsDefault      bool
	IsAdminDisplay bool

	LastFetchStatus FetchStatus
	LastFetchError  string

	UpdatedAt time.Time
}

// ManualExpired reports whether the manual override has passed its optional
// expiry. Informational only: an expired manual rate still prices the
// currency until an administrator changes the mode.
func (c CurrencyRate) ManualExpired(now time.Time) bool {
	return c.ManualExpiresAt != nil && now.After(*c.ManualExpiresAt)
}
