package currency

import (
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Resolver computes the effective rate of a currency and converts prices
// between the base currency and foreign denominations. All methods are pure
// over the record passed in.
type Resolver struct {
	baseCode string
}

func NewResolver(baseCode string) *Resolver {
	return &Resolver{baseCode: baseCode}
}

func (r *Resolver) BaseCode() string { return r.baseCode }

func (r *Resolver) IsBase(code string) bool { return code == r.baseCode }

// EffectiveRate resolves the single rate used for pricing and display. The
// base currency is always 1. The mode's own source wins; the other source is
// the fallback so a currency never resolves to an undefined rate.
func (r *Resolver) EffectiveRate(rec domain.CurrencyRate) decimal.Decimal {
	if rec.Code == r.baseCode {
		return one
	}
	primary, fallback := rec.ManualRate, rec.LiveRate
	if rec.RateMode == domain.ModeLive {
		primary, fallback = rec.LiveRate, rec.ManualRate
	}
	if primary.Valid && primary.Decimal.IsPositive() {
		return primary.Decimal
	}
	if fallback.Valid && fallback.Decimal.IsPositive() {
		return fallback.Decimal
	}
	// Creation always seeds a manual rate, so this is unreachable for
	// well-formed records; degrade to parity rather than zero.
	return one
}

// SetMode switches the rate source. Switching to manual seeds the manual
// rate from the current effective rate when unset; switching to live takes
// effect immediately from the last known live rate without waiting for the
// next fetch.
func (r *Resolver) SetMode(rec domain.CurrencyRate, mode domain.RateMode, now time.Time) (domain.CurrencyRate, error) {
	if rec.Code == r.baseCode && mode == domain.ModeLive {
		return rec, &ValidationError{Fields: map[string]string{
			"rate_mode": "base currency is pinned to manual mode",
		}}
	}
	if rec.RateMode == mode {
		return rec, nil
	}
	if mode == domain.ModeManual && !rec.ManualRate.Valid {
		rec.ManualRate = decimal.NullDecimal{Decimal: r.EffectiveRate(rec), Valid: true}
		rec.ManualRateAt = &now
	}
	rec.RateMode = mode
	return rec, nil
}

// Convert turns a canonical base-currency amount into the record's currency,
// rounded half-up to its decimal places.
func (r *Resolver) Convert(amountInBase decimal.Decimal, rec domain.CurrencyRate) decimal.Decimal {
	return amountInBase.Div(r.EffectiveRate(rec)).Round(int32(rec.DecimalPlaces))
}

// ToBase is the inverse of Convert, without rounding: canonical amounts keep
// full precision.
func (r *Resolver) ToBase(amountInForeign decimal.Decimal, rec domain.CurrencyRate) decimal.Decimal {
	return amountInForeign.Mul(r.EffectiveRate(rec))
}

// Format renders an amount with the currency symbol in its configured
// position. Presentational only.
func (r *Resolver) Format(amount decimal.Decimal, rec domain.CurrencyRate) string {
	s := amount.StringFixed(int32(rec.DecimalPlaces))
	if rec.SymbolPosition == domain.SymbolAfter {
		return s + rec.Symbol
	}
	return rec.Symbol + s
}
