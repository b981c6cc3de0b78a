package currency

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidationError carries per-field messages so the admin surface can render
// them next to the inputs. It is rejected before any mutation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

const maxDecimalPlaces = 4

type Validator struct {
	baseCode string
}

func NewValidator(baseCode string) *Validator {
	return &Validator{baseCode: baseCode}
}

func (v *Validator) ValidateCreate(p CreateParams) error {
	fields := map[string]string{}
	if !codePattern.MatchString(p.Code) {
		fields["code"] = "must be a 3-letter uppercase code"
	} else if p.Code == v.baseCode {
		fields["code"] = "base currency is reserved"
	}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "is required"
	}
	if strings.TrimSpace(p.Symbol) == "" {
		fields["symbol"] = "is required"
	}
	if !p.ExchangeRate.IsPositive() {
		fields["exchange_rate"] = "must be strictly positive"
	}
	if p.DecimalPlaces < 0 || p.DecimalPlaces > maxDecimalPlaces {
		fields["decimal_places"] = fmt.Sprintf("must be between 0 and %d", maxDecimalPlaces)
	}
	if p.SymbolPosition != domain.SymbolBefore && p.SymbolPosition != domain.SymbolAfter {
		fields["symbol_position"] = "must be before or after"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (v *Validator) ValidateUpdate(existing domain.CurrencyRate, p UpdateParams) error {
	fields := map[string]string{}
	if p.ManualRate != nil && !p.ManualRate.IsPositive() {
		fields["manual_rate"] = "must be strictly positive"
	}
	if p.LiveRate != nil && !p.LiveRate.IsPositive() {
		fields["live_rate"] = "must be strictly positive"
	}
	if p.DecimalPlaces != nil && (*p.DecimalPlaces < 0 || *p.DecimalPlaces > maxDecimalPlaces) {
		fields["decimal_places"] = fmt.Sprintf("must be between 0 and %d", maxDecimalPlaces)
	}
	if p.SymbolPosition != nil && *p.SymbolPosition != domain.SymbolBefore && *p.SymbolPosition != domain.SymbolAfter {
		fields["symbol_position"] = "must be before or after"
	}
	if p.RateMode != nil {
		if *p.RateMode != domain.ModeLive && *p.RateMode != domain.ModeManual {
			fields["rate_mode"] = "must be live or manual"
		} else if existing.Code == v.baseCode && *p.RateMode == domain.ModeLive {
			fields["rate_mode"] = "base currency is pinned to manual mode"
		}
	}
	if p.IsDefault != nil && !*p.IsDefault && existing.IsDefault {
		fields["is_default"] = "reassign the default by setting it on another currency"
	}
	if p.IsAdminDisplay != nil && !*p.IsAdminDisplay && existing.IsAdminDisplay {
		fields["is_admin_display"] = "reassign the display currency by setting it on another currency"
	}
	if existing.Code == v.baseCode {
		if p.ManualRate != nil && !p.ManualRate.Equal(one) {
			fields["manual_rate"] = "base currency rate is fixed at 1"
		}
		if p.IsActive != nil && !*p.IsActive {
			fields["is_active"] = "base currency cannot be deactivated"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateBulk checks the whole batch up front so a bad entry rejects the
// save before any currency is touched.
func (v *Validator) ValidateBulk(rates map[string]decimal.Decimal) error {
	fields := map[string]string{}
	for code, rate := range rates {
		if !codePattern.MatchString(code) {
			fields[code] = "must be a 3-letter uppercase code"
			continue
		}
		if code == v.baseCode {
			fields[code] = "base currency rate cannot be overridden"
			continue
		}
		if !rate.IsPositive() {
			fields[code] = "must be strictly positive"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
