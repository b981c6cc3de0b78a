package currency

import (
	"context"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/adapters"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateParams struct {
	Code           string
	Name           string
	Symbol         string
	ExchangeRate   decimal.Decimal
	DecimalPlaces  int
	SymbolPosition domain.SymbolPosition
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name              *string
	Symbol            *string
	DecimalPlaces     *int
	SymbolPosition    *domain.SymbolPosition
	ManualRate        *decimal.Decimal
	ManualExpiresAt   *time.Time
	ClearManualExpiry bool
	LiveRate          *decimal.Decimal
	RateMode          *domain.RateMode
	IsActive          *bool
	IsDefault         *bool
	IsAdminDisplay    *bool
}

// CurrencyView is a record plus the derived fields the admin surface shows.
type CurrencyView struct {
	domain.CurrencyRate
	EffectiveRate decimal.Decimal
	ManualExpired bool
}

// Overview is the full currency console payload: records, quota usage and
// the refresh window.
type Overview struct {
	Currencies []CurrencyView
	Quota      domain.QuotaWindow
	FetchState domain.FetchState
	Schedule   domain.RefreshSchedule
}

// Service exposes the admin operations over currencies. It owns validation,
// mode arbitration and cascade triggering; storage atomicity lives in the
// repositories.
type Service struct {
	currencies adapters.CurrencyRepository
	fetchState adapters.FetchStateRepository
	quota      *QuotaTracker
	scheduler  *RefreshScheduler
	cascade    *Cascade
	resolver   *Resolver
	validator  *Validator
	now        func() time.Time
}

func NewService(
	currencies adapters.CurrencyRepository,
	fetchState adapters.FetchStateRepository,
	quota *QuotaTracker,
	scheduler *RefreshScheduler,
	cascade *Cascade,
	resolver *Resolver,
	validator *Validator,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		currencies: currencies,
		fetchState: fetchState,
		quota:      quota,
		scheduler:  scheduler,
		cascade:    cascade,
		resolver:   resolver,
		validator:  validator,
		now:        now,
	}
}

func (s *Service) List(ctx context.Context, includeInactive bool) (Overview, error) {
	var ov Overview
	now := s.now()

	recs, err := s.currencies.List(ctx, includeInactive)
	if err != nil {
		return ov, err
	}
	ov.Currencies = make([]CurrencyView, 0, len(recs))
	for _, rec := range recs {
		ov.Currencies = append(ov.Currencies, CurrencyView{
			CurrencyRate:  rec,
			EffectiveRate: s.resolver.EffectiveRate(rec),
			ManualExpired: rec.ManualExpired(now),
		})
	}

	if ov.Quota, err = s.quota.Window(ctx, now); err != nil {
		return ov, err
	}
	if ov.FetchState, err = s.fetchState.Get(ctx); err != nil {
		return ov, err
	}
	if ov.Schedule, err = s.scheduler.Schedule(ctx); err != nil {
		return ov, err
	}
	return ov, nil
}

func (s *Service) Get(ctx context.Context, code string) (CurrencyView, error) {
	rec, err := s.currencies.GetByCode(ctx, code)
	if err != nil {
		return CurrencyView{}, err
	}
	now := s.now()
	return CurrencyView{
		CurrencyRate:  rec,
		EffectiveRate: s.resolver.EffectiveRate(rec),
		ManualExpired: rec.ManualExpired(now),
	}, nil
}

func (s *Service) Create(ctx context.Context, p CreateParams) (domain.CurrencyRate, error) {
	if err := s.validator.ValidateCreate(p); err != nil {
		return domain.CurrencyRate{}, err
	}
	now := s.now()
	rec := domain.CurrencyRate{
		Code:            p.Code,
		Name:            p.Name,
		Symbol:          p.Symbol,
		DecimalPlaces:   p.DecimalPlaces,
		SymbolPosition:  p.SymbolPosition,
		ManualRate:      decimal.NullDecimal{Decimal: p.ExchangeRate, Valid: true},
		ManualRateAt:    &now,
		RateMode:        domain.ModeManual,
		IsActive:        true,
		LastFetchStatus: domain.FetchNone,
		UpdatedAt:       now,
	}
	if err := s.currencies.Create(ctx, rec); err != nil {
		return domain.CurrencyRate{}, err
	}
	return rec, nil
}

// Update applies a partial admin edit. Singleton flags swap atomically in
// the repository; a change of the effective rate cascades before returning.
func (s *Service) Update(ctx context.Context, code string, p UpdateParams) (CurrencyView, error) {
	rec, err := s.currencies.GetByCode(ctx, code)
	if err != nil {
		return CurrencyView{}, err
	}
	if err := s.validator.ValidateUpdate(rec, p); err != nil {
		return CurrencyView{}, err
	}

	now := s.now()
	oldEffective := s.resolver.EffectiveRate(rec)

	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Symbol != nil {
		rec.Symbol = *p.Symbol
	}
	if p.DecimalPlaces != nil {
		rec.DecimalPlaces = *p.DecimalPlaces
	}
	if p.SymbolPosition != nil {
		rec.SymbolPosition = *p.SymbolPosition
	}
	if p.ManualRate != nil {
		rec.ManualRate = decimal.NullDecimal{Decimal: *p.ManualRate, Valid: true}
		rec.ManualRateAt = &now
	}
	if p.ClearManualExpiry {
		rec.ManualExpiresAt = nil
	} else if p.ManualExpiresAt != nil {
		rec.ManualExpiresAt = p.ManualExpiresAt
	}
	if p.LiveRate != nil {
		rec.LiveRate = decimal.NullDecimal{Decimal: *p.LiveRate, Valid: true}
		rec.LiveRateAt = &now
	}
	if p.RateMode != nil {
		if rec, err = s.resolver.SetMode(rec, *p.RateMode, now); err != nil {
			return CurrencyView{}, err
		}
	}
	if p.IsActive != nil {
		rec.IsActive = *p.IsActive
	}
	if p.IsDefault != nil {
		rec.IsDefault = *p.IsDefault
	}
	if p.IsAdminDisplay != nil {
		rec.IsAdminDisplay = *p.IsAdminDisplay
	}
	rec.UpdatedAt = now

	if err := s.currencies.Update(ctx, rec); err != nil {
		return CurrencyView{}, err
	}

	newEffective := s.resolver.EffectiveRate(rec)
	if !oldEffective.Equal(newEffective) {
		if _, err := s.cascade.Recompute(ctx, []string{rec.Code}); err != nil {
			return CurrencyView{}, err
		}
	}
	return CurrencyView{CurrencyRate: rec, EffectiveRate: newEffective, ManualExpired: rec.ManualExpired(now)}, nil
}

// BulkUpdateRates pins every listed currency to its given manual rate and
// runs one cascade covering all of them. The batch validates as a whole
// before the first write and persists in a single transaction, so a failed
// save pins nothing.
func (s *Service) BulkUpdateRates(ctx context.Context, rates map[string]decimal.Decimal) (domain.CascadeReport, error) {
	if err := s.validator.ValidateBulk(rates); err != nil {
		return domain.CascadeReport{}, err
	}

	if err := s.currencies.PinManualRates(ctx, rates, s.now()); err != nil {
		return domain.CascadeReport{}, err
	}

	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	return s.cascade.Recompute(ctx, codes)
}

func (s *Service) RefreshLive(ctx context.Context) (domain.RefreshOutcome, error) {
	return s.scheduler.AttemptRefresh(ctx)
}
