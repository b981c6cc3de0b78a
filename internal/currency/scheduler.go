package currency

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/adapters"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Refresh cadence: every 3 hours while admins are awake, every 12 hours
// overnight. Hours are evaluated in the configured admin timezone.
const (
	dayStartHour  = 9
	dayEndHour    = 23
	dayInterval   = 180 * time.Minute
	nightInterval = 720 * time.Minute
)

const providerCallTimeout = 10 * time.Second

// RefreshScheduler arbitrates live-rate refreshes: it decides whether an
// attempt is currently allowed (quota plus cadence) and runs the full
// fetch-apply-cascade pipeline when it is. Checking and attempting are
// separate so the admin surface can show a skip reason without side effects.
type RefreshScheduler struct {
	quota      *QuotaTracker
	fetchState adapters.FetchStateRepository
	currencies adapters.CurrencyRepository
	provider   adapters.ProviderClient
	cascade    *Cascade
	resolver   *Resolver
	loc        *time.Location
	now        func() time.Time
}

func NewRefreshScheduler(
	quota *QuotaTracker,
	fetchState adapters.FetchStateRepository,
	currencies adapters.CurrencyRepository,
	provider adapters.ProviderClient,
	cascade *Cascade,
	resolver *Resolver,
	loc *time.Location,
	now func() time.Time,
) *RefreshScheduler {
	if now == nil {
		now = time.Now
	}
	return &RefreshScheduler{
		quota:      quota,
		fetchState: fetchState,
		currencies: currencies,
		provider:   provider,
		cascade:    cascade,
		resolver:   resolver,
		loc:        loc,
		now:        now,
	}
}

// Interval returns the cadence applicable at t.
func (s *RefreshScheduler) Interval(t time.Time) time.Duration {
	hour := t.In(s.loc).Hour()
	if hour >= dayStartHour && hour < dayEndHour {
		return dayInterval
	}
	return nightInterval
}

// Schedule derives the current refresh window from the last successful
// fetch. Failures never push the window forward; with no success on record
// a refresh is immediately allowed.
func (s *RefreshScheduler) Schedule(ctx context.Context) (domain.RefreshSchedule, error) {
	now := s.now()
	interval := s.Interval(now)
	sched := domain.RefreshSchedule{IntervalMinutes: int(interval.Minutes())}

	state, err := s.fetchState.Get(ctx)
	if err != nil {
		return sched, err
	}
	if state.LastSuccessAt == nil {
		sched.NextAllowedAt = now
		return sched, nil
	}
	sched.NextAllowedAt = state.LastSuccessAt.Add(interval)
	return sched, nil
}

// IsAllowed reports whether a refresh attempt would proceed right now, and
// if not, why and when it next could. An exhausted quota outranks an active
// cooldown: waiting out the window would not help, and the admin surface
// should say so.
func (s *RefreshScheduler) IsAllowed(ctx context.Context) (bool, domain.SkipReason, time.Time, error) {
	now := s.now()
	sched, err := s.Schedule(ctx)
	if err != nil {
		return false, "", time.Time{}, err
	}
	remaining, err := s.quota.Remaining(ctx, now)
	if err != nil {
		return false, "", time.Time{}, err
	}
	if remaining <= 0 {
		return false, domain.SkipQuota, sched.NextAllowedAt, nil
	}
	if now.Before(sched.NextAllowedAt) {
		return false, domain.SkipCooldown, sched.NextAllowedAt, nil
	}
	return true, "", sched.NextAllowedAt, nil
}

// AttemptRefresh runs one refresh end to end. A disallowed attempt returns a
// Skipped outcome without touching the provider or the quota. A provider
// failure keeps every last known-good live rate, stamps the error on the
// tracked currencies and never cascades.
func (s *RefreshScheduler) AttemptRefresh(ctx context.Context) (domain.RefreshOutcome, error) {
	allowed, reason, nextAt, err := s.IsAllowed(ctx)
	if err != nil {
		return domain.RefreshOutcome{}, err
	}
	if !allowed {
		return domain.RefreshOutcome{State: domain.RefreshSkipped, SkipReason: reason, NextAllowedAt: nextAt}, nil
	}

	now := s.now()
	if err := s.quota.RecordAttempt(ctx, now); err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			// Lost the race for the last unit.
			return domain.RefreshOutcome{State: domain.RefreshSkipped, SkipReason: domain.SkipQuota, NextAllowedAt: nextAt}, nil
		}
		return domain.RefreshOutcome{}, err
	}

	before, err := s.currencies.List(ctx, true)
	if err != nil {
		return domain.RefreshOutcome{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, providerCallTimeout)
	defer cancel()
	fetched, fetchErr := s.provider.FetchRates(callCtx)
	if fetchErr != nil {
		logrus.WithError(fetchErr).Warn("Provider fetch failed, keeping last known rates")
		if markErr := s.currencies.MarkFetchError(ctx, s.resolver.BaseCode(), fetchErr.Error()); markErr != nil {
			return domain.RefreshOutcome{}, markErr
		}
		if stateErr := s.fetchState.RecordError(ctx, now, fetchErr.Error()); stateErr != nil {
			return domain.RefreshOutcome{}, stateErr
		}
		return domain.RefreshOutcome{State: domain.RefreshFailed, Err: fetchErr}, nil
	}

	applied, triggers := s.partition(before, fetched)
	if err := s.currencies.ApplyLiveRates(ctx, applied, now); err != nil {
		return domain.RefreshOutcome{}, err
	}
	if err := s.fetchState.RecordSuccess(ctx, now); err != nil {
		return domain.RefreshOutcome{}, err
	}

	if len(triggers) > 0 {
		if _, err := s.cascade.Recompute(ctx, triggers); err != nil {
			return domain.RefreshOutcome{}, err
		}
	}

	codes := make([]string, 0, len(applied))
	for code := range applied {
		codes = append(codes, code)
	}
	return domain.RefreshOutcome{State: domain.RefreshDone, UpdatedCodes: sortedCodes(codes)}, nil
}

// partition keeps only tracked non-base currencies from the provider
// response and collects the cascade trigger set: currencies in live mode
// whose effective rate actually changed value. Live metadata updates on
// manual-pinned currencies too, but those never change the effective price.
func (s *RefreshScheduler) partition(tracked []domain.CurrencyRate, fetched map[string]decimal.Decimal) (map[string]decimal.Decimal, []string) {
	applied := make(map[string]decimal.Decimal, len(fetched))
	var triggers []string
	for _, rec := range tracked {
		if s.resolver.IsBase(rec.Code) {
			continue
		}
		rate, ok := fetched[rec.Code]
		if !ok || !rate.IsPositive() {
			continue
		}
		applied[rec.Code] = rate
		if rec.RateMode == domain.ModeLive && !s.resolver.EffectiveRate(rec).Equal(rate) {
			triggers = append(triggers, rec.Code)
		}
	}
	return applied, triggers
}

func sortedCodes(codes []string) []string {
	sort.Strings(codes)
	return codes
}
