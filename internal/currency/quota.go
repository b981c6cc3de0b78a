package currency

import (
	"context"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/adapters"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
)

// QuotaTracker counts provider calls against the monthly limit. The window
// rolls over implicitly: a month key nobody has incremented yet reads as a
// zero counter.
type QuotaTracker struct {
	repo  adapters.QuotaRepository
	limit int
	loc   *time.Location
}

func NewQuotaTracker(repo adapters.QuotaRepository, monthlyLimit int, loc *time.Location) *QuotaTracker {
	return &QuotaTracker{repo: repo, limit: monthlyLimit, loc: loc}
}

func (t *QuotaTracker) MonthlyLimit() int { return t.limit }

func (t *QuotaTracker) Window(ctx context.Context, now time.Time) (domain.QuotaWindow, error) {
	key := domain.MonthKey(now, t.loc)
	made, err := t.repo.Window(ctx, key)
	if err != nil {
		return domain.QuotaWindow{}, err
	}
	return domain.QuotaWindow{MonthKey: key, RequestsMade: made, MonthlyLimit: t.limit}, nil
}

func (t *QuotaTracker) Remaining(ctx context.Context, now time.Time) (int, error) {
	w, err := t.Window(ctx, now)
	if err != nil {
		return 0, err
	}
	return w.Remaining(), nil
}

// RecordAttempt consumes one unit of quota, or fails with
// domain.ErrQuotaExceeded without mutating anything. The underlying
// increment is a single compare-and-bump, so two near-simultaneous refresh
// triggers cannot both take the last unit.
func (t *QuotaTracker) RecordAttempt(ctx context.Context, now time.Time) error {
	return t.repo.Increment(ctx, domain.MonthKey(now, t.loc), t.limit)
}
