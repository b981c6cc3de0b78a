package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuotaRepository struct {
	pool *pgxpool.Pool
}

func NewQuotaRepository(pool *pgxpool.Pool) *QuotaRepository {
	return &QuotaRepository{pool: pool}
}

func (r *QuotaRepository) Window(ctx context.Context, monthKey string) (int, error) {
	const q = `select requests_made from provider_quota where month_key = $1`

	var made int
	err := r.pool.QueryRow(ctx, q, monthKey).Scan(&made)
	if errors.Is(err, pgx.ErrNoRows) {
		// Month rolled over; the window starts at zero on first increment.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read quota window %q: %w", monthKey, err)
	}
	return made, nil
}

// Increment bumps the month counter in a single guarded statement. The
// WHERE on the conflict branch makes the check and the bump atomic: when
// the counter already reached the limit no row comes back and no mutation
// happened, so concurrent callers cannot both take the last unit.
func (r *QuotaRepository) Increment(ctx context.Context, monthKey string, limit int) error {
	if limit <= 0 {
		return domain.ErrQuotaExceeded
	}

	const q = `
		insert into provider_quota (month_key, requests_made)
		values ($1, 1)
		on conflict (month_key) do update
		  set requests_made = provider_quota.requests_made + 1
		  where provider_quota.requests_made < $2
		returning requests_made;
	`

	var made int
	err := r.pool.QueryRow(ctx, q, monthKey, limit).Scan(&made)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrQuotaExceeded
	}
	if err != nil {
		return fmt.Errorf("failed to increment quota window %q: %w", monthKey, err)
	}
	return nil
}
