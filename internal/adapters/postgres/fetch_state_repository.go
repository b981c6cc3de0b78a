package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FetchStateRepository persists the single-row outcome of the most recent
// provider call. The row is seeded by migration, so reads never miss.
type FetchStateRepository struct {
	pool *pgxpool.Pool
}

func NewFetchStateRepository(pool *pgxpool.Pool) *FetchStateRepository {
	return &FetchStateRepository{pool: pool}
}

func (r *FetchStateRepository) Get(ctx context.Context) (domain.FetchState, error) {
	const q = `select last_success_at, last_error, last_error_at from provider_fetch_state where id = 1`

	var st domain.FetchState
	if err := r.pool.QueryRow(ctx, q).Scan(&st.LastSuccessAt, &st.LastError, &st.LastErrorAt); err != nil {
		return domain.FetchState{}, fmt.Errorf("failed to read fetch state: %w", err)
	}
	return st, nil
}

func (r *FetchStateRepository) RecordSuccess(ctx context.Context, at time.Time) error {
	const q = `update provider_fetch_state set last_success_at = $1, last_error = '' where id = 1`

	if _, err := r.pool.Exec(ctx, q, at); err != nil {
		return fmt.Errorf("failed to record fetch success: %w", err)
	}
	return nil
}

func (r *FetchStateRepository) RecordError(ctx context.Context, at time.Time, msg string) error {
	const q = `update provider_fetch_state set last_error = $2, last_error_at = $1 where id = 1`

	if _, err := r.pool.Exec(ctx, q, at, msg); err != nil {
		return fmt.Errorf("failed to record fetch error: %w", err)
	}
	return nil
}
