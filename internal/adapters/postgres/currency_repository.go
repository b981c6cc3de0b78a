package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const currencyColumns = `
	code, name, symbol, decimal_places, symbol_position,
	live_rate, live_rate_at, manual_rate, manual_rate_at, manual_expires_at,
	rate_mode, is_active, is_default, is_admin_display,
	last_fetch_status, last_fetch_error, updated_at`

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

func (r *CurrencyRepository) GetByCode(ctx context.Context, code string) (domain.CurrencyRate, error) {
	q := `select` + currencyColumns + ` from currencies where code = $1`

	rec, err := scanCurrency(r.pool.QueryRow(ctx, q, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CurrencyRate{}, domain.ErrCurrencyNotFound
	}
	if err != nil {
		return domain.CurrencyRate{}, fmt.Errorf("failed to get currency %q: %w", code, err)
	}
	return rec, nil
}

func (r *CurrencyRepository) List(ctx context.Context, includeInactive bool) ([]domain.CurrencyRate, error) {
	q := `select` + currencyColumns + ` from currencies where ($1 or is_active) order by is_default desc, code`

	rows, err := r.pool.Query(ctx, q, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	recs := make([]domain.CurrencyRate, 0, 16)
	for rows.Next() {
		rec, scanErr := scanCurrency(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", scanErr)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return recs, nil
}

func (r *CurrencyRepository) Create(ctx context.Context, c domain.CurrencyRate) error {
	const q = `
		insert into currencies (` + currencyColumns + `)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`

	_, err := r.pool.Exec(ctx, q,
		c.Code, c.Name, c.Symbol, c.DecimalPlaces, c.SymbolPosition,
		c.LiveRate, c.LiveRateAt, c.ManualRate, c.ManualRateAt, c.ManualExpiresAt,
		c.RateMode, c.IsActive, c.IsDefault, c.IsAdminDisplay,
		c.LastFetchStatus, c.LastFetchError, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrCurrencyExists
		}
		return fmt.Errorf("failed to create currency %q: %w", c.Code, err)
	}
	return nil
}

// Update persists the record. Claiming is_default or is_admin_display clears
// the previous holder inside the same transaction, so the singleton
// invariants hold even under concurrent admin edits.
func (r *CurrencyRepository) Update(ctx context.Context, c domain.CurrencyRate) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if c.IsDefault {
		if _, err = tx.Exec(ctx, `update currencies set is_default = false where is_default and code <> $1`, c.Code); err != nil {
			return fmt.Errorf("failed to clear previous default: %w", err)
		}
	}
	if c.IsAdminDisplay {
		if _, err = tx.Exec(ctx, `update currencies set is_admin_display = false where is_admin_display and code <> $1`, c.Code); err != nil {
			return fmt.Errorf("failed to clear previous admin display: %w", err)
		}
	}

	const q = `
		update currencies set
			name = $2, symbol = $3, decimal_places = $4, symbol_position = $5,
			live_rate = $6, live_rate_at = $7,
			manual_rate = $8, manual_rate_at = $9, manual_expires_at = $10,
			rate_mode = $11, is_active = $12, is_default = $13, is_admin_display = $14,
			last_fetch_status = $15, last_fetch_error = $16, updated_at = $17
		where code = $1;
	`

	tag, err := tx.Exec(ctx, q,
		c.Code, c.Name, c.Symbol, c.DecimalPlaces, c.SymbolPosition,
		c.LiveRate, c.LiveRateAt, c.ManualRate, c.ManualRateAt, c.ManualExpiresAt,
		c.RateMode, c.IsActive, c.IsDefault, c.IsAdminDisplay,
		c.LastFetchStatus, c.LastFetchError, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency %q: %w", c.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCurrencyNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rateRow struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
}

// ApplyLiveRates stamps the fetched rate and ok status on every listed
// currency as one transactional batch.
func (r *CurrencyRepository) ApplyLiveRates(ctx context.Context, rates map[string]decimal.Decimal, fetchedAt time.Time) error {
	if len(rates) == 0 {
		return nil
	}

	rows := make([]rateRow, 0, len(rates))
	for code, rate := range rates {
		rows = append(rows, rateRow{Code: code, Rate: rate})
	}
	payloadJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal live rates: %w", err)
	}

	const q = `
		with input_rows as (
			select * from json_to_recordset($1::json) as r(code char(3), rate numeric)
		)
		update currencies c
		set live_rate = ir.rate, live_rate_at = $2,
		    last_fetch_status = 'ok', last_fetch_error = '', updated_at = $2
		from input_rows ir
		where c.code = ir.code;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, q, json.RawMessage(payloadJSON), fetchedAt); err != nil {
		return fmt.Errorf("failed to apply live rates: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PinManualRates stamps the manual rate and forces manual mode on every
// listed currency as one transactional batch. The affected row count must
// match the batch size, so an unknown code aborts with nothing written.
func (r *CurrencyRepository) PinManualRates(ctx context.Context, rates map[string]decimal.Decimal, pinnedAt time.Time) error {
	if len(rates) == 0 {
		return nil
	}

	rows := make([]rateRow, 0, len(rates))
	for code, rate := range rates {
		rows = append(rows, rateRow{Code: code, Rate: rate})
	}
	payloadJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal manual rates: %w", err)
	}

	const q = `
		with input_rows as (
			select * from json_to_recordset($1::json) as r(code char(3), rate numeric)
		)
		update currencies c
		set manual_rate = ir.rate, manual_rate_at = $2,
		    rate_mode = 'manual', updated_at = $2
		from input_rows ir
		where c.code = ir.code;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, q, json.RawMessage(payloadJSON), pinnedAt)
	if err != nil {
		return fmt.Errorf("failed to pin manual rates: %w", err)
	}
	if int(tag.RowsAffected()) != len(rates) {
		return domain.ErrCurrencyNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *CurrencyRepository) MarkFetchError(ctx context.Context, baseCode string, msg string) error {
	const q = `
		update currencies
		set last_fetch_status = 'error', last_fetch_error = $2, updated_at = now()
		where is_active and code <> $1;
	`

	if _, err := r.pool.Exec(ctx, q, baseCode, msg); err != nil {
		return fmt.Errorf("failed to mark fetch error: %w", err)
	}
	return nil
}

func scanCurrency(row pgx.Row) (domain.CurrencyRate, error) {
	var c domain.CurrencyRate
	err := row.Scan(
		&c.Code, &c.Name, &c.Symbol, &c.DecimalPlaces, &c.SymbolPosition,
		&c.LiveRate, &c.LiveRateAt, &c.ManualRate, &c.ManualRateAt, &c.ManualExpiresAt,
		&c.RateMode, &c.IsActive, &c.IsDefault, &c.IsAdminDisplay,
		&c.LastFetchStatus, &c.LastFetchError, &c.UpdatedAt,
	)
	return c, err
}
