package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PricingRepository is the catalog side of the cascade: every pass,
// subscription and invoice priced in a foreign currency lives behind this
// contract.
type PricingRepository struct {
	pool *pgxpool.Pool
}

func NewPricingRepository(pool *pgxpool.Pool) *PricingRepository {
	return &PricingRepository{pool: pool}
}

func (r *PricingRepository) ListPricedIn(ctx context.Context, codes []string) ([]domain.PricedEntity, error) {
	const q = `
		select entity_id, currency_code, base_price, derived_price
		from priced_entities
		where currency_code = any($1);
	`

	rows, err := r.pool.Query(ctx, q, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query priced entities: %w", err)
	}
	defer rows.Close()

	ents := make([]domain.PricedEntity, 0, 64)
	for rows.Next() {
		var e domain.PricedEntity
		if err = rows.Scan(&e.EntityID, &e.CurrencyCode, &e.BasePrice, &e.DerivedPrice); err != nil {
			return nil, fmt.Errorf("failed to scan priced entity: %w", err)
		}
		ents = append(ents, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating priced entities: %w", err)
	}
	return ents, nil
}

type derivedPriceRow struct {
	EntityID string          `json:"entity_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// SetDerivedPrices applies the whole batch inside one transaction: either
// every entity gets its new price or none does.
func (r *PricingRepository) SetDerivedPrices(ctx context.Context, prices []domain.DerivedPrice) error {
	if len(prices) == 0 {
		return nil
	}

	payload := make([]derivedPriceRow, 0, len(prices))
	for _, p := range prices {
		payload = append(payload, derivedPriceRow{EntityID: p.EntityID.String(), Amount: p.Amount})
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal derived prices: %w", err)
	}

	const q = `
		with input_rows as (
			select * from json_to_recordset($1::json) as r(entity_id uuid, amount numeric)
		)
		update priced_entities pe
		set derived_price = ir.amount, updated_at = now()
		from input_rows ir
		where pe.entity_id = ir.entity_id;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to set derived prices: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
