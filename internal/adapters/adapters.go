package adapters

import (
	"context"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProviderClient fetches the latest rates from the external provider as a
// map of currency code to rate per one unit of the base currency.
type ProviderClient interface {
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

type CurrencyRepository interface {
	GetByCode(ctx context.Context, code string) (domain.CurrencyRate, error)
	List(ctx context.Context, includeInactive bool) ([]domain.CurrencyRate, error)
	Create(ctx context.Context, c domain.CurrencyRate) error
	// Update persists the record; when the record claims is_default or
	// is_admin_display, the previous holder is cleared in the same
	// transaction.
	Update(ctx context.Context, c domain.CurrencyRate) error
	// ApplyLiveRates sets live_rate/live_rate_at and fetch status for every
	// listed code in one transaction.
	ApplyLiveRates(ctx context.Context, rates map[string]decimal.Decimal, fetchedAt time.Time) error
	// PinManualRates sets manual_rate/manual_rate_at and forces manual mode
	// for every listed code in one transaction. An unknown code fails the
	// whole batch with domain.ErrCurrencyNotFound and nothing is written.
	PinManualRates(ctx context.Context, rates map[string]decimal.Decimal, pinnedAt time.Time) error
	// MarkFetchError stamps last_fetch_status=error and the message on every
	// active non-base currency.
	MarkFetchError(ctx context.Context, baseCode string, msg string) error
}

type QuotaRepository interface {
	// Window returns the counter for monthKey, zero if none exists yet.
	Window(ctx context.Context, monthKey string) (int, error)
	// Increment atomically bumps the counter for monthKey, failing with
	// domain.ErrQuotaExceeded when it already reached limit. The check and
	// the bump are one statement so concurrent callers cannot both take the
	// last unit.
	Increment(ctx context.Context, monthKey string, limit int) error
}

type FetchStateRepository interface {
	Get(ctx context.Context) (domain.FetchState, error)
	RecordSuccess(ctx context.Context, at time.Time) error
	RecordError(ctx context.Context, at time.Time, msg string) error
}

// PricedEntityRepository is the contract to the catalog: passes,
// subscriptions and invoices priced in foreign currencies.
type PricedEntityRepository interface {
	ListPricedIn(ctx context.Context, codes []string) ([]domain.PricedEntity, error)
	// SetDerivedPrices persists the whole batch in one transaction: all
	// updates commit or none do.
	SetDerivedPrices(ctx context.Context, prices []domain.DerivedPrice) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, adminID uuid.UUID) (domain.AdminProfile, error)
}

// ProfileCache is the explicit cache-with-TTL the API boundary consults
// before hitting ProfileRepository.
type ProfileCache interface {
	Get(adminID uuid.UUID) (domain.AdminProfile, bool)
	Set(profile domain.AdminProfile)
	Invalidate(adminID uuid.UUID)
}
