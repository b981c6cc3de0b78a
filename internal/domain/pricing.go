package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricedEntity is anything in the catalog carrying a customer-facing price
// denominated in a foreign currency: passes, subscriptions, invoices. The
// canonical price is always in the base currency; DerivedPrice is what the
// customer sees.
type PricedEntity struct {
	EntityID     uuid.UUID
	CurrencyCode string
	BasePrice    decimal.Decimal
	DerivedPrice decimal.Decimal
}

// DerivedPrice is one recomputed price ready to persist.
type DerivedPrice struct {
	EntityID uuid.UUID
	Amount   decimal.Decimal
}

// CascadeReport summarizes one recalculation run.
type CascadeReport struct {
	TriggerCodes []string
	Updated      int
}
