package currency

import (
	"context"
	"fmt"
	"sort"

	"github.com/botanoz/turistpassfinal-sub000/internal/adapters"
	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/sirupsen/logrus"
)

// Cascade recomputes every derived, foreign-denominated price after an
// accepted rate change. The whole batch persists in one transaction so
// customers never see a half-updated catalog, and the computation is a pure
// function of (canonical price, effective rate), so rerunning it with
// unchanged rates is a no-op.
type Cascade struct {
	entities   adapters.PricedEntityRepository
	currencies adapters.CurrencyRepository
	resolver   *Resolver
}

func NewCascade(entities adapters.PricedEntityRepository, currencies adapters.CurrencyRepository, resolver *Resolver) *Cascade {
	return &Cascade{entities: entities, currencies: currencies, resolver: resolver}
}

func (c *Cascade) Recompute(ctx context.Context, triggerCodes []string) (domain.CascadeReport, error) {
	codes := c.normalize(triggerCodes)
	report := domain.CascadeReport{TriggerCodes: codes}
	if len(codes) == 0 {
		return report, nil
	}

	records := make(map[string]domain.CurrencyRate, len(codes))
	for _, code := range codes {
		rec, err := c.currencies.GetByCode(ctx, code)
		if err != nil {
			return report, fmt.Errorf("cascade: load currency %q: %w", code, err)
		}
		records[code] = rec
	}

	ents, err := c.entities.ListPricedIn(ctx, codes)
	if err != nil {
		return report, fmt.Errorf("cascade: list priced entities: %w", err)
	}
	if len(ents) == 0 {
		return report, nil
	}

	prices := make([]domain.DerivedPrice, 0, len(ents))
	for _, ent := range ents {
		rec, ok := records[ent.CurrencyCode]
		if !ok {
			// ListPricedIn is scoped to the trigger codes; anything else is
			// a contract violation from the catalog side.
			return report, fmt.Errorf("cascade: entity %s priced in unexpected currency %q", ent.EntityID, ent.CurrencyCode)
		}
		prices = append(prices, domain.DerivedPrice{
			EntityID: ent.EntityID,
			Amount:   c.resolver.Convert(ent.BasePrice, rec),
		})
	}

	if err := c.entities.SetDerivedPrices(ctx, prices); err != nil {
		return report, fmt.Errorf("cascade: persist derived prices: %w", err)
	}

	report.Updated = len(prices)
	logrus.WithFields(logrus.Fields{"codes": codes, "updated": report.Updated}).Info("Derived prices recalculated")
	return report, nil
}

// normalize dedupes, drops the base currency and sorts for deterministic
// reporting.
func (c *Cascade) normalize(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if c.resolver.IsBase(code) {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
