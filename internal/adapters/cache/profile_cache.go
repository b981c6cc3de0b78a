package cache

import (
	"fmt"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/domain"
	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// RistrettoProfileCache keeps admin profiles warm for a freshness window so
// the boundary doesn't hit the profile store on every request. Entries
// expire by TTL; an explicit Invalidate covers profile edits.
type RistrettoProfileCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewProfileCache(maxItems int64, ttl time.Duration) (*RistrettoProfileCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile cache failed: %w", err)
	}
	return &RistrettoProfileCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoProfileCache) Get(adminID uuid.UUID) (domain.AdminProfile, bool) {
	if v, ok := c.cache.Get(adminID.String()); ok {
		p, ok := v.(domain.AdminProfile)
		return p, ok
	}
	return domain.AdminProfile{}, false
}

func (c *RistrettoProfileCache) Set(profile domain.AdminProfile) {
	c.cache.SetWithTTL(profile.AdminID.String(), profile, 1, c.ttl)
}

func (c *RistrettoProfileCache) Invalidate(adminID uuid.UUID) {
	c.cache.Del(adminID.String())
}

func (c *RistrettoProfileCache) Close() { c.cache.Close() }
