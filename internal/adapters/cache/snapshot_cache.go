package cache

import (
	"fmt"
	"fxconverter/internal/domain"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// RistrettoSnapshotCache holds one CachedSnapshot per base currency.
// Entries are stored without a ristretto TTL: expired snapshots must stay
// readable through Latest so they can serve as a fallback.
type RistrettoSnapshotCache struct {
	cache *ristretto.Cache
	clock clockwork.Clock
	ttl   time.Duration
}

func NewSnapshotCache(maxItems int64, ttl time.Duration, clock clockwork.Clock) (*RistrettoSnapshotCache, error) {
	if maxItems <= 0 {
		maxItems = 64
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache failed: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RistrettoSnapshotCache{cache: c, clock: clock, ttl: ttl}, nil
}

func (c *RistrettoSnapshotCache) Fresh(base string) (domain.RateSnapshot, bool) {
	entry, ok := c.get(base)
	if !ok || !entry.FreshAt(c.clock.Now()) {
		return domain.RateSnapshot{}, false
	}
	return entry.Snapshot, true
}

func (c *RistrettoSnapshotCache) Latest(base string) (domain.RateSnapshot, bool) {
	entry, ok := c.get(base)
	if !ok {
		return domain.RateSnapshot{}, false
	}
	return entry.Snapshot, true
}

// Replace swaps the entry for the snapshot's base wholesale; the last writer wins.
func (c *RistrettoSnapshotCache) Replace(snapshot domain.RateSnapshot) domain.CachedSnapshot {
	entry := domain.CachedSnapshot{
		Snapshot:  snapshot,
		ExpiresAt: c.clock.Now().Add(c.ttl),
	}
	if !c.cache.Set(snapshot.Base, entry, 1) {
		logrus.WithField("base", snapshot.Base).Warn("Snapshot cache dropped a write")
	}
	// ristretto applies writes asynchronously
	c.cache.Wait()
	return entry
}

func (c *RistrettoSnapshotCache) Close() { c.cache.Close() }

func (c *RistrettoSnapshotCache) get(base string) (domain.CachedSnapshot, bool) {
	v, ok := c.cache.Get(base)
	if !ok {
		return domain.CachedSnapshot{}, false
	}
	entry, ok := v.(domain.CachedSnapshot)
	return entry, ok
}
