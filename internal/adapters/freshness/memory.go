package freshness

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/siegestats/backend/internal/domain"
)

// memoryTracker keeps freshness metadata in process. Used in development and
// tests where no Redis is available. Freshness records are retained for a
// bounded window; a dropped record just forces a refetch.
type memoryTracker struct {
	refreshed *ttlcache.Cache[string, time.Time]
	ids       *ttlcache.Cache[string, string]
}

func NewMemoryTracker(retention time.Duration) *memoryTracker {
	refreshed := ttlcache.New[string, time.Time](
		ttlcache.WithTTL[string, time.Time](retention),
		ttlcache.WithDisableTouchOnHit[string, time.Time](),
	)
	go refreshed.Start()

	ids := ttlcache.New[string, string]()

	return &memoryTracker{
		refreshed: refreshed,
		ids:       ids,
	}
}

func (t *memoryTracker) IsOnline(ctx context.Context) bool {
	return true
}

func (t *memoryTracker) LastRefreshed(ctx context.Context, key domain.CacheKey) (time.Time, bool, error) {
	item := t.refreshed.Get(key.String())
	if item == nil {
		return time.Time{}, false, nil
	}
	return item.Value(), true, nil
}

func (t *memoryTracker) SetRefreshed(ctx context.Context, key domain.CacheKey, refreshedAt time.Time) error {
	t.refreshed.Set(key.String(), refreshedAt, ttlcache.DefaultTTL)
	return nil
}

func (t *memoryTracker) ProfileID(ctx context.Context, key domain.CacheKey) (string, bool, error) {
	item := t.ids.Get(key.String())
	if item == nil {
		return "", false, nil
	}
	return item.Value(), true, nil
}

func (t *memoryTracker) SetProfileID(ctx context.Context, key domain.CacheKey, profileID string) error {
	t.ids.Set(key.String(), profileID, ttlcache.NoTTL)
	return nil
}

var _ Tracker = (*memoryTracker)(nil)
