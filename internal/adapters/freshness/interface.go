package freshness

import (
	"context"
	"time"

	"github.com/siegestats/backend/internal/domain"
)

// Tracker records when each cache key was last confirmed fresh, plus the
// resolved profile id for identity keys. It is metadata only; the documents
// themselves live in the document store.
type Tracker interface {
	// IsOnline reports whether the backend is currently reachable. When it is
	// not, callers bypass caching entirely rather than fail.
	IsOnline(ctx context.Context) bool

	// LastRefreshed returns the time the key was last refreshed. The second
	// return is false when no record exists for the key.
	LastRefreshed(ctx context.Context, key domain.CacheKey) (time.Time, bool, error)
	SetRefreshed(ctx context.Context, key domain.CacheKey, refreshedAt time.Time) error

	// ProfileID returns the cached identity resolution for the key. Identity
	// records do not expire.
	ProfileID(ctx context.Context, key domain.CacheKey) (string, bool, error)
	SetProfileID(ctx context.Context, key domain.CacheKey, profileID string) error
}
