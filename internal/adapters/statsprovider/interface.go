package statsprovider

import (
	"context"

	"github.com/siegestats/backend/internal/domain"
)

// RankOptions narrows a ranked lookup. The zero value means the current season
// in the default region.
type RankOptions struct {
	Season int
	Region string
}

// StatsProvider is the upstream publisher API.
//
// List-returning calls yield an empty slice when the upstream has no data for
// the query. All calls return domain.ErrTemporarilyUnavailable for errors
// believed to be intermittent (rate limiting, upstream maintenance). The call
// may be retried later.
type StatsProvider interface {
	// ResolveProfile looks up profiles by their current username on a platform.
	ResolveProfile(ctx context.Context, platform domain.Platform, username string) ([]domain.PlayerUsername, error)

	GetLevel(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerLevel, error)
	GetPlaytime(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerPlaytime, error)
	GetRank(ctx context.Context, platform domain.Platform, profileID string, opts RankOptions) ([]domain.PlayerRank, error)
	GetUsername(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerUsername, error)

	// GetStats returns nil when the upstream has no stats for the profile.
	GetStats(ctx context.Context, platform domain.Platform, profileID string) (*domain.PlayerStats, error)

	GetStatus(ctx context.Context) ([]domain.ServerStatus, error)
}
