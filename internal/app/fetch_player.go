package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/siegestats/backend/internal/adapters/docstore"
	"github.com/siegestats/backend/internal/adapters/freshness"
	"github.com/siegestats/backend/internal/adapters/statsprovider"
	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
)

// FetchPlayer assembles the full player document for a (platform, username)
// pair.
type FetchPlayer func(ctx context.Context, platform domain.Platform, username string) (domain.PlayerDocument, error)

// BuildFetchPlayer resolves the profile id once, then fans out the five
// category fetches concurrently, each independently subject to the cache-aside
// rules. Any single category failure fails the whole aggregate; in-flight
// sibling fetches are not cancelled, they just run to completion and their
// results are discarded.
func BuildFetchPlayer(
	resolveProfile ResolveProfile,
	provider statsprovider.StatsProvider,
	tracker freshness.Tracker,
	store docstore.Store,
	opts CacheOptions,
	nowFunc func() time.Time,
) FetchPlayer {
	fetchLevel := BuildFetchCached[*domain.PlayerLevel](tracker, store, opts, nowFunc)
	fetchPlaytime := BuildFetchCached[*domain.PlayerPlaytime](tracker, store, opts, nowFunc)
	fetchRank := BuildFetchCached[*domain.PlayerRank](tracker, store, opts, nowFunc)
	fetchStats := BuildFetchCached[*domain.PlayerStats](tracker, store, opts, nowFunc)
	fetchUsername := BuildFetchCached[*domain.PlayerUsername](tracker, store, opts, nowFunc)

	return func(ctx context.Context, platform domain.Platform, username string) (domain.PlayerDocument, error) {
		profileID, err := resolveProfile(ctx, platform, username)
		if err != nil {
			return domain.PlayerDocument{}, fmt.Errorf("could not resolve profile: %w", err)
		}

		ctx = logging.AddMetaToContext(ctx, slog.String("profileId", profileID))

		document := domain.PlayerDocument{ProfileID: profileID}

		// Each goroutine writes a distinct field; g.Wait orders the reads below
		var g errgroup.Group

		g.Go(func() error {
			level, err := fetchLevel(ctx, domain.CategoryLevel, profileID, func(ctx context.Context) (*domain.PlayerLevel, error) {
				levels, err := provider.GetLevel(ctx, platform, profileID)
				if err != nil {
					return nil, err
				}
				return firstOrNil(levels), nil
			})
			if err != nil {
				return fmt.Errorf("could not fetch level: %w", err)
			}
			document.Level = level
			return nil
		})

		g.Go(func() error {
			playtime, err := fetchPlaytime(ctx, domain.CategoryPlaytime, profileID, func(ctx context.Context) (*domain.PlayerPlaytime, error) {
				playtimes, err := provider.GetPlaytime(ctx, platform, profileID)
				if err != nil {
					return nil, err
				}
				return firstOrNil(playtimes), nil
			})
			if err != nil {
				return fmt.Errorf("could not fetch playtime: %w", err)
			}
			document.Playtime = playtime
			return nil
		})

		g.Go(func() error {
			rank, err := fetchRank(ctx, domain.CategoryRank, profileID, func(ctx context.Context) (*domain.PlayerRank, error) {
				ranks, err := provider.GetRank(ctx, platform, profileID, statsprovider.RankOptions{})
				if err != nil {
					return nil, err
				}
				return firstOrNil(ranks), nil
			})
			if err != nil {
				return fmt.Errorf("could not fetch rank: %w", err)
			}
			document.Rank = rank
			return nil
		})

		g.Go(func() error {
			stats, err := fetchStats(ctx, domain.CategoryStats, profileID, func(ctx context.Context) (*domain.PlayerStats, error) {
				return provider.GetStats(ctx, platform, profileID)
			})
			if err != nil {
				return fmt.Errorf("could not fetch stats: %w", err)
			}
			document.Stats = stats
			return nil
		})

		g.Go(func() error {
			currentUsername, err := fetchUsername(ctx, domain.CategoryUsername, profileID, func(ctx context.Context) (*domain.PlayerUsername, error) {
				usernames, err := provider.GetUsername(ctx, platform, profileID)
				if err != nil {
					return nil, err
				}
				return firstOrNil(usernames), nil
			})
			if err != nil {
				return fmt.Errorf("could not fetch username: %w", err)
			}
			document.Username = currentUsername
			return nil
		})

		if err := g.Wait(); err != nil {
			return domain.PlayerDocument{}, err
		}

		return document, nil
	}
}
