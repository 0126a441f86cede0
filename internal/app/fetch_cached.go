package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/siegestats/backend/internal/adapters/docstore"
	"github.com/siegestats/backend/internal/adapters/freshness"
	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
)

// FetchFn performs the actual upstream call for exactly one category.
type FetchFn[T any] func(ctx context.Context) (T, error)

// FetchCached wraps a single-category fetch with cache-aside orchestration.
type FetchCached[T any] func(ctx context.Context, category domain.Category, profileID string, fetch FetchFn[T]) (T, error)

// BuildFetchCached builds the cache-aside wrapper for one document type.
//
// The decision procedure, in order:
//  1. When caching is disabled, or either backend reports itself offline, the
//     fetch goes straight upstream. Stored state is neither read nor written.
//  2. A freshness record newer than the staleness window means the stored
//     document is served as is, without touching the upstream or the record.
//  3. A missing document behind a fresh record means the store and the tracker
//     drifted apart. The record is disregarded and the document refetched.
//  4. Otherwise the fetch goes upstream. The result is persisted (insert on
//     first write, update on refresh), the freshness record set to now, and the
//     result returned. A nil result is persisted too: "known absent" is cached
//     like real data so the upstream is not asked again within the window.
//
// The read-then-write sequence is not atomic across concurrent callers; two
// racing fetches for the same key may both go upstream and the later write
// wins.
func BuildFetchCached[T any](
	tracker freshness.Tracker,
	store docstore.Store,
	opts CacheOptions,
	nowFunc func() time.Time,
) FetchCached[T] {
	return func(ctx context.Context, category domain.Category, profileID string, fetch FetchFn[T]) (T, error) {
		var empty T
		logger := logging.FromContext(ctx)

		if opts.Disabled() || !tracker.IsOnline(ctx) || !store.IsOnline(ctx) {
			logger.InfoContext(ctx, "Fetching category", "category", string(category), "cache", "bypass")
			return fetch(ctx)
		}

		key := domain.NewCacheKey(profileID, category)

		lastRefreshed, hasRecord, err := tracker.LastRefreshed(ctx, key)
		if err != nil {
			return empty, fmt.Errorf("failed to read freshness record: %w", err)
		}

		notExpired := hasRecord && nowFunc().Before(lastRefreshed.Add(opts.Expiration()))
		if notExpired {
			document, found, err := store.Get(ctx, category, profileID)
			if err != nil {
				return empty, fmt.Errorf("failed to read stored document: %w", err)
			}

			if found {
				logger.InfoContext(ctx, "Fetching category", "category", string(category), "cache", "hit")

				var result T
				if err := json.Unmarshal(document, &result); err != nil {
					return empty, fmt.Errorf("failed to decode stored document: %w", err)
				}
				return result, nil
			}

			// The tracker says fresh but the document is gone. Refetch, and
			// insert rather than update since there is nothing to replace.
			logger.WarnContext(ctx, "Stored document missing despite fresh record", "category", string(category), slog.String("key", key.String()))
			hasRecord = false
		}

		logger.InfoContext(ctx, "Fetching category", "category", string(category), "cache", "miss")

		result, err := fetch(ctx)
		if err != nil {
			// NOTE: StatsProvider implementations handle their own error reporting
			return empty, fmt.Errorf("could not fetch fresh data: %w", err)
		}

		document, err := json.Marshal(result)
		if err != nil {
			return empty, fmt.Errorf("failed to encode document: %w", err)
		}

		if hasRecord {
			err = store.Update(ctx, category, profileID, document)
		} else {
			err = store.Insert(ctx, category, profileID, document)
		}
		if err != nil {
			return empty, fmt.Errorf("failed to persist document: %w", err)
		}

		if err := tracker.SetRefreshed(ctx, key, nowFunc()); err != nil {
			return empty, fmt.Errorf("failed to write freshness record: %w", err)
		}

		return result, nil
	}
}
