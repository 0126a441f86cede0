package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/siegestats/backend/internal/adapters/freshness"
	"github.com/siegestats/backend/internal/adapters/statsprovider"
	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
	"github.com/siegestats/backend/internal/reporting"
)

// ResolveProfile resolves a (platform, username) pair to a stable profile id.
//
// Returns domain.ErrUsernameNotFound when the upstream has no matching profile.
type ResolveProfile func(ctx context.Context, platform domain.Platform, username string) (string, error)

func resolveProfileWithoutCache(
	ctx context.Context,
	provider statsprovider.StatsProvider,
	platform domain.Platform,
	username string,
) (string, error) {
	profiles, err := provider.ResolveProfile(ctx, platform, username)
	if err != nil {
		// NOTE: StatsProvider implementations handle their own error reporting
		return "", fmt.Errorf("could not resolve profile for username: %w", err)
	}

	profile := firstOrNil(profiles)
	if profile == nil {
		return "", domain.ErrUsernameNotFound
	}

	return profile.ProfileID, nil
}

// BuildResolveProfile builds the cached identity resolver.
//
// Identity mappings are cached under a dedicated (platform, username) key and
// never expire: usernames rarely change profile ids, and a stale mapping heals
// itself the next time the username is reassigned upstream and resolution
// fails downstream.
func BuildResolveProfile(
	tracker freshness.Tracker,
	provider statsprovider.StatsProvider,
	opts CacheOptions,
) ResolveProfile {
	return func(ctx context.Context, platform domain.Platform, username string) (string, error) {
		usernameLength := len(username)
		if usernameLength == 0 || usernameLength > 100 {
			err := fmt.Errorf("invalid username length")
			reporting.Report(ctx, err, map[string]string{
				"username": username,
				"length":   strconv.Itoa(usernameLength),
			})
			return "", err
		}

		if opts.Disabled() || !tracker.IsOnline(ctx) {
			return resolveProfileWithoutCache(ctx, provider, platform, username)
		}

		key := domain.NewIdentityKey(platform, username)

		profileID, found, err := tracker.ProfileID(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to read identity record: %w", err)
		}
		if found {
			logging.FromContext(ctx).InfoContext(ctx, "Resolving profile", "cache", "hit")
			return profileID, nil
		}

		logging.FromContext(ctx).InfoContext(ctx, "Resolving profile", "cache", "miss")

		profileID, err = resolveProfileWithoutCache(ctx, provider, platform, username)
		if err != nil {
			return "", err
		}

		if err := tracker.SetProfileID(ctx, key, profileID); err != nil {
			return "", fmt.Errorf("failed to write identity record: %w", err)
		}

		return profileID, nil
	}
}
