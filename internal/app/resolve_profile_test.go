package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegestats/backend/internal/app"
	"github.com/siegestats/backend/internal/domain"
)

func TestBuildResolveProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	profile := domain.PlayerUsername{
		ProfileID: testProfileID,
		Platform:  domain.PlatformUplay,
		Username:  "Pengu.G2",
	}

	t.Run("miss resolves through the provider and caches the id", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		provider := &mockProvider{t: t, profiles: []domain.PlayerUsername{profile}}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Minute))

		profileID, err := resolve(ctx, domain.PlatformUplay, "Pengu.G2")
		require.NoError(t, err)
		assert.Equal(t, testProfileID, profileID)
		assert.Equal(t, 1, provider.resolveCalls)

		key := domain.NewIdentityKey(domain.PlatformUplay, "Pengu.G2")
		assert.Equal(t, testProfileID, tracker.ids[key.String()])
	})

	t.Run("hit returns the cached id without a provider call", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		key := domain.NewIdentityKey(domain.PlatformUplay, "Pengu.G2")
		tracker.ids[key.String()] = testProfileID

		provider := &mockProvider{t: t, profiles: []domain.PlayerUsername{profile}}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Minute))

		profileID, err := resolve(ctx, domain.PlatformUplay, "Pengu.G2")
		require.NoError(t, err)
		assert.Equal(t, testProfileID, profileID)
		assert.Zero(t, provider.resolveCalls)
	})

	t.Run("identity mappings do not expire", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		provider := &mockProvider{t: t, profiles: []domain.PlayerUsername{profile}}
		// Tiny expiration; identity resolution must not care
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Nanosecond))

		_, err := resolve(ctx, domain.PlatformUplay, "Pengu.G2")
		require.NoError(t, err)
		require.Equal(t, 1, provider.resolveCalls)

		time.Sleep(time.Millisecond)

		profileID, err := resolve(ctx, domain.PlatformUplay, "Pengu.G2")
		require.NoError(t, err)
		assert.Equal(t, testProfileID, profileID)
		assert.Equal(t, 1, provider.resolveCalls, "second resolution must be served from the cache")
	})

	t.Run("cache key is case-insensitive on username", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		provider := &mockProvider{t: t, profiles: []domain.PlayerUsername{profile}}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Minute))

		_, err := resolve(ctx, domain.PlatformUplay, "PENGU.G2")
		require.NoError(t, err)

		_, err = resolve(ctx, domain.PlatformUplay, "pengu.g2")
		require.NoError(t, err)
		assert.Equal(t, 1, provider.resolveCalls)
	})

	t.Run("unknown username", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		provider := &mockProvider{t: t, profiles: []domain.PlayerUsername{}}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Minute))

		_, err := resolve(ctx, domain.PlatformUplay, "NoSuchPlayer")
		require.ErrorIs(t, err, domain.ErrUsernameNotFound)

		// Nothing is cached for a failed resolution
		assert.Zero(t, tracker.setProfileIDCalls)
	})

	t.Run("bypasses the cache when disabled", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		provider := &mockProvider{t: t, profiles: []domain.PlayerUsername{profile}}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, true, time.Minute))

		profileID, err := resolve(ctx, domain.PlatformUplay, "Pengu.G2")
		require.NoError(t, err)
		assert.Equal(t, testProfileID, profileID)
		assert.Equal(t, 1, provider.resolveCalls)
		assert.Zero(t, tracker.readWriteCalls())
	})

	t.Run("bypasses the cache when the tracker is offline", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		tracker.online = false
		provider := &mockProvider{t: t, profiles: []domain.PlayerUsername{profile}}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Minute))

		profileID, err := resolve(ctx, domain.PlatformUplay, "Pengu.G2")
		require.NoError(t, err)
		assert.Equal(t, testProfileID, profileID)
		assert.Zero(t, tracker.readWriteCalls())
	})

	t.Run("provider error propagates", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		providerErr := errors.New("rate limited")
		provider := &mockProvider{t: t, resolveErr: providerErr}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Minute))

		_, err := resolve(ctx, domain.PlatformUplay, "Pengu.G2")
		require.ErrorIs(t, err, providerErr)
		assert.Zero(t, tracker.setProfileIDCalls)
	})

	t.Run("invalid username length", func(t *testing.T) {
		t.Parallel()

		tracker := newMockTracker(t)
		provider := &mockProvider{t: t}
		resolve := app.BuildResolveProfile(tracker, provider, mustCacheOptions(t, false, time.Minute))

		_, err := resolve(ctx, domain.PlatformUplay, "")
		require.Error(t, err)

		_, err = resolve(ctx, domain.PlatformUplay, strings.Repeat("a", 101))
		require.Error(t, err)

		assert.Zero(t, provider.resolveCalls)
	})
}
