package freshness_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegestats/backend/internal/adapters/freshness"
	"github.com/siegestats/backend/internal/domain"
)

func newRedisTracker(t *testing.T) (freshness.Tracker, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return freshness.NewRedisTracker(client), server
}

func TestRedisTrackerIsOnline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tracker, server := newRedisTracker(t)
	assert.True(t, tracker.IsOnline(ctx))

	server.Close()
	assert.False(t, tracker.IsOnline(ctx))
}

func TestRedisTrackerFreshnessRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	key := domain.NewCacheKey("12345678-1234-1234-1234-123456789012", domain.CategoryLevel)

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		tracker, _ := newRedisTracker(t)

		_, found, err := tracker.LastRefreshed(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		tracker, _ := newRedisTracker(t)

		refreshedAt := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
		require.NoError(t, tracker.SetRefreshed(ctx, key, refreshedAt))

		got, found, err := tracker.LastRefreshed(ctx, key)
		require.NoError(t, err)
		require.True(t, found)
		// Stored with millisecond precision
		assert.Equal(t, refreshedAt.UnixMilli(), got.UnixMilli())
	})

	t.Run("timestamps are stored as epoch millis", func(t *testing.T) {
		t.Parallel()

		tracker, server := newRedisTracker(t)

		refreshedAt := time.UnixMilli(1700000000123)
		require.NoError(t, tracker.SetRefreshed(ctx, key, refreshedAt))

		raw, err := server.Get("freshness:" + key.String())
		require.NoError(t, err)
		millis, err := strconv.ParseInt(raw, 10, 64)
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000123), millis)
	})

	t.Run("overwrite moves the record forward", func(t *testing.T) {
		t.Parallel()

		tracker, _ := newRedisTracker(t)

		first := time.UnixMilli(1000)
		second := time.UnixMilli(2000)
		require.NoError(t, tracker.SetRefreshed(ctx, key, first))
		require.NoError(t, tracker.SetRefreshed(ctx, key, second))

		got, found, err := tracker.LastRefreshed(ctx, key)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, second.UnixMilli(), got.UnixMilli())
	})

	t.Run("corrupt record", func(t *testing.T) {
		t.Parallel()

		tracker, server := newRedisTracker(t)

		require.NoError(t, server.Set("freshness:"+key.String(), "not-a-timestamp"))

		_, _, err := tracker.LastRefreshed(ctx, key)
		require.Error(t, err)
	})
}

func TestRedisTrackerIdentityRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	key := domain.NewIdentityKey(domain.PlatformUplay, "Pengu.G2")

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		tracker, _ := newRedisTracker(t)

		_, found, err := tracker.ProfileID(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		tracker, _ := newRedisTracker(t)

		require.NoError(t, tracker.SetProfileID(ctx, key, "12345678-1234-1234-1234-123456789012"))

		profileID, found, err := tracker.ProfileID(ctx, key)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "12345678-1234-1234-1234-123456789012", profileID)
	})

	t.Run("identity keys are case-insensitive on username", func(t *testing.T) {
		t.Parallel()

		tracker, _ := newRedisTracker(t)

		require.NoError(t, tracker.SetProfileID(ctx, domain.NewIdentityKey(domain.PlatformUplay, "PENGU.g2"), "12345678-1234-1234-1234-123456789012"))

		profileID, found, err := tracker.ProfileID(ctx, domain.NewIdentityKey(domain.PlatformUplay, "pengu.G2"))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "12345678-1234-1234-1234-123456789012", profileID)
	})
}
