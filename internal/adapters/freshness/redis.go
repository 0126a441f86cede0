package freshness

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
)

const freshnessKeyPrefix = "freshness:"
const identityKeyPrefix = "id:"

type redisTracker struct {
	client *redis.Client
}

func NewRedisTracker(client *redis.Client) Tracker {
	return &redisTracker{client: client}
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,

		DialTimeout: 2 * time.Second,
		ReadTimeout: 1 * time.Second,
	})
}

func (t *redisTracker) IsOnline(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := t.client.Ping(pingCtx).Err(); err != nil {
		logging.FromContext(ctx).Warn("freshness tracker is offline", "error", err.Error())
		return false
	}
	return true
}

func (t *redisTracker) LastRefreshed(ctx context.Context, key domain.CacheKey) (time.Time, bool, error) {
	raw, err := t.client.Get(ctx, freshnessKeyPrefix+key.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to get freshness record: %w", err)
	}

	// Timestamps are stored as milliseconds since the epoch
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse freshness record %q: %w", raw, err)
	}

	return time.UnixMilli(millis), true, nil
}

func (t *redisTracker) SetRefreshed(ctx context.Context, key domain.CacheKey, refreshedAt time.Time) error {
	err := t.client.Set(ctx, freshnessKeyPrefix+key.String(), strconv.FormatInt(refreshedAt.UnixMilli(), 10), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set freshness record: %w", err)
	}
	return nil
}

func (t *redisTracker) ProfileID(ctx context.Context, key domain.CacheKey) (string, bool, error) {
	profileID, err := t.client.Get(ctx, identityKeyPrefix+key.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get identity record: %w", err)
	}
	return profileID, true, nil
}

func (t *redisTracker) SetProfileID(ctx context.Context, key domain.CacheKey, profileID string) error {
	err := t.client.Set(ctx, identityKeyPrefix+key.String(), profileID, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set identity record: %w", err)
	}
	return nil
}
