package app

import (
	"fmt"
	"time"
)

// CacheOptions is the immutable caching configuration shared by the cache-aside
// fetchers. Construct it once at startup; every recognized option is validated
// here rather than read ad hoc.
type CacheOptions struct {
	disabled   bool
	expiration time.Duration
}

// NewCacheOptions validates and freezes the caching configuration.
//
// disabled turns off all cache-aside logic: every read goes straight to the
// upstream provider and neither backing store is read or written. expiration is
// the staleness window after which a cached document is no longer trusted.
func NewCacheOptions(disabled bool, expiration time.Duration) (CacheOptions, error) {
	if expiration <= 0 {
		return CacheOptions{}, fmt.Errorf("cache expiration must be positive, got %s", expiration)
	}

	return CacheOptions{
		disabled:   disabled,
		expiration: expiration,
	}, nil
}

func (o CacheOptions) Disabled() bool {
	return o.disabled
}

func (o CacheOptions) Expiration() time.Duration {
	return o.expiration
}
