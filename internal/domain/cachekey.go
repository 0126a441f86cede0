package domain

import (
	"fmt"
	"strings"
)

// Category identifies one independently cached unit of player data.
type Category string

const (
	CategoryLevel    Category = "level"
	CategoryPlaytime Category = "playtime"
	CategoryRank     Category = "rank"
	CategoryStats    Category = "stats"
	CategoryUsername Category = "username"
)

// Categories lists every per-profile category in the order they appear in a
// PlayerDocument.
var Categories = []Category{
	CategoryLevel,
	CategoryPlaytime,
	CategoryRank,
	CategoryStats,
	CategoryUsername,
}

// CacheKey addresses one cached unit: either a (profileID, category) pair, or a
// (platform, username) pair for identity resolution. Identity keys live in a
// separate key space from per-category keys.
type CacheKey struct {
	key string
}

func NewCacheKey(profileID string, category Category) CacheKey {
	return CacheKey{key: fmt.Sprintf("%s:%s", profileID, category)}
}

func NewIdentityKey(platform Platform, username string) CacheKey {
	// Usernames are case-insensitive on every supported platform
	return CacheKey{key: fmt.Sprintf("identity:%s:%s", platform, strings.ToLower(username))}
}

func (k CacheKey) String() string {
	return k.key
}
