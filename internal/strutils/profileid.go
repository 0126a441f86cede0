package strutils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Profile IDs are UUIDs. We store and compare them in canonical dashed
// lowercase form.
func NormalizeProfileID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid profile id %q: %w", id, err)
	}
	return parsed.String(), nil
}

func ProfileIDIsNormalized(id string) bool {
	normalized, err := NormalizeProfileID(id)
	if err != nil {
		return false
	}
	return normalized == id
}

// Usernames are matched case-insensitively by the upstream API.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
