package domain

import "fmt"

// Platform identifies which storefront a player account belongs to.
type Platform string

const (
	PlatformUplay Platform = "uplay"
	PlatformPSN   Platform = "psn"
	PlatformXBL   Platform = "xbl"
)

func ParsePlatform(raw string) (Platform, error) {
	switch Platform(raw) {
	case PlatformUplay, PlatformPSN, PlatformXBL:
		return Platform(raw), nil
	}
	return "", fmt.Errorf("%w: unknown platform %q", ErrInvalidPlatform, raw)
}
