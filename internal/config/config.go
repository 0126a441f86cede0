package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

const DefaultCacheExpiration = 60 * time.Second

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type Config struct {
	dBHost          string
	dBUsername      string
	dBPassword      string
	redisAddr       string
	redisPassword   string
	sentryDSN       string
	ubiAppID        string
	ubiAuthToken    string
	disableCaching  bool
	cacheExpiration time.Duration
	port            string
	env             environment
}

func (c *Config) DBHost() string {
	return c.dBHost
}

func (c *Config) DBUsername() string {
	return c.dBUsername
}

func (c *Config) DBPassword() string {
	return c.dBPassword
}

func (c *Config) RedisAddr() string {
	return c.redisAddr
}

func (c *Config) RedisPassword() string {
	return c.redisPassword
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) UbiAppID() string {
	return c.ubiAppID
}

func (c *Config) UbiAuthToken() string {
	return c.ubiAuthToken
}

// DisableCaching turns off all cache-aside orchestration. Every read then goes
// straight to the upstream provider and neither the freshness tracker nor the
// document store is touched.
//
// NOTE: The historical option this replaces was called "caching" but acted as a
// disable switch. The name here matches the actual behavior.
func (c *Config) DisableCaching() bool {
	return c.disableCaching
}

func (c *Config) CacheExpiration() time.Duration {
	return c.cacheExpiration
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, disableCaching: %t, cacheExpiration: %s, ...}",
		string(c.env), c.disableCaching, c.cacheExpiration,
	)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("SIEGESTATS_ENVIRONMENT")
	if !ok {
		return missingKey("SIEGESTATS_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: SIEGESTATS_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}

	disableCaching := false
	if rawDisableCaching, ok := os.LookupEnv("DISABLE_CACHING"); ok {
		parsed, err := strconv.ParseBool(rawDisableCaching)
		if err != nil {
			return Config{}, fmt.Errorf("%w: DISABLE_CACHING (%s)", ErrInvalidValue, rawDisableCaching)
		}
		disableCaching = parsed
	}

	cacheExpiration := DefaultCacheExpiration
	if rawExpiration, ok := os.LookupEnv("CACHE_EXPIRATION"); ok {
		parsed, err := time.ParseDuration(rawExpiration)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("%w: CACHE_EXPIRATION (%s)", ErrInvalidValue, rawExpiration)
		}
		cacheExpiration = parsed
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbHost := os.Getenv("DB_HOST")
	dbUsername := os.Getenv("DB_USERNAME")
	dbPassword := os.Getenv("DB_PASSWORD")
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	sentryDSN := os.Getenv("SENTRY_DSN")
	ubiAppID := os.Getenv("UBI_APP_ID")
	ubiAuthToken := os.Getenv("UBI_AUTH_TOKEN")

	if env == production || env == staging {
		if dbHost == "" {
			return missingKey("DB_HOST")
		}
		if dbUsername == "" {
			return missingKey("DB_USERNAME")
		}
		if dbPassword == "" {
			return missingKey("DB_PASSWORD")
		}
		if redisAddr == "" {
			return missingKey("REDIS_ADDR")
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
		if ubiAppID == "" {
			return missingKey("UBI_APP_ID")
		}
		if ubiAuthToken == "" {
			return missingKey("UBI_AUTH_TOKEN")
		}
	}

	return Config{
		dBHost:          dbHost,
		dBUsername:      dbUsername,
		dBPassword:      dbPassword,
		redisAddr:       redisAddr,
		redisPassword:   redisPassword,
		sentryDSN:       sentryDSN,
		ubiAppID:        ubiAppID,
		ubiAuthToken:    ubiAuthToken,
		disableCaching:  disableCaching,
		cacheExpiration: cacheExpiration,
		port:            port,
		env:             env,
	}, nil
}
