package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	// TLS roots for distroless images
	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/siegestats/backend/internal/adapters/database"
	"github.com/siegestats/backend/internal/adapters/docstore"
	"github.com/siegestats/backend/internal/adapters/freshness"
	"github.com/siegestats/backend/internal/adapters/statsprovider"
	"github.com/siegestats/backend/internal/app"
	"github.com/siegestats/backend/internal/config"
	"github.com/siegestats/backend/internal/logging"
	"github.com/siegestats/backend/internal/ports"
	"github.com/siegestats/backend/internal/reporting"
	"github.com/siegestats/backend/internal/telemetry"
)

const serviceName = "siegestats-backend"

func main() {
	ctx := context.Background()

	instanceID := uuid.New().String()
	logger := slog.New(
		logging.NewTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil)),
	).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	conf, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", conf.NonSensitiveString())

	otelShutdown, err := telemetry.SetupOTelSDK(ctx, serviceName)
	if err != nil {
		logger.Warn("Failed to set up OpenTelemetry SDK", "error", err.Error())
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Error("Failed to shut down OpenTelemetry SDK", "error", err.Error())
		}
	}()

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	ubiAPI, err := statsprovider.NewUbiAPIOrMock(conf, httpClient)
	if err != nil {
		fail("Failed to initialize upstream API", "error", err.Error())
	}
	logger.Info("Initialized upstream API")

	provider := statsprovider.NewUbiStatsProvider(ubiAPI, time.Now)

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(conf)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	logger.Info("Initializing database connection")
	db, err := database.NewConfiguredPostgresDatabase(conf)
	if err != nil {
		fail("Failed to initialize database connection", "error", err.Error())
	}
	logger.Info("Initialized database connection")

	schemaName := database.GetSchemaName(!conf.IsProduction())

	err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, schemaName)
	if err != nil {
		fail("Failed to migrate database", "error", err.Error())
	}

	store := docstore.NewPostgresStore(db, schemaName)
	logger.Info("Initialized document store")

	var tracker freshness.Tracker
	if conf.RedisAddr() != "" {
		tracker = freshness.NewRedisTracker(freshness.NewRedisClient(conf.RedisAddr(), conf.RedisPassword()))
		logger.Info("Initialized redis freshness tracker")
	} else {
		// Development fallback; records die with the process
		tracker = freshness.NewMemoryTracker(24 * time.Hour)
		logger.Info("Initialized in-memory freshness tracker")
	}

	cacheOptions, err := app.NewCacheOptions(conf.DisableCaching(), conf.CacheExpiration())
	if err != nil {
		fail("Failed to initialize cache options", "error", err.Error())
	}

	resolveProfile := app.BuildResolveProfile(tracker, provider, cacheOptions)
	fetchPlayer := app.BuildFetchPlayer(resolveProfile, provider, tracker, store, cacheOptions, time.Now)

	http.HandleFunc(
		"GET /v1/player/{platform}/{username}",
		ports.MakeGetPlayerHandler(
			fetchPlayer,
			logger.With("port", "player"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"GET /v1/status",
		ports.MakeGetStatusHandler(
			provider.GetStatus,
			logger.With("port", "status"),
			sentryMiddleware,
		),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", conf.Port()), nil)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
