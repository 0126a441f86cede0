package ports

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/siegestats/backend/internal/app"
	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
	"github.com/siegestats/backend/internal/ratelimiting"
	"github.com/siegestats/backend/internal/reporting"
)

func MakeGetPlayerHandler(
	fetchPlayer app.FetchPlayer,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(8),
		ratelimiting.BurstSize(480),
	)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		ipLimiter,
		ratelimiting.IPKeyFunc,
	)

	onLimitExceeded := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx)

		statusCode := http.StatusTooManyRequests

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)

		errorData, err := playerErrorResponseData("Rate limit exceeded")
		if err != nil {
			w.Write([]byte(`{"success":false,"cause":"Rate limit exceeded"}`))
		} else {
			w.Write(errorData)
		}

		logger.Info("Returning response", "statusCode", statusCode, "reason", "ratelimit exceeded", "key", ipRateLimiter.KeyFor(r))
	}

	middleware := ComposeMiddlewares(
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		buildMetricsMiddleware(),
		NewRateLimitMiddleware(ipRateLimiter, onLimitExceeded),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rawPlatform := r.PathValue("platform")
		username := r.PathValue("username")
		logger := logging.FromContext(ctx)

		ctx = reporting.AddExtrasToContext(ctx,
			map[string]string{
				"platform": rawPlatform,
				"username": username,
			},
		)

		platform, err := domain.ParsePlatform(rawPlatform)
		if err != nil {
			statusCode := http.StatusBadRequest

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(statusCode)

			errorData, marshalErr := playerErrorResponseData("Invalid platform")
			if marshalErr != nil {
				w.Write([]byte(`{"success":false,"cause":"Invalid platform"}`))
			} else {
				w.Write(errorData)
			}

			logger.Info("Returning response", "statusCode", statusCode, "reason", "invalid platform")
			return
		}

		document, err := fetchPlayer(ctx, platform, username)
		if errors.Is(err, domain.ErrUsernameNotFound) || errors.Is(err, domain.ErrPlayerNotFound) {
			responseData, err := playerToResponseData(nil)
			if err != nil {
				reporting.Report(ctx, err)
				statusCode := writePlayerErrorResponse(ctx, w, err)
				logger.Info("Returning response", "statusCode", statusCode, "reason", "error")
				return
			}

			statusCode := http.StatusNotFound
			logger.Info("Returning response", "statusCode", statusCode, "reason", "player not found")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(statusCode)
			w.Write(responseData)
			return
		}

		if err != nil {
			// NOTE: FetchPlayer implementations handle their own error reporting
			logger.Error("Error fetching player", "error", err)
			statusCode := writePlayerErrorResponse(ctx, w, err)
			logger.Info("Returning response", "statusCode", statusCode, "reason", "error")
			return
		}

		responseData, err := playerToResponseData(&document)
		if err != nil {
			logger.Error("Failed to convert player document to response", "error", err)
			reporting.Report(ctx, err)

			statusCode := writePlayerErrorResponse(ctx, w, err)
			logger.Info("Returning response", "statusCode", statusCode, "reason", "error")
			return
		}

		statusCode := http.StatusOK
		logger.Info("Returning response", "statusCode", statusCode, "reason", "success", "contentLength", len(responseData))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(responseData)
	}

	return middleware(handler)
}

func writePlayerErrorResponse(ctx context.Context, w http.ResponseWriter, responseError error) int {
	w.Header().Set("Content-Type", "application/json")

	// Unknown error: default to 500
	statusCode := http.StatusInternalServerError
	cause := "Internal server error"

	if errors.Is(responseError, domain.ErrTemporarilyUnavailable) {
		statusCode = http.StatusServiceUnavailable
		cause = "Service temporarily unavailable"
	}

	errorData, err := playerErrorResponseData(cause)
	if err != nil {
		logging.FromContext(ctx).Error("Failed to marshal error response", "error", err)
		reporting.Report(ctx, err, map[string]string{
			"responseError": responseError.Error(),
		})
		w.WriteHeader(statusCode)
		w.Write([]byte(`{"success":false,"cause":"Internal server error"}`))
		return statusCode
	}

	w.WriteHeader(statusCode)
	w.Write(errorData)

	return statusCode
}
