package ports

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
	"github.com/siegestats/backend/internal/ratelimiting"
)

// GetStatus reports upstream platform health.
type GetStatus func(ctx context.Context) ([]domain.ServerStatus, error)

func MakeGetStatusHandler(
	getStatus GetStatus,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(2),
		ratelimiting.BurstSize(60),
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

		errorData, err := statusErrorResponseData("Rate limit exceeded")
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
		logger := logging.FromContext(ctx)

		servers, err := getStatus(ctx)
		if err != nil {
			// NOTE: GetStatus implementations handle their own error reporting
			logger.Error("Error getting server status", "error", err)

			statusCode := http.StatusServiceUnavailable
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(statusCode)

			errorData, marshalErr := statusErrorResponseData("Service temporarily unavailable")
			if marshalErr != nil {
				w.Write([]byte(`{"success":false,"cause":"Service temporarily unavailable"}`))
			} else {
				w.Write(errorData)
			}

			logger.Info("Returning response", "statusCode", statusCode, "reason", "error")
			return
		}

		responseData, err := statusToResponseData(servers)
		if err != nil {
			logger.Error("Failed to convert server status to response", "error", err)

			statusCode := http.StatusInternalServerError
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(statusCode)
			w.Write([]byte(`{"success":false,"cause":"Internal server error"}`))

			logger.Info("Returning response", "statusCode", statusCode, "reason", "error")
			return
		}

		statusCode := http.StatusOK
		logger.Info("Returning response", "statusCode", statusCode, "reason", "success")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(responseData)
	}

	return middleware(handler)
}
