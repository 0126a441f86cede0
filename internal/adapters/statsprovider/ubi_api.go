package statsprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/siegestats/backend/internal/config"
	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
	"github.com/siegestats/backend/internal/ratelimiting"
	"github.com/siegestats/backend/internal/reporting"
)

const baseURL = "https://public-ubiservices.ubi.com"

const userAgent = "siegestats-backend/1.0 (+https://siegestats.gg)"

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// UbiAPI is the raw HTTP surface of the publisher API. It deals in bytes and
// status codes; response parsing lives in the provider on top of it.
type UbiAPI interface {
	Get(ctx context.Context, path string, query map[string]string) ([]byte, int, error)
}

// upstreamRequestLimiter bounds how many requests we send upstream.
type upstreamRequestLimiter interface {
	Limit(ctx context.Context, maxOperationTime time.Duration, operation func()) bool
}

const getMinOperationTime = 100 * time.Millisecond

type ubiAPIImpl struct {
	httpClient HttpClient
	limiter    upstreamRequestLimiter
	appID      string
	authToken  string
}

func (api ubiAPIImpl) Get(ctx context.Context, path string, query map[string]string) ([]byte, int, error) {
	logger := logging.FromContext(ctx)
	url := baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		logger.Error(err.Error())
		reporting.Report(ctx, err)
		return nil, -1, err
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Ubi-AppId", api.appID)
	req.Header.Set("Authorization", fmt.Sprintf("ubi_v1 t=%s", api.authToken))

	start := time.Now()
	var resp *http.Response
	var data []byte
	ran := api.limiter.Limit(ctx, getMinOperationTime, func() {
		resp, err = api.httpClient.Do(req)
		if err != nil {
			err = fmt.Errorf("failed to send request: %w", err)
			return
		}

		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			err = fmt.Errorf("failed to read response body: %w", err)
			return
		}
	})
	if !ran {
		err := fmt.Errorf("%w: too many requests to upstream API", domain.ErrTemporarilyUnavailable)
		logger.Warn("Did not send upstream request due to rate limiting", "path", path, "ctx_error", ctx.Err())
		return nil, -1, err
	}
	if err != nil {
		logger.Error(err.Error())
		reporting.Report(ctx, err)
		return nil, -1, err
	}
	logger.Info("upstream request completed", "path", path, "status", resp.StatusCode, "duration", time.Since(start).String())

	return data, resp.StatusCode, nil
}

func NewUbiAPI(httpClient HttpClient, appID, authToken string) UbiAPI {
	// Limit chosen well below the documented upstream quota
	limiter := ratelimiting.NewWindowLimitRequestLimiter(120, time.Minute, time.Now, time.After)

	return ubiAPIImpl{
		httpClient: httpClient,
		limiter:    limiter,
		appID:      appID,
		authToken:  authToken,
	}
}

func NewUbiAPIOrMock(conf config.Config, httpClient HttpClient) (UbiAPI, error) {
	if conf.UbiAppID() != "" && conf.UbiAuthToken() != "" {
		return NewUbiAPI(httpClient, conf.UbiAppID(), conf.UbiAuthToken()), nil
	}
	if conf.IsDevelopment() {
		return &mockedUbiAPI{}, nil
	}
	return nil, fmt.Errorf("Missing upstream API credentials in non-development environment")
}

// checkStatusCode maps upstream status codes shared by every endpoint.
// A nil return means the caller should parse the body.
func checkStatusCode(statusCode int) error {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return fmt.Errorf("%w: upstream API returned status code %d", domain.ErrTemporarilyUnavailable, statusCode)
	}

	return nil
}
