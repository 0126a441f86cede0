package statsprovider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/reporting"
)

type ubiStatsProvider struct {
	api     UbiAPI
	nowFunc func() time.Time
	tracer  trace.Tracer
}

func NewUbiStatsProvider(api UbiAPI, nowFunc func() time.Time) StatsProvider {
	return &ubiStatsProvider{
		api:     api,
		nowFunc: nowFunc,
		tracer:  otel.Tracer("siegestats/statsprovider"),
	}
}

func (p *ubiStatsProvider) ResolveProfile(ctx context.Context, platform domain.Platform, username string) ([]domain.PlayerUsername, error) {
	ctx, span := p.tracer.Start(ctx, "UbiStatsProvider.ResolveProfile")
	defer span.End()

	data, statusCode, err := p.api.Get(ctx, "/v3/profiles", map[string]string{
		"namesOnPlatform": username,
		"platformType":    string(platform),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get profiles: %w", err)
	}

	profiles, err := profilesFromResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get profiles from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return profiles, nil
}

func (p *ubiStatsProvider) GetLevel(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerLevel, error) {
	ctx, span := p.tracer.Start(ctx, "UbiStatsProvider.GetLevel")
	defer span.End()

	data, statusCode, err := p.api.Get(ctx, fmt.Sprintf("/v1/profiles/%s/progressions", profileID), map[string]string{
		"platform": string(platform),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get progressions: %w", err)
	}

	levels, err := levelsFromResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get levels from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return levels, nil
}

func (p *ubiStatsProvider) GetPlaytime(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerPlaytime, error) {
	ctx, span := p.tracer.Start(ctx, "UbiStatsProvider.GetPlaytime")
	defer span.End()

	data, statusCode, err := p.api.Get(ctx, fmt.Sprintf("/v1/profiles/%s/playtime", profileID), map[string]string{
		"platform": string(platform),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get playtime: %w", err)
	}

	playtimes, err := playtimesFromResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get playtimes from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return playtimes, nil
}

func (p *ubiStatsProvider) GetRank(ctx context.Context, platform domain.Platform, profileID string, opts RankOptions) ([]domain.PlayerRank, error) {
	ctx, span := p.tracer.Start(ctx, "UbiStatsProvider.GetRank")
	defer span.End()

	query := map[string]string{
		"platform": string(platform),
	}
	if opts.Season != 0 {
		query["season"] = strconv.Itoa(opts.Season)
	}
	if opts.Region != "" {
		query["region"] = opts.Region
	}

	data, statusCode, err := p.api.Get(ctx, fmt.Sprintf("/v1/profiles/%s/ranked", profileID), query)
	if err != nil {
		return nil, fmt.Errorf("could not get ranked data: %w", err)
	}

	ranks, err := ranksFromResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get ranks from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return ranks, nil
}

func (p *ubiStatsProvider) GetUsername(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerUsername, error) {
	ctx, span := p.tracer.Start(ctx, "UbiStatsProvider.GetUsername")
	defer span.End()

	data, statusCode, err := p.api.Get(ctx, "/v3/profiles", map[string]string{
		"userId":       profileID,
		"platformType": string(platform),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get profiles: %w", err)
	}

	profiles, err := profilesFromResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get profiles from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return profiles, nil
}

func (p *ubiStatsProvider) GetStats(ctx context.Context, platform domain.Platform, profileID string) (*domain.PlayerStats, error) {
	ctx, span := p.tracer.Start(ctx, "UbiStatsProvider.GetStats")
	defer span.End()

	data, statusCode, err := p.api.Get(ctx, fmt.Sprintf("/v1/profiles/%s/statistics", profileID), map[string]string{
		"platform": string(platform),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get statistics: %w", err)
	}

	stats, err := statsFromResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get stats from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return stats, nil
}

func (p *ubiStatsProvider) GetStatus(ctx context.Context) ([]domain.ServerStatus, error) {
	ctx, span := p.tracer.Start(ctx, "UbiStatsProvider.GetStatus")
	defer span.End()

	data, statusCode, err := p.api.Get(ctx, "/v1/status", nil)
	if err != nil {
		return nil, fmt.Errorf("could not get status: %w", err)
	}

	statuses, err := statusesFromResponse(statusCode, data, p.nowFunc())
	if err != nil {
		err := fmt.Errorf("failed to get statuses from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return statuses, nil
}
