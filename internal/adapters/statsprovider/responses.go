package statsprovider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/strutils"
)

// Wire types for the publisher API. Payloads stay untyped JSON only in this
// package; everything crossing into the app layer is a domain type.

type wireProfile struct {
	ProfileID      string `json:"profileId"`
	NameOnPlatform string `json:"nameOnPlatform"`
	PlatformType   string `json:"platformType"`
}

type profilesResponse struct {
	Profiles []wireProfile `json:"profiles"`
}

type wireProgression struct {
	ProfileID          string  `json:"profile_id"`
	Level              int     `json:"level"`
	XP                 int     `json:"xp"`
	LootboxProbability float64 `json:"lootbox_probability"`
}

type progressionsResponse struct {
	PlayerProfiles []wireProgression `json:"player_profiles"`
}

type wirePlaytime struct {
	ProfileID     string `json:"profileId"`
	PvPTimePlayed int    `json:"pvpTimePlayed"`
	PvETimePlayed int    `json:"pveTimePlayed"`
}

type playtimeResponse struct {
	Statistics []wirePlaytime `json:"statistics"`
}

type wireRank struct {
	ProfileID string  `json:"profileId"`
	Season    int     `json:"season"`
	Region    string  `json:"region"`
	MMR       float64 `json:"mmr"`
	Rank      int     `json:"rank"`
	MaxMMR    float64 `json:"maxMmr"`
	MaxRank   int     `json:"maxRank"`
}

type rankedResponse struct {
	Players []wireRank `json:"players"`
}

type wireStats struct {
	ProfileID  string `json:"profileId"`
	Kills      int    `json:"generalKills"`
	Deaths     int    `json:"generalDeaths"`
	Wins       int    `json:"generalWins"`
	Losses     int    `json:"generalLosses"`
	Headshots  int    `json:"generalHeadshots"`
	MeleeKills int    `json:"generalMeleeKills"`
}

type statsResponse struct {
	Results *wireStats `json:"results"`
}

type wireStatus struct {
	AppID       string `json:"appId"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Maintenance bool   `json:"maintenance"`
}

func profileToDomain(profile wireProfile) (domain.PlayerUsername, error) {
	platform, err := domain.ParsePlatform(profile.PlatformType)
	if err != nil {
		return domain.PlayerUsername{}, fmt.Errorf("failed to parse profile platform: %w", err)
	}

	profileID, err := strutils.NormalizeProfileID(profile.ProfileID)
	if err != nil {
		return domain.PlayerUsername{}, fmt.Errorf("failed to normalize profile id: %w", err)
	}

	return domain.PlayerUsername{
		ProfileID: profileID,
		Platform:  platform,
		Username:  profile.NameOnPlatform,
	}, nil
}

func profilesFromResponse(statusCode int, data []byte) ([]domain.PlayerUsername, error) {
	if err := checkStatusCode(statusCode); err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusNotFound, http.StatusNoContent:
		return []domain.PlayerUsername{}, nil
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream API returned unexpected status code %d", statusCode)
	}

	var response profilesResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse profiles response: %w", err)
	}

	profiles := make([]domain.PlayerUsername, 0, len(response.Profiles))
	for _, wire := range response.Profiles {
		profile, err := profileToDomain(wire)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func levelsFromResponse(statusCode int, data []byte) ([]domain.PlayerLevel, error) {
	if err := checkStatusCode(statusCode); err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusNotFound, http.StatusNoContent:
		return []domain.PlayerLevel{}, nil
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream API returned unexpected status code %d", statusCode)
	}

	var response progressionsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse progressions response: %w", err)
	}

	levels := make([]domain.PlayerLevel, 0, len(response.PlayerProfiles))
	for _, wire := range response.PlayerProfiles {
		levels = append(levels, domain.PlayerLevel{
			ProfileID:     wire.ProfileID,
			Level:         wire.Level,
			XP:            wire.XP,
			LootboxChance: wire.LootboxProbability,
		})
	}
	return levels, nil
}

func playtimesFromResponse(statusCode int, data []byte) ([]domain.PlayerPlaytime, error) {
	if err := checkStatusCode(statusCode); err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusNotFound, http.StatusNoContent:
		return []domain.PlayerPlaytime{}, nil
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream API returned unexpected status code %d", statusCode)
	}

	var response playtimeResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse playtime response: %w", err)
	}

	playtimes := make([]domain.PlayerPlaytime, 0, len(response.Statistics))
	for _, wire := range response.Statistics {
		playtimes = append(playtimes, domain.PlayerPlaytime{
			ProfileID:  wire.ProfileID,
			PvPSeconds: wire.PvPTimePlayed,
			PvESeconds: wire.PvETimePlayed,
		})
	}
	return playtimes, nil
}

func ranksFromResponse(statusCode int, data []byte) ([]domain.PlayerRank, error) {
	if err := checkStatusCode(statusCode); err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusNotFound, http.StatusNoContent:
		return []domain.PlayerRank{}, nil
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream API returned unexpected status code %d", statusCode)
	}

	var response rankedResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse ranked response: %w", err)
	}

	ranks := make([]domain.PlayerRank, 0, len(response.Players))
	for _, wire := range response.Players {
		ranks = append(ranks, domain.PlayerRank{
			ProfileID: wire.ProfileID,
			Season:    wire.Season,
			Region:    wire.Region,
			MMR:       wire.MMR,
			Rank:      wire.Rank,
			MaxMMR:    wire.MaxMMR,
			MaxRank:   wire.MaxRank,
		})
	}
	return ranks, nil
}

func statsFromResponse(statusCode int, data []byte) (*domain.PlayerStats, error) {
	if err := checkStatusCode(statusCode); err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusNotFound, http.StatusNoContent:
		return nil, nil
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream API returned unexpected status code %d", statusCode)
	}

	var response statsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse statistics response: %w", err)
	}

	if response.Results == nil {
		return nil, nil
	}

	return &domain.PlayerStats{
		ProfileID:  response.Results.ProfileID,
		Kills:      response.Results.Kills,
		Deaths:     response.Results.Deaths,
		Wins:       response.Results.Wins,
		Losses:     response.Results.Losses,
		Headshots:  response.Results.Headshots,
		MeleeKills: response.Results.MeleeKills,
	}, nil
}

func statusesFromResponse(statusCode int, data []byte, checkedAt time.Time) ([]domain.ServerStatus, error) {
	if err := checkStatusCode(statusCode); err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream API returned unexpected status code %d", statusCode)
	}

	var response []wireStatus
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}

	statuses := make([]domain.ServerStatus, 0, len(response))
	for _, wire := range response {
		statuses = append(statuses, domain.ServerStatus{
			AppID:       wire.AppID,
			Name:        wire.Name,
			Status:      wire.Status,
			Maintenance: wire.Maintenance,
			CheckedAt:   checkedAt,
		})
	}
	return statuses, nil
}
