package ports

import (
	"encoding/json"
	"fmt"

	"github.com/siegestats/backend/internal/domain"
)

// Response envelopes share a success flag so clients can branch without
// inspecting status codes.

type playerResponse struct {
	Success bool                   `json:"success"`
	Player  *domain.PlayerDocument `json:"player"`
	Cause   *string                `json:"cause,omitempty"`
}

type statusResponse struct {
	Success bool                  `json:"success"`
	Servers []domain.ServerStatus `json:"servers"`
	Cause   *string               `json:"cause,omitempty"`
}

func playerToResponseData(document *domain.PlayerDocument) ([]byte, error) {
	data, err := json.Marshal(playerResponse{
		Success: true,
		Player:  document,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player response: %w", err)
	}
	return data, nil
}

func playerErrorResponseData(cause string) ([]byte, error) {
	data, err := json.Marshal(playerResponse{
		Success: false,
		Cause:   &cause,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player error response: %w", err)
	}
	return data, nil
}

func statusToResponseData(servers []domain.ServerStatus) ([]byte, error) {
	data, err := json.Marshal(statusResponse{
		Success: true,
		Servers: servers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status response: %w", err)
	}
	return data, nil
}

func statusErrorResponseData(cause string) ([]byte, error) {
	data, err := json.Marshal(statusResponse{
		Success: false,
		Cause:   &cause,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status error response: %w", err)
	}
	return data, nil
}
