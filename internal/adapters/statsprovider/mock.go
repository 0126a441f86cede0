package statsprovider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// mockedUbiAPI serves canned responses for local development without upstream
// credentials.
type mockedUbiAPI struct{}

const mockProfileID = "12345678-1234-1234-1234-123456789012"

func (api *mockedUbiAPI) Get(ctx context.Context, path string, query map[string]string) ([]byte, int, error) {
	switch {
	case path == "/v3/profiles":
		username := query["namesOnPlatform"]
		if username == "" {
			username = "MockPlayer"
		}
		platform := query["platformType"]
		if platform == "" {
			platform = "uplay"
		}
		body := fmt.Sprintf(
			`{"profiles":[{"profileId":"%s","nameOnPlatform":"%s","platformType":"%s"}]}`,
			mockProfileID, username, platform,
		)
		return []byte(body), http.StatusOK, nil
	case strings.HasSuffix(path, "/progressions"):
		body := fmt.Sprintf(`{"player_profiles":[{"profile_id":"%s","level":123,"xp":4567,"lootbox_probability":0.04}]}`, mockProfileID)
		return []byte(body), http.StatusOK, nil
	case strings.HasSuffix(path, "/playtime"):
		body := fmt.Sprintf(`{"statistics":[{"profileId":"%s","pvpTimePlayed":360000,"pveTimePlayed":7200}]}`, mockProfileID)
		return []byte(body), http.StatusOK, nil
	case strings.HasSuffix(path, "/ranked"):
		body := fmt.Sprintf(`{"players":[{"profileId":"%s","season":27,"region":"emea","mmr":3201.5,"rank":18,"maxMmr":3354.0,"maxRank":19}]}`, mockProfileID)
		return []byte(body), http.StatusOK, nil
	case strings.HasSuffix(path, "/statistics"):
		body := fmt.Sprintf(`{"results":{"profileId":"%s","generalKills":1000,"generalDeaths":800,"generalWins":300,"generalLosses":250,"generalHeadshots":420,"generalMeleeKills":17}}`, mockProfileID)
		return []byte(body), http.StatusOK, nil
	case path == "/v1/status":
		return []byte(`[{"appId":"mock","name":"Mock Platform","status":"online","maintenance":false}]`), http.StatusOK, nil
	}

	return nil, http.StatusNotFound, nil
}
