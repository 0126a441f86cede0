package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/siegestats/backend/internal/adapters/statsprovider"
	"github.com/siegestats/backend/internal/domain"
)

// Fetches a player straight from the upstream API, bypassing all caching.
// Usage: get-player <platform> <username>

func main() {
	appID := os.Getenv("UBI_APP_ID")
	authToken := os.Getenv("UBI_AUTH_TOKEN")

	if appID == "" || authToken == "" {
		log.Fatal("No upstream API credentials provided")
	}

	if len(os.Args) < 3 {
		log.Fatal("Usage: get-player <platform> <username>")
	}

	platform, err := domain.ParsePlatform(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid platform: %v", err)
	}

	username := os.Args[2]
	if username == "" {
		log.Fatal("No username provided")
	}

	ctx := context.Background()
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	api := statsprovider.NewUbiAPI(httpClient, appID, authToken)
	provider := statsprovider.NewUbiStatsProvider(api, time.Now)

	profiles, err := provider.ResolveProfile(ctx, platform, username)
	if err != nil {
		log.Fatalf("Failed resolving profile: %v", err)
	}
	if len(profiles) == 0 {
		log.Fatalf("No profile found for %s on %s", username, platform)
	}

	profileID := profiles[0].ProfileID

	document := domain.PlayerDocument{ProfileID: profileID}

	if levels, err := provider.GetLevel(ctx, platform, profileID); err != nil {
		log.Printf("Failed fetching level: %v", err)
	} else if len(levels) > 0 {
		document.Level = &levels[0]
	}

	if playtimes, err := provider.GetPlaytime(ctx, platform, profileID); err != nil {
		log.Printf("Failed fetching playtime: %v", err)
	} else if len(playtimes) > 0 {
		document.Playtime = &playtimes[0]
	}

	if ranks, err := provider.GetRank(ctx, platform, profileID, statsprovider.RankOptions{}); err != nil {
		log.Printf("Failed fetching rank: %v", err)
	} else if len(ranks) > 0 {
		document.Rank = &ranks[0]
	}

	if stats, err := provider.GetStats(ctx, platform, profileID); err != nil {
		log.Printf("Failed fetching stats: %v", err)
	} else {
		document.Stats = stats
	}

	if usernames, err := provider.GetUsername(ctx, platform, profileID); err != nil {
		log.Printf("Failed fetching username: %v", err)
	} else if len(usernames) > 0 {
		document.Username = &usernames[0]
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		log.Fatalf("Failed marshalling document: %v", err)
	}

	fmt.Println(string(data))
}
