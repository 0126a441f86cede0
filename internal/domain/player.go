package domain

import "time"

// PlayerLevel is the clearance level of a profile.
type PlayerLevel struct {
	ProfileID     string  `json:"profileId"`
	Level         int     `json:"level"`
	XP            int     `json:"xp"`
	LootboxChance float64 `json:"lootboxProbability"`
}

// PlayerPlaytime holds accumulated playtime in seconds, as reported upstream.
type PlayerPlaytime struct {
	ProfileID  string `json:"profileId"`
	PvPSeconds int    `json:"pvpSeconds"`
	PvESeconds int    `json:"pveSeconds"`
}

// PlayerRank is the ranked standing of a profile for one season and region.
type PlayerRank struct {
	ProfileID string  `json:"profileId"`
	Season    int     `json:"season"`
	Region    string  `json:"region"`
	MMR       float64 `json:"mmr"`
	Rank      int     `json:"rank"`
	MaxMMR    float64 `json:"maxMmr"`
	MaxRank   int     `json:"maxRank"`
}

// PlayerStats aggregates lifetime combat statistics for a profile.
type PlayerStats struct {
	ProfileID  string `json:"profileId"`
	Kills      int    `json:"kills"`
	Deaths     int    `json:"deaths"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Headshots  int    `json:"headshots"`
	MeleeKills int    `json:"meleeKills"`
}

// PlayerUsername is the authoritative current username of a profile.
type PlayerUsername struct {
	ProfileID string   `json:"profileId"`
	Platform  Platform `json:"platform"`
	Username  string   `json:"username"`
}

// PlayerDocument composes every category for one resolved profile. A nil
// category means the upstream provider has no data for it.
type PlayerDocument struct {
	ProfileID string          `json:"profileId"`
	Level     *PlayerLevel    `json:"level"`
	Playtime  *PlayerPlaytime `json:"playtime"`
	Rank      *PlayerRank     `json:"rank"`
	Stats     *PlayerStats    `json:"stats"`
	Username  *PlayerUsername `json:"username"`
}

// ServerStatus is the upstream platform health report.
type ServerStatus struct {
	AppID       string    `json:"appId"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Maintenance bool      `json:"maintenance"`
	CheckedAt   time.Time `json:"checkedAt"`
}
