package domaintest

import (
	"github.com/siegestats/backend/internal/domain"
)

type documentBuilder struct {
	document *domain.PlayerDocument
}

func (db *documentBuilder) WithLevel(level int, xp int) *documentBuilder {
	db.document.Level = &domain.PlayerLevel{
		ProfileID: db.document.ProfileID,
		Level:     level,
		XP:        xp,
	}
	return db
}

func (db *documentBuilder) WithPlaytime(pvpSeconds, pveSeconds int) *documentBuilder {
	db.document.Playtime = &domain.PlayerPlaytime{
		ProfileID:  db.document.ProfileID,
		PvPSeconds: pvpSeconds,
		PvESeconds: pveSeconds,
	}
	return db
}

func (db *documentBuilder) WithRank(season int, mmr float64) *documentBuilder {
	db.document.Rank = &domain.PlayerRank{
		ProfileID: db.document.ProfileID,
		Season:    season,
		MMR:       mmr,
	}
	return db
}

func (db *documentBuilder) WithStats(kills, deaths int) *documentBuilder {
	db.document.Stats = &domain.PlayerStats{
		ProfileID: db.document.ProfileID,
		Kills:     kills,
		Deaths:    deaths,
	}
	return db
}

func (db *documentBuilder) WithUsername(platform domain.Platform, username string) *documentBuilder {
	db.document.Username = &domain.PlayerUsername{
		ProfileID: db.document.ProfileID,
		Platform:  platform,
		Username:  username,
	}
	return db
}

func (db *documentBuilder) Build() domain.PlayerDocument {
	return *db.document
}

func (db *documentBuilder) BuildPtr() *domain.PlayerDocument {
	// Make a copy, so further mutations to the builder don't affect the returned document
	document := db.Build()
	return &document
}

func NewDocumentBuilder(profileID string) *documentBuilder {
	return &documentBuilder{
		document: &domain.PlayerDocument{
			ProfileID: profileID,
		},
	}
}
