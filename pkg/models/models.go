// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package models defines the record types stored in the flat JSON data files
// and the validation applied at the store boundary.
package models

import (
	"time"

	"github.com/go-openapi/swag"
	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"

	"github.com/Voidixx/OctanesCore/pkg/constants"
)

// Format is the match player-count category.
type Format string

const (
	Format1v1 Format = "1v1"
	Format2v2 Format = "2v2"
	Format3v3 Format = "3v3"
)

// RequiredPlayers returns the total number of players a match of this format needs.
// Returns 0 for an unknown format.
func (f Format) RequiredPlayers() int {
	switch f {
	case Format1v1:
		return 2
	case Format2v2:
		return 4
	case Format3v3:
		return 6
	default:
		return 0
	}
}

func (f Format) Valid() bool {
	return f.RequiredPlayers() > 0
}

// QueueEntry is one waiting player. At most one active entry exists per player;
// joining again replaces the prior entry.
type QueueEntry struct {
	PlayerID    string    `json:"user_id"`
	DisplayName string    `json:"username"`
	Format      Format    `json:"format"`
	Mode        string    `json:"game_mode"`
	Status      string    `json:"status"`
	JoinedAt    time.Time `json:"joined_at"`
}

func (e QueueEntry) IsSearching() bool {
	return e.Status == constants.QueueStatusSearching
}

// GroupKey keys the drain-loop partition: one group per (format, mode).
func (e QueueEntry) GroupKey() string {
	mode := e.Mode
	if mode == "" {
		mode = constants.DefaultMode
	}
	return string(e.Format) + "_" + mode
}

// MatchRecord is an append-mostly match object. It is created with status
// "ready" and mutated once when the result is reported.
type MatchRecord struct {
	ID        string   `json:"id"`
	SideAName string   `json:"team1_name"`
	SideBName string   `json:"team2_name"`
	SideA     []string `json:"orange_players"`
	SideB     []string `json:"blue_players"`
	Format    Format   `json:"format"`
	Mode      string   `json:"mode"`
	Map       string   `json:"map"`
	Status    string   `json:"status"`
	MatchName string   `json:"match_name"`
	Password  string   `json:"password"`
	Type      string   `json:"type"`

	CreatedAt time.Time `json:"created_at"`

	// Set by the report mutation.
	SideAScore  *int       `json:"orange_score,omitempty"`
	SideBScore  *int       `json:"blue_score,omitempty"`
	SideAGoals  []int      `json:"orange_individual_goals,omitempty"`
	SideBGoals  []int      `json:"blue_individual_goals,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ReportedBy  string     `json:"reported_by,omitempty"`
}

func (r MatchRecord) Copy() MatchRecord {
	copied, err := copystructure.Copy(r)
	if err != nil {
		logrus.Warn("failed copy matchRecord:", err)
	}
	copyRecord, _ := copied.(MatchRecord)
	return copyRecord
}

// Players returns both sides merged, side A first.
func (r MatchRecord) Players() []string {
	players := make([]string, 0, len(r.SideA)+len(r.SideB))
	players = append(players, r.SideA...)
	players = append(players, r.SideB...)
	return players
}

// HistoryEvent is one entry in the append-only match history log.
type HistoryEvent struct {
	EventID    string    `json:"event_id"`
	MatchID    string    `json:"match_id"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Format     Format    `json:"format"`
	Mode       string    `json:"mode"`
	Map        string    `json:"map"`
	Type       string    `json:"type,omitempty"`
	SideA      []string  `json:"orange_players"`
	SideB      []string  `json:"blue_players"`
	SideAScore *int      `json:"orange_score,omitempty"`
	SideBScore *int      `json:"blue_score,omitempty"`
	SideAGoals []int     `json:"orange_goals,omitempty"`
	SideBGoals []int     `json:"blue_goals,omitempty"`
}

// PlayerMatchEntry is one match in a player's personal history.
type PlayerMatchEntry struct {
	MatchID string    `json:"match_id"`
	Date    time.Time `json:"date"`
	Won     bool      `json:"won"`
	Goals   int       `json:"goals"`
	Saves   int       `json:"saves"`
	Assists int       `json:"assists"`
}

// PlayerStats is the cumulative record for one player, created lazily on the
// first stat update and mutated additively after every reported match.
type PlayerStats struct {
	Wins          int                `json:"wins"`
	Losses        int                `json:"losses"`
	Goals         int                `json:"goals"`
	Saves         int                `json:"saves"`
	Assists       int                `json:"assists"`
	MMR           int                `json:"mmr"`
	MatchesPlayed int                `json:"matches_played"`
	Rank          string             `json:"rank"`
	MatchHistory  []PlayerMatchEntry `json:"match_history,omitempty"`
}

// NewPlayerStats returns the initial record for a player's first match.
func NewPlayerStats() PlayerStats {
	return PlayerStats{
		MMR:  InitialMMR,
		Rank: RankFromMMR(InitialMMR),
	}
}

func (s PlayerStats) Copy() PlayerStats {
	copied, err := copystructure.Copy(s)
	if err != nil {
		logrus.Warn("failed copy playerStats:", err)
	}
	copyStats, _ := copied.(PlayerStats)
	return copyStats
}

// AdminSettings gates optional behavior. Missing keys fall back to defaults
// when loaded, so the stored file may be sparse.
type AdminSettings struct {
	AllowQueue         *bool `json:"allow_queue,omitempty"`
	AllowTournaments   *bool `json:"allow_tournaments,omitempty"`
	AutoMMRUpdates     *bool `json:"auto_mmr_updates,omitempty"`
	MVPVotingEnabled   *bool `json:"mvp_voting_enabled,omitempty"`
	MaxTournamentTeams *int  `json:"max_tournament_teams,omitempty"`
}

// WithDefaults fills unset fields with the default admin settings.
func (a AdminSettings) WithDefaults() AdminSettings {
	if a.AllowQueue == nil {
		a.AllowQueue = swag.Bool(true)
	}
	if a.AllowTournaments == nil {
		a.AllowTournaments = swag.Bool(true)
	}
	if a.AutoMMRUpdates == nil {
		a.AutoMMRUpdates = swag.Bool(true)
	}
	if a.MVPVotingEnabled == nil {
		a.MVPVotingEnabled = swag.Bool(true)
	}
	if a.MaxTournamentTeams == nil {
		a.MaxTournamentTeams = swag.Int(32)
	}
	return a
}

func (a AdminSettings) QueueAllowed() bool {
	return a.AllowQueue == nil || *a.AllowQueue
}

func (a AdminSettings) MMRUpdatesAllowed() bool {
	return a.AutoMMRUpdates == nil || *a.AutoMMRUpdates
}

// MapPools lists the playable maps per game mode.
var MapPools = map[string][]string{
	"Soccar":     {"DFH Stadium", "Mannfield", "Champions Field", "Neo Tokyo", "Urban Central", "Beckwith Park"},
	"Hoops":      {"Dunk House", "The Block (Hoops)"},
	"Snow Day":   {"Snowy DFH Stadium", "Wintry Mannfield"},
	"Heatseeker": {"DFH Stadium", "Mannfield", "Champions Field"},
}

// MapPoolFor returns the map pool for a mode, falling back to Soccar maps.
func MapPoolFor(mode string) []string {
	if pool, ok := MapPools[mode]; ok {
		return pool
	}
	return MapPools[constants.DefaultMode]
}
