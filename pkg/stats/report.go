// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package stats applies reported match outcomes to cumulative player records
// and serves the derived read views (leaderboard, wait summary).
package stats

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Voidixx/OctanesCore/pkg/common"
	"github.com/Voidixx/OctanesCore/pkg/constants"
	"github.com/Voidixx/OctanesCore/pkg/envelope"
	"github.com/Voidixx/OctanesCore/pkg/events"
	"github.com/Voidixx/OctanesCore/pkg/metrics"
	"github.com/Voidixx/OctanesCore/pkg/models"
	"github.com/Voidixx/OctanesCore/pkg/rng"
	"github.com/Voidixx/OctanesCore/pkg/storage"
)

const (
	mmrWinDeltaMin  = 15
	mmrWinDeltaMax  = 25
	mmrLossDeltaMin = 10
	mmrLossDeltaMax = 20
)

// Report is the input to ReportMatch. Goal strings are comma-separated
// per-player counts in side order; empty means no individual goals recorded.
type Report struct {
	MatchID    string
	SideAScore int
	SideBScore int
	SideAGoals string
	SideBGoals string
	ReportedBy string
}

// Reporter owns the stat-update operation.
type Reporter struct {
	stores   *storage.Stores
	bus      *events.Bus
	metrics  metrics.QueueMetrics
	rand     rng.Source
	backfill BackfillPolicy
	entropy  io.Reader
}

func NewReporter(stores *storage.Stores, bus *events.Bus, qm metrics.QueueMetrics, src rng.Source, backfill BackfillPolicy) *Reporter {
	return &Reporter{
		stores:   stores,
		bus:      bus,
		metrics:  qm,
		rand:     src,
		backfill: backfill,
		entropy:  ulid.Monotonic(common.NewSeededRand(), 0),
	}
}

// PlayerKey maps a display name to its key in the stats store.
func PlayerKey(displayName string) string {
	return "player_" + displayName
}

// parseGoals parses a comma-separated goal list. Empty elements are skipped;
// a non-numeric element fails the whole report before any state is touched.
func parseGoals(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var goals []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, models.ErrInvalidGoals
		}
		goals = append(goals, n)
	}
	return goals, nil
}

// ReportMatch applies a final score to the match record and every
// participant's cumulative stats.
//
// Reporting is deliberately not idempotent at this layer: reporting the same
// match id twice reapplies every delta. Callers wanting a guard can check the
// record's status, which flips to "completed" on the first report.
func (r *Reporter) ReportMatch(rootScope *envelope.Scope, report Report) (models.MatchRecord, error) {
	scope := rootScope.NewChildScope("stats.ReportMatch")
	defer scope.Finish()
	scope.SetAttributes("match.id", report.MatchID)

	// All input validation happens before any store is written.
	if report.SideAScore < 0 || report.SideBScore < 0 {
		return models.MatchRecord{}, models.ErrInvalidScore
	}
	sideAGoals, err := parseGoals(report.SideAGoals)
	if err != nil {
		return models.MatchRecord{}, err
	}
	sideBGoals, err := parseGoals(report.SideBGoals)
	if err != nil {
		return models.MatchRecord{}, err
	}

	settings, err := r.stores.LoadSettings()
	if err != nil {
		return models.MatchRecord{}, err
	}

	completedAt := time.Now()
	var updated models.MatchRecord

	_, err = r.stores.Matches.Update(func(matches []models.MatchRecord) ([]models.MatchRecord, error) {
		idx := -1
		for i, m := range matches {
			if m.ID == report.MatchID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return matches, models.ErrMatchNotFound
		}

		m := matches[idx]
		m.Status = constants.MatchStatusCompleted
		m.SideAScore = &report.SideAScore
		m.SideBScore = &report.SideBScore
		m.SideAGoals = sideAGoals
		m.SideBGoals = sideBGoals
		m.CompletedAt = &completedAt
		m.ReportedBy = report.ReportedBy
		matches[idx] = m
		updated = m.Copy()
		return matches, nil
	})
	if err != nil {
		return models.MatchRecord{}, err
	}

	sideAWon := report.SideAScore > report.SideBScore
	sideBWon := report.SideBScore > report.SideAScore

	_, err = r.stores.Stats.Update(func(all map[string]models.PlayerStats) (map[string]models.PlayerStats, error) {
		if all == nil {
			all = map[string]models.PlayerStats{}
		}
		for i, name := range updated.SideA {
			goals := 0
			if i < len(sideAGoals) {
				goals = sideAGoals[i]
			}
			r.applyOutcome(all, PlayerKey(name), updated.ID, sideAWon, goals, settings.MMRUpdatesAllowed(), completedAt)
		}
		for i, name := range updated.SideB {
			goals := 0
			if i < len(sideBGoals) {
				goals = sideBGoals[i]
			}
			r.applyOutcome(all, PlayerKey(name), updated.ID, sideBWon, goals, settings.MMRUpdatesAllowed(), completedAt)
		}
		return all, nil
	})
	if err != nil {
		scope.Log.WithField("matchID", updated.ID).Error("STATS: failed to persist player stats: ", err)
		return updated, err
	}

	event := models.HistoryEvent{
		EventID:    ulid.MustNew(ulid.Timestamp(completedAt), r.entropy).String(),
		MatchID:    updated.ID,
		Date:       completedAt,
		Status:     constants.HistoryEventReported,
		Format:     updated.Format,
		Mode:       updated.Mode,
		Map:        updated.Map,
		SideA:      updated.SideA,
		SideB:      updated.SideB,
		SideAScore: updated.SideAScore,
		SideBScore: updated.SideBScore,
		SideAGoals: sideAGoals,
		SideBGoals: sideBGoals,
	}
	if _, err := r.stores.History.Update(func(history []models.HistoryEvent) ([]models.HistoryEvent, error) {
		return append(history, event), nil
	}); err != nil {
		scope.Log.WithField("matchID", updated.ID).Error("STATS: failed to append match history: ", err)
	}

	r.metrics.AddMatchReported(string(updated.Format))
	scope.Log.WithField("matchID", updated.ID).
		Infof("STATS: match reported %d-%d", report.SideAScore, report.SideBScore)
	events.Publish(r.bus, events.MatchReported{
		MatchID:    updated.ID,
		SideAScore: report.SideAScore,
		SideBScore: report.SideBScore,
	})

	return updated, nil
}

// applyOutcome mutates one player's record in place within the stats map.
func (r *Reporter) applyOutcome(all map[string]models.PlayerStats, key, matchID string, won bool, goals int, mmrUpdates bool, when time.Time) {
	s, ok := all[key]
	if !ok {
		s = models.NewPlayerStats()
	}

	s.MatchesPlayed++
	if won {
		s.Wins++
		if mmrUpdates {
			s.MMR += rng.IntBetween(r.rand, mmrWinDeltaMin, mmrWinDeltaMax)
		}
	} else {
		s.Losses++
		if mmrUpdates {
			s.MMR -= rng.IntBetween(r.rand, mmrLossDeltaMin, mmrLossDeltaMax)
		}
	}

	saves, assists := r.backfill.Backfill()
	s.Goals += goals
	s.Saves += saves
	s.Assists += assists

	s.MatchHistory = append(s.MatchHistory, models.PlayerMatchEntry{
		MatchID: matchID,
		Date:    when,
		Won:     won,
		Goals:   goals,
		Saves:   saves,
		Assists: assists,
	})

	// MMR is not clamped; the bottom rank band absorbs negative values.
	s.Rank = models.RankFromMMR(s.MMR)
	all[key] = s
}

// Stats returns one player's record.
func (r *Reporter) Stats(rootScope *envelope.Scope, displayName string) (models.PlayerStats, error) {
	all, err := r.stores.Stats.Load()
	if err != nil {
		return models.PlayerStats{}, err
	}
	s, ok := all[PlayerKey(displayName)]
	if !ok {
		return models.PlayerStats{}, models.ErrPlayerNotFound
	}
	return s.Copy(), nil
}

// Wipe clears every player record. Admin only.
func (r *Reporter) Wipe(rootScope *envelope.Scope) error {
	rootScope.Log.Warn("STATS: wiping all player stats")
	_, err := r.stores.Stats.Update(func(map[string]models.PlayerStats) (map[string]models.PlayerStats, error) {
		return map[string]models.PlayerStats{}, nil
	})
	return err
}

// WipePlayer removes one player's record. Admin only.
func (r *Reporter) WipePlayer(rootScope *envelope.Scope, displayName string) error {
	key := PlayerKey(displayName)
	_, err := r.stores.Stats.Update(func(all map[string]models.PlayerStats) (map[string]models.PlayerStats, error) {
		if _, ok := all[key]; !ok {
			return all, models.ErrPlayerNotFound
		}
		delete(all, key)
		return all, nil
	})
	return err
}
