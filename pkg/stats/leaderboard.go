// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package stats

import (
	"sort"
	"time"

	"github.com/elliotchance/pie/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/Voidixx/OctanesCore/pkg/envelope"
	"github.com/Voidixx/OctanesCore/pkg/models"
	"github.com/Voidixx/OctanesCore/pkg/storage"
)

// LeaderboardRow pairs a stats-store key with its record for display.
type LeaderboardRow struct {
	PlayerKey string
	Stats     models.PlayerStats
}

// WaitSummary aggregates how long the current queue has been waiting.
type WaitSummary struct {
	Players       int
	MeanSeconds   float64
	StdDevSeconds float64
	P95Seconds    float64
}

// Views serves the read-only projections used by dashboards.
type Views struct {
	stores *storage.Stores
}

func NewViews(stores *storage.Stores) *Views {
	return &Views{stores: stores}
}

// Leaderboard returns the top n players ordered by MMR descending.
func (v *Views) Leaderboard(rootScope *envelope.Scope, n int) ([]LeaderboardRow, error) {
	all, err := v.stores.Stats.Load()
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(all))
	for key, s := range all {
		rows = append(rows, LeaderboardRow{PlayerKey: key, Stats: s})
	}
	rows = pie.SortUsing(rows, func(a, b LeaderboardRow) bool {
		if a.Stats.MMR != b.Stats.MMR {
			return a.Stats.MMR > b.Stats.MMR
		}
		return a.PlayerKey < b.PlayerKey
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// QueueWaitSummary summarizes current queue wait times in seconds.
func (v *Views) QueueWaitSummary(rootScope *envelope.Scope) (WaitSummary, error) {
	queue, err := v.stores.Queue.Load()
	if err != nil {
		return WaitSummary{}, err
	}

	waiting := pie.Filter(queue, func(e models.QueueEntry) bool { return e.IsSearching() })
	if len(waiting) == 0 {
		return WaitSummary{}, nil
	}

	now := time.Now()
	waits := pie.Map(waiting, func(e models.QueueEntry) float64 {
		return now.Sub(e.JoinedAt).Seconds()
	})
	sort.Float64s(waits)

	return WaitSummary{
		Players:       len(waits),
		MeanSeconds:   stat.Mean(waits, nil),
		StdDevSeconds: stat.StdDev(waits, nil),
		P95Seconds:    stat.Quantile(0.95, stat.Empirical, waits, nil),
	}, nil
}
