// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package stats

import (
	"os"
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Voidixx/OctanesCore/pkg/constants"
	"github.com/Voidixx/OctanesCore/pkg/events"
	"github.com/Voidixx/OctanesCore/pkg/models"
	"github.com/Voidixx/OctanesCore/pkg/rng"
	"github.com/Voidixx/OctanesCore/pkg/storage"
	"github.com/Voidixx/OctanesCore/pkg/testsetup"
)

func newReporter(t *testing.T, src rng.Source, backfill BackfillPolicy) (*Reporter, *storage.Stores, *events.Bus) {
	t.Helper()
	stores, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	bus := events.NewBus()
	return NewReporter(stores, bus, testsetup.NewStubMetrics(), src, backfill), stores, bus
}

func seedMatch(t *testing.T, stores *storage.Stores, id string, sideA, sideB []string, format models.Format) {
	t.Helper()
	require.NoError(t, stores.Matches.Save([]models.MatchRecord{{
		ID:        id,
		SideAName: constants.SideAName,
		SideBName: constants.SideBName,
		SideA:     sideA,
		SideB:     sideB,
		Format:    format,
		Mode:      "Soccar",
		Map:       "DFH Stadium",
		Status:    constants.MatchStatusReady,
		CreatedAt: time.Now(),
	}}))
}

func TestReportMatch_WinLossAndMMRRange(t *testing.T) {
	r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	seedMatch(t, stores, "m1", []string{"A1", "A2"}, []string{"B1", "B2"}, models.Format2v2)

	record, err := r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 5, SideBScore: 3})
	require.NoError(t, err)
	assert.Equal(t, constants.MatchStatusCompleted, record.Status)
	assert.Equal(t, 5, *record.SideAScore)
	assert.Equal(t, 3, *record.SideBScore)

	all, err := stores.Stats.Load()
	require.NoError(t, err)

	for _, name := range []string{"A1", "A2"} {
		s := all[PlayerKey(name)]
		assert.Equal(t, 1, s.Wins, name)
		assert.Equal(t, 0, s.Losses, name)
		assert.Equal(t, 1, s.MatchesPlayed, name)
		delta := s.MMR - models.InitialMMR
		assert.GreaterOrEqual(t, delta, 15, name)
		assert.LessOrEqual(t, delta, 25, name)
	}
	for _, name := range []string{"B1", "B2"} {
		s := all[PlayerKey(name)]
		assert.Equal(t, 0, s.Wins, name)
		assert.Equal(t, 1, s.Losses, name)
		delta := models.InitialMMR - s.MMR
		assert.GreaterOrEqual(t, delta, 10, name)
		assert.LessOrEqual(t, delta, 20, name)
	}
}

func TestReportMatch_ScriptedDeltasAreExact(t *testing.T) {
	src := &testsetup.ScriptedSource{Ints: []int{5, 3}}
	r, stores, _ := newReporter(t, src, NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	seedMatch(t, stores, "m1", []string{"W"}, []string{"L"}, models.Format1v1)

	_, err := r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 2, SideBScore: 1})
	require.NoError(t, err)

	all, err := stores.Stats.Load()
	require.NoError(t, err)
	assert.Equal(t, 1020, all[PlayerKey("W")].MMR) // win delta 15+5
	assert.Equal(t, 987, all[PlayerKey("L")].MMR)  // loss delta 10+3
	assert.Equal(t, "Diamond II", all[PlayerKey("W")].Rank)
	assert.Equal(t, "Diamond I", all[PlayerKey("L")].Rank)
}

func TestReportMatch_UnknownMatchLeavesStateUntouched(t *testing.T) {
	r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	require.NoError(t, stores.Stats.Save(map[string]models.PlayerStats{
		PlayerKey("A1"): {Wins: 3, MMR: 1200, Rank: "Champion I"},
	}))
	before, err := os.ReadFile(stores.Stats.Path())
	require.NoError(t, err)

	_, err = r.ReportMatch(scope, Report{MatchID: "does-not-exist", SideAScore: 1, SideBScore: 0})
	assert.ErrorIs(t, err, models.ErrMatchNotFound)

	after, err := os.ReadFile(stores.Stats.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "stats file must be byte-for-byte unchanged")
}

func TestReportMatch_IsNotIdempotent(t *testing.T) {
	// Documents the current double-counting behavior on re-report; the data
	// layer has no already-reported guard.
	r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	seedMatch(t, stores, "m1", []string{"W"}, []string{"L"}, models.Format1v1)

	_, err := r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 3, SideBScore: 0})
	require.NoError(t, err)
	_, err = r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 3, SideBScore: 0})
	require.NoError(t, err)

	all, err := stores.Stats.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, all[PlayerKey("W")].Wins)
	assert.Equal(t, 2, all[PlayerKey("W")].MatchesPlayed)
	assert.Equal(t, 2, all[PlayerKey("L")].Losses)
	assert.Len(t, all[PlayerKey("W")].MatchHistory, 2)
}

func TestReportMatch_RejectsMalformedInputBeforeMutation(t *testing.T) {
	tests := []struct {
		name    string
		report  Report
		wantErr error
	}{
		{
			name:    "negative side a score",
			report:  Report{MatchID: "m1", SideAScore: -1, SideBScore: 2},
			wantErr: models.ErrInvalidScore,
		},
		{
			name:    "negative side b score",
			report:  Report{MatchID: "m1", SideAScore: 1, SideBScore: -2},
			wantErr: models.ErrInvalidScore,
		},
		{
			name:    "non-numeric goal token",
			report:  Report{MatchID: "m1", SideAScore: 2, SideBScore: 1, SideAGoals: "2,x"},
			wantErr: models.ErrInvalidGoals,
		},
		{
			name:    "negative goal token",
			report:  Report{MatchID: "m1", SideAScore: 2, SideBScore: 1, SideBGoals: "-3"},
			wantErr: models.ErrInvalidGoals,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
			scope := testsetup.NewTestScope()
			defer scope.Finish()

			seedMatch(t, stores, "m1", []string{"W"}, []string{"L"}, models.Format1v1)

			_, err := r.ReportMatch(scope, tt.report)
			assert.ErrorIs(t, err, tt.wantErr)

			matches, err := stores.Matches.Load()
			require.NoError(t, err)
			assert.Equal(t, constants.MatchStatusReady, matches[0].Status)

			all, err := stores.Stats.Load()
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestReportMatch_TieCountsAsLossForBothSides(t *testing.T) {
	r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	seedMatch(t, stores, "m1", []string{"A"}, []string{"B"}, models.Format1v1)

	_, err := r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 2, SideBScore: 2})
	require.NoError(t, err)

	all, err := stores.Stats.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, all[PlayerKey("A")].Wins)
	assert.Equal(t, 1, all[PlayerKey("A")].Losses)
	assert.Equal(t, 0, all[PlayerKey("B")].Wins)
	assert.Equal(t, 1, all[PlayerKey("B")].Losses)
}

func TestReportMatch_GoalsAssignedByIndex(t *testing.T) {
	r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	seedMatch(t, stores, "m1", []string{"A1", "A2"}, []string{"B1", "B2"}, models.Format2v2)

	_, err := r.ReportMatch(scope, Report{
		MatchID:    "m1",
		SideAScore: 3,
		SideBScore: 1,
		SideAGoals: "2, 1",
	})
	require.NoError(t, err)

	all, err := stores.Stats.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, all[PlayerKey("A1")].Goals)
	assert.Equal(t, 1, all[PlayerKey("A2")].Goals)
	// No individual goals supplied for side B.
	assert.Equal(t, 0, all[PlayerKey("B1")].Goals)
	assert.Equal(t, 0, all[PlayerKey("B2")].Goals)
}

func TestReportMatch_BackfillStaysInBounds(t *testing.T) {
	src := rng.New()
	r, stores, _ := newReporter(t, src, RandomBackfill{Max: 2, Source: src})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	seedMatch(t, stores, "m1", []string{"A"}, []string{"B"}, models.Format1v1)

	_, err := r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 1, SideBScore: 0})
	require.NoError(t, err)

	all, err := stores.Stats.Load()
	require.NoError(t, err)
	for _, name := range []string{"A", "B"} {
		s := all[PlayerKey(name)]
		assert.GreaterOrEqual(t, s.Saves, 0, name)
		assert.LessOrEqual(t, s.Saves, 2, name)
		assert.GreaterOrEqual(t, s.Assists, 0, name)
		assert.LessOrEqual(t, s.Assists, 2, name)
	}
}

func TestReportMatch_RespectsMMRUpdatesDisabled(t *testing.T) {
	r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	require.NoError(t, stores.Settings.Save(models.AdminSettings{AutoMMRUpdates: swag.Bool(false)}))
	seedMatch(t, stores, "m1", []string{"A"}, []string{"B"}, models.Format1v1)

	_, err := r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 1, SideBScore: 0})
	require.NoError(t, err)

	all, err := stores.Stats.Load()
	require.NoError(t, err)
	assert.Equal(t, models.InitialMMR, all[PlayerKey("A")].MMR)
	assert.Equal(t, models.InitialMMR, all[PlayerKey("B")].MMR)
	assert.Equal(t, 1, all[PlayerKey("A")].Wins)
}

func TestReportMatch_AppendsHistoryAndPublishes(t *testing.T) {
	r, stores, bus := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	seedMatch(t, stores, "m1", []string{"A"}, []string{"B"}, models.Format1v1)

	var reported []events.MatchReported
	events.Subscribe(bus, func(ev events.MatchReported) { reported = append(reported, ev) })

	_, err := r.ReportMatch(scope, Report{MatchID: "m1", SideAScore: 4, SideBScore: 2})
	require.NoError(t, err)

	history, err := stores.History.Load()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, constants.HistoryEventReported, history[0].Status)
	assert.Equal(t, "m1", history[0].MatchID)

	require.Len(t, reported, 1)
	assert.Equal(t, 4, reported[0].SideAScore)
}

func TestWipe(t *testing.T) {
	r, stores, _ := newReporter(t, rng.New(), NoBackfill{})
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	require.NoError(t, stores.Stats.Save(map[string]models.PlayerStats{
		PlayerKey("A"): {Wins: 1},
		PlayerKey("B"): {Wins: 2},
	}))

	require.NoError(t, r.WipePlayer(scope, "A"))
	all, err := stores.Stats.Load()
	require.NoError(t, err)
	assert.NotContains(t, all, PlayerKey("A"))
	assert.Contains(t, all, PlayerKey("B"))

	assert.ErrorIs(t, r.WipePlayer(scope, "A"), models.ErrPlayerNotFound)

	require.NoError(t, r.Wipe(scope))
	all, err = stores.Stats.Load()
	require.NoError(t, err)
	assert.Empty(t, all)
}
