// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_RequiredPlayers(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   int
	}{
		{name: "1v1 needs 2", format: Format1v1, want: 2},
		{name: "2v2 needs 4", format: Format2v2, want: 4},
		{name: "3v3 needs 6", format: Format3v3, want: 6},
		{name: "unknown format needs 0", format: Format("4v4"), want: 0},
		{name: "empty format needs 0", format: Format(""), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.RequiredPlayers(); got != tt.want {
				t.Errorf("RequiredPlayers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueueEntry_GroupKey(t *testing.T) {
	e := QueueEntry{Format: Format2v2, Mode: "Hoops"}
	assert.Equal(t, "2v2_Hoops", e.GroupKey())

	// An entry without a mode groups under the default mode.
	e = QueueEntry{Format: Format1v1}
	assert.Equal(t, "1v1_Soccar", e.GroupKey())
}

func TestAdminSettings_WithDefaults(t *testing.T) {
	defaults := AdminSettings{}.WithDefaults()
	assert.True(t, *defaults.AllowQueue)
	assert.True(t, *defaults.AutoMMRUpdates)
	assert.True(t, *defaults.MVPVotingEnabled)
	assert.Equal(t, 32, *defaults.MaxTournamentTeams)

	disabled := false
	sparse := AdminSettings{AllowQueue: &disabled}.WithDefaults()
	assert.False(t, sparse.QueueAllowed())
	assert.True(t, *sparse.AutoMMRUpdates)
}

func TestMapPoolFor(t *testing.T) {
	assert.Contains(t, MapPoolFor("Hoops"), "Dunk House")
	// Unknown modes fall back to the Soccar pool.
	assert.Equal(t, MapPools["Soccar"], MapPoolFor("Rumble"))
}

func TestMatchRecord_Copy(t *testing.T) {
	score := 3
	r := MatchRecord{
		ID:         "auto_12345",
		SideA:      []string{"a", "b"},
		SideB:      []string{"c", "d"},
		SideAScore: &score,
	}

	c := r.Copy()
	c.SideA[0] = "mutated"
	*c.SideAScore = 99

	assert.Equal(t, "a", r.SideA[0])
	assert.Equal(t, 3, *r.SideAScore)
}

func TestMatchRecord_Players(t *testing.T) {
	r := MatchRecord{SideA: []string{"a", "b"}, SideB: []string{"c", "d"}}
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.Players())
}
