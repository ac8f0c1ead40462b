// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package events

import "github.com/Voidixx/OctanesCore/pkg/models"

// QueueUpdated is emitted after any persisted change to the queue store.
type QueueUpdated struct {
	Size int
}

// MatchCreated is emitted when the drain loop forms a match.
type MatchCreated struct {
	Match models.MatchRecord
}

// MatchFailed is emitted when a satisfied group is rejected by the
// acceptance policy and one sampled player is evicted.
type MatchFailed struct {
	Format         models.Format
	Mode           string
	EvictedPlayers []string
}

// PlayersTimedOut is emitted when stale queue entries are evicted.
type PlayersTimedOut struct {
	PlayerIDs []string
}

// MatchReported is emitted after a match result is applied to player stats.
type MatchReported struct {
	MatchID    string
	SideAScore int
	SideBScore int
}
