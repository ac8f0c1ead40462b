// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	DefaultDrainInterval     = 15 * time.Second
	DefaultQueueEntryTimeout = 10 * time.Minute

	// DefaultAcceptFailureRate is the chance a satisfied group is rejected to
	// simulate players not accepting the match.
	DefaultAcceptFailureRate = 0.1
)

const (
	DefaultMode = "Soccar"

	SideAName = "Orange Team"
	SideBName = "Blue Team"
)

const (
	QueueStatusSearching = "searching"

	MatchStatusReady     = "ready"
	MatchStatusCompleted = "completed"
	MatchStatusCancelled = "cancelled"

	MatchTypeAutoMatched = "auto_matched"
)

const (
	// Match history event statuses.
	HistoryEventCreated  = "created"
	HistoryEventReported = "reported"

	// Queue eviction reason constants.
	EvictReasonTimeout     = "evict_wait_time_exceeded"
	EvictReasonNotAccepted = "evict_match_not_accepted"

	// Not matched reason constants.
	ReasonNotEnoughPlayers = "not_enough_players"
	ReasonMatchNotAccepted = "match_not_accepted"
	ReasonQueueDisabled    = "queue_disabled"
)
