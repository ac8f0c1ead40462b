// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"sync"
	"time"
)

// StubMetrics records metric calls for assertions instead of exporting them.
type StubMetrics struct {
	mu               sync.Mutex
	QueueDepths      map[string]int
	MatchesCreated   int
	UnmatchedReasons map[string]int
	TimeoutEvictions int
	MatchesReported  int
	TickObservations int
}

func NewStubMetrics() *StubMetrics {
	return &StubMetrics{
		QueueDepths:      map[string]int{},
		UnmatchedReasons: map[string]int{},
	}
}

func (m *StubMetrics) PlayersInQueue(format string, mode string, numPlayers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueDepths[format+"_"+mode] = numPlayers
}

func (m *StubMetrics) AddDrainTickElapsedTimeMs(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TickObservations++
}

func (m *StubMetrics) AddMatchCreated(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesCreated++
}

func (m *StubMetrics) AddUnmatchedReason(format string, mode string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnmatchedReasons[reason]++
}

func (m *StubMetrics) AddTimeoutEviction(int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimeoutEvictions++
}

func (m *StubMetrics) AddMatchReported(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesReported++
}
