// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package queue

import "github.com/Voidixx/OctanesCore/pkg/rng"

// AcceptancePolicy decides whether a satisfied group proceeds to match
// formation on this tick. Kept behind an interface so the simulated-rejection
// behavior is a named, swappable strategy.
type AcceptancePolicy interface {
	Accept() bool
}

// RandomRejection rejects a fixed fraction of satisfied groups, standing in
// for players declining the match. On rejection the drain loop evicts one
// random member of the sample and skips formation for that tick.
type RandomRejection struct {
	Rate   float64
	Source rng.Source
}

func (p RandomRejection) Accept() bool {
	return p.Source.Float64() >= p.Rate
}

// AlwaysAccept disables the simulated rejection.
type AlwaysAccept struct{}

func (AlwaysAccept) Accept() bool { return true }
