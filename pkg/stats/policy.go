// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package stats

import "github.com/Voidixx/OctanesCore/pkg/rng"

// BackfillPolicy supplies saves and assists for a reported match. There is no
// gameplay telemetry to read them from, so the default policy fabricates
// plausible bounded values.
type BackfillPolicy interface {
	Backfill() (saves, assists int)
}

// RandomBackfill draws saves and assists uniformly from [0, Max].
type RandomBackfill struct {
	Max    int
	Source rng.Source
}

func (p RandomBackfill) Backfill() (int, int) {
	return rng.IntBetween(p.Source, 0, p.Max), rng.IntBetween(p.Source, 0, p.Max)
}

// NoBackfill records zero saves and assists.
type NoBackfill struct{}

func (NoBackfill) Backfill() (int, int) { return 0, 0 }
