// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type QueueMetrics interface {
	PlayersInQueue(format string, mode string, numPlayers int)
	AddDrainTickElapsedTimeMs(elapsedTime time.Duration)
	AddMatchCreated(format string, mode string)
	AddUnmatchedReason(format string, mode string, reason string)
	AddTimeoutEviction(numPlayers int)
	AddMatchReported(format string)
}

func NewMetrics(registry *prometheus.Registry) QueueMetrics {
	return setupPrometheusMetrics(registry)
}
