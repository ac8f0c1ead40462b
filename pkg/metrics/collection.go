// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	playersInQueue   prometheus.GaugeVec
	drainElapsedTime prometheus.HistogramVec
	matchesCreated   prometheus.CounterVec
	unmatchedReasons prometheus.CounterVec
	timeoutEvictions prometheus.Counter
	matchesReported  prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	playersInQueue := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "octane_players_in_queue",
			Help: "Number of searching players per format and mode in the match queue",
		}, []string{"format", "mode"})

	//nolint:promlinter
	drainElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "octane_drain_tick_elapsed_time_ms",
			Help:    "A histogram of queue drain tick elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"function"})

	matchesCreated := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octane_matches_created_total",
			Help: "Matches formed by the drain loop per format and mode",
		}, []string{"format", "mode"})

	unmatchedReasons := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octane_unmatched_reasons_total",
			Help: "Reasons queue groups were not matched on a drain tick",
		}, []string{"format", "mode", "reason"})

	timeoutEvictions := factory.NewCounter(
		prometheus.CounterOpts{
			Name: "octane_queue_timeout_evictions_total",
			Help: "Players evicted from the queue after exceeding the wait limit",
		})

	matchesReported := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octane_matches_reported_total",
			Help: "Match results applied to player stats per format",
		}, []string{"format"})

	return prometheusMetrics{
		playersInQueue:   *playersInQueue,
		drainElapsedTime: *drainElapsedTime,
		matchesCreated:   *matchesCreated,
		unmatchedReasons: *unmatchedReasons,
		timeoutEvictions: timeoutEvictions,
		matchesReported:  *matchesReported,
	}
}

func (metrics prometheusMetrics) PlayersInQueue(format string, mode string, numPlayers int) {
	metrics.playersInQueue.With(prometheus.Labels{"format": format, "mode": mode}).Set(float64(numPlayers))
}

func (metrics prometheusMetrics) AddDrainTickElapsedTimeMs(elapsedTime time.Duration) {
	metrics.drainElapsedTime.With(prometheus.Labels{"function": "runTick"}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddMatchCreated(format string, mode string) {
	metrics.matchesCreated.With(prometheus.Labels{"format": format, "mode": mode}).Add(1)
}

func (metrics prometheusMetrics) AddUnmatchedReason(format string, mode string, reason string) {
	metrics.unmatchedReasons.With(prometheus.Labels{"format": format, "mode": mode, "reason": reason}).Add(1)
}

func (metrics prometheusMetrics) AddTimeoutEviction(numPlayers int) {
	metrics.timeoutEvictions.Add(float64(numPlayers))
}

func (metrics prometheusMetrics) AddMatchReported(format string) {
	metrics.matchesReported.With(prometheus.Labels{"format": format}).Add(1)
}
