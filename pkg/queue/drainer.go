// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package queue

import (
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/Voidixx/OctanesCore/pkg/common"
	"github.com/Voidixx/OctanesCore/pkg/constants"
	"github.com/Voidixx/OctanesCore/pkg/envelope"
	"github.com/Voidixx/OctanesCore/pkg/events"
	"github.com/Voidixx/OctanesCore/pkg/matchmaker"
	"github.com/Voidixx/OctanesCore/pkg/metrics"
	"github.com/Voidixx/OctanesCore/pkg/models"
	"github.com/Voidixx/OctanesCore/pkg/rng"
	"github.com/Voidixx/OctanesCore/pkg/storage"
)

// Drainer runs the periodic queue drain: partition waiting players by
// (format, mode), form matches for satisfied groups and evict stale entries.
type Drainer struct {
	stores  *storage.Stores
	former  matchmaker.Former
	bus     *events.Bus
	metrics metrics.QueueMetrics
	rand    rng.Source
	accept  AcceptancePolicy
	timeout time.Duration
	pool    *models.Pool
}

func NewDrainer(stores *storage.Stores, former matchmaker.Former, bus *events.Bus, qm metrics.QueueMetrics, src rng.Source, accept AcceptancePolicy, timeout time.Duration) *Drainer {
	if timeout <= 0 {
		timeout = constants.DefaultQueueEntryTimeout
	}
	return &Drainer{
		stores:  stores,
		former:  former,
		bus:     bus,
		metrics: qm,
		rand:    src,
		accept:  accept,
		timeout: timeout,
		pool:    models.NewPool(),
	}
}

type group struct {
	format  models.Format
	mode    string
	entries []models.QueueEntry
}

// RunTick executes one drain pass. Storage failures abort the tick and are
// returned for logging only: the loop reconciles from the stored snapshot on
// its next scheduled run, so nothing is retried here.
func (d *Drainer) RunTick(rootScope *envelope.Scope) error {
	scope := rootScope.NewChildScope("drainer.RunTick")
	defer scope.Finish()

	started := time.Now()
	defer func() {
		d.metrics.AddDrainTickElapsedTimeMs(time.Since(started))
	}()

	settings, err := d.stores.LoadSettings()
	if err != nil {
		scope.Log.Error("DRAIN: failed to load admin settings: ", err)
		return err
	}
	if !settings.QueueAllowed() {
		scope.Log.WithField("reason", constants.ReasonQueueDisabled).
			Debug("DRAIN: queue disabled, skipping tick")
		return nil
	}

	queue, err := d.stores.Queue.Load()
	if err != nil {
		scope.Log.Error("DRAIN: failed to load queue: ", err)
		return err
	}

	groups := d.partition(queue)
	scope.SetAttributes("queue.size", len(queue))

	matchesCreated := 0
	failedMatches := 0
	removed := map[string]bool{}

	// Groups are visited in map-iteration order; nothing downstream depends
	// on the ordering.
	for key, g := range groups {
		required := g.format.RequiredPlayers()
		if len(g.entries) < required {
			d.metrics.AddUnmatchedReason(string(g.format), g.mode, constants.ReasonNotEnoughPlayers)
			continue
		}

		sample := rng.Sample(d.rand, g.entries, required)

		if !d.accept.Accept() {
			// Players "didn't accept": drop one random member of the sample
			// and skip formation for this group this tick.
			evicted := rng.Pick(d.rand, sample)
			removed[evicted.PlayerID] = true
			failedMatches++
			d.metrics.AddUnmatchedReason(string(g.format), g.mode, constants.ReasonMatchNotAccepted)
			scope.Log.WithField("group", key).
				WithField("reason", constants.EvictReasonNotAccepted).
				Warnf("DRAIN: match not accepted, evicting %s", evicted.DisplayName)
			events.Publish(d.bus, events.MatchFailed{
				Format:         g.format,
				Mode:           g.mode,
				EvictedPlayers: []string{evicted.PlayerID},
			})
			continue
		}

		record, err := d.former.Form(scope, sample, g.format, g.mode)
		if err != nil {
			scope.Log.WithField("group", key).
				WithField("errorCode", models.ValidationErrorCode(err)).
				Error("DRAIN: error creating match: ", err)
			continue
		}

		for _, e := range sample {
			removed[e.PlayerID] = true
		}
		matchesCreated++
		d.metrics.AddMatchCreated(string(g.format), g.mode)
		scope.Log.WithField("matchID", record.ID).
			Infof("DRAIN: %s %s match created, %s: %v vs %s: %v",
				g.format, g.mode, record.SideAName, record.SideA, record.SideBName, record.SideB)
		scope.Log.Debug("DRAIN: match record: ", common.LogJSONFormatter(record))
		events.Publish(d.bus, events.MatchCreated{Match: record})
	}

	var timedOut []models.QueueEntry
	now := time.Now()

	updated, err := d.stores.Queue.Update(func(current []models.QueueEntry) ([]models.QueueEntry, error) {
		timedOut = timedOut[:0]
		kept := current[:0]
		for _, e := range current {
			switch {
			case removed[e.PlayerID]:
				// matched or evicted above
			case now.Sub(e.JoinedAt) > d.timeout:
				timedOut = append(timedOut, e)
			default:
				kept = append(kept, e)
			}
		}
		return kept, nil
	})
	if err != nil {
		scope.Log.Error("DRAIN: failed to persist queue: ", err)
		return err
	}

	if len(timedOut) > 0 {
		ids := pie.Map(timedOut, func(e models.QueueEntry) string { return e.PlayerID })
		d.metrics.AddTimeoutEviction(len(timedOut))
		scope.Log.WithField("reason", constants.EvictReasonTimeout).
			Warnf("DRAIN: removed %d players waiting longer than %s", len(timedOut), d.timeout)
		events.Publish(d.bus, events.PlayersTimedOut{PlayerIDs: ids})
	}

	d.updateQueueGauges(groups, updated)
	scope.SetAttributes("matches.created", matchesCreated)
	events.Publish(d.bus, events.QueueUpdated{Size: len(updated)})

	if matchesCreated > 0 || failedMatches > 0 {
		scope.Log.Infof("DRAIN: tick results: %d matches created, %d failed", matchesCreated, failedMatches)
	}

	return nil
}

// partition buckets searching entries by (format, mode).
func (d *Drainer) partition(queue []models.QueueEntry) map[string]*group {
	groups := map[string]*group{}
	for _, e := range queue {
		if !e.IsSearching() {
			continue
		}
		key := e.GroupKey()
		g, ok := groups[key]
		if !ok {
			mode := e.Mode
			if mode == "" {
				mode = constants.DefaultMode
			}
			entries := d.pool.QueueEntries.Get()
			g = &group{format: e.Format, mode: mode, entries: entries[:0]}
			groups[key] = g
		}
		g.entries = append(g.entries, e)
	}
	return groups
}

// updateQueueGauges refreshes the per-group depth gauges, zeroing groups that
// were drained empty this tick.
func (d *Drainer) updateQueueGauges(groups map[string]*group, queue []models.QueueEntry) {
	counts := map[string]int{}
	for _, e := range queue {
		if e.IsSearching() {
			counts[e.GroupKey()]++
		}
	}
	for key, g := range groups {
		d.metrics.PlayersInQueue(string(g.format), g.mode, counts[key])
		d.pool.QueueEntries.Put(g.entries)
	}
}
