// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"fmt"
	"io"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/oklog/ulid/v2"

	"github.com/Voidixx/OctanesCore/pkg/common"
	"github.com/Voidixx/OctanesCore/pkg/constants"
	"github.com/Voidixx/OctanesCore/pkg/envelope"
	"github.com/Voidixx/OctanesCore/pkg/models"
	"github.com/Voidixx/OctanesCore/pkg/rng"
	"github.com/Voidixx/OctanesCore/pkg/storage"
)

type formation struct {
	stores  *storage.Stores
	rand    rng.Source
	entropy io.Reader
}

// New returns the default Former backed by the match and history stores.
func New(stores *storage.Stores, src rng.Source) Former {
	return &formation{
		stores:  stores,
		rand:    src,
		entropy: ulid.Monotonic(common.NewSeededRand(), 0),
	}
}

// Form assigns the group to two sides by a straight split of a pre-shuffled
// sample, generates the shareable lobby credentials and appends the record
// with status "ready". Side assignment is not skill-balanced.
func (f *formation) Form(rootScope *envelope.Scope, group []models.QueueEntry, format models.Format, mode string) (models.MatchRecord, error) {
	scope := rootScope.NewChildScope("formation.Form")
	defer scope.Finish()

	required := format.RequiredPlayers()
	if required == 0 {
		return models.MatchRecord{}, models.ErrInvalidFormat
	}
	if len(group) != required {
		scope.Log.WithField("format", format).
			Errorf("group has %d players, need %d", len(group), required)
		return models.MatchRecord{}, models.ErrGroupSize
	}
	if mode == "" {
		mode = constants.DefaultMode
	}
	scope.SetAttributes("match.format", string(format))
	scope.SetAttributes("match.mode", mode)

	shuffled := make([]models.QueueEntry, len(group))
	copy(shuffled, group)
	f.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	names := pie.Map(shuffled, func(e models.QueueEntry) string { return e.DisplayName })
	sideA := names[:required/2]
	sideB := names[required/2:]

	record := models.MatchRecord{
		ID:        fmt.Sprintf("auto_%d", rng.IntBetween(f.rand, 10000, 99999)),
		SideAName: constants.SideAName,
		SideBName: constants.SideBName,
		SideA:     sideA,
		SideB:     sideB,
		Format:    format,
		Mode:      mode,
		Map:       rng.Pick(f.rand, models.MapPoolFor(mode)),
		Status:    constants.MatchStatusReady,
		MatchName: fmt.Sprintf("AutoRL%d", rng.IntBetween(f.rand, 1000, 9999)),
		Password:  fmt.Sprintf("AUTO%d", rng.IntBetween(f.rand, 100, 999)),
		Type:      constants.MatchTypeAutoMatched,
		CreatedAt: time.Now(),
	}

	if _, err := f.stores.Matches.Update(func(matches []models.MatchRecord) ([]models.MatchRecord, error) {
		return append(matches, record), nil
	}); err != nil {
		return models.MatchRecord{}, err
	}

	event := models.HistoryEvent{
		EventID: ulid.MustNew(ulid.Timestamp(time.Now()), f.entropy).String(),
		MatchID: record.ID,
		Date:    record.CreatedAt,
		Status:  constants.HistoryEventCreated,
		Format:  format,
		Mode:    mode,
		Map:     record.Map,
		Type:    constants.MatchTypeAutoMatched,
		SideA:   sideA,
		SideB:   sideB,
	}
	if _, err := f.stores.History.Update(func(history []models.HistoryEvent) ([]models.HistoryEvent, error) {
		return append(history, event), nil
	}); err != nil {
		// The match record is already persisted; the history log catches up
		// on the next lifecycle event.
		scope.Log.WithField("matchID", record.ID).Error("failed to append match history: ", err)
	}

	scope.Log.WithField("matchID", record.ID).
		WithField("format", format).
		WithField("mode", mode).
		Infof("MATCHMAKER: match formed on %s (%s vs %s)", record.Map, record.SideAName, record.SideBName)

	return record.Copy(), nil
}
