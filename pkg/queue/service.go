// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package queue holds the waiting-player service and the periodic drain loop
// that converts satisfied queue groups into matches.
package queue

import (
	"fmt"
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/Voidixx/OctanesCore/pkg/constants"
	"github.com/Voidixx/OctanesCore/pkg/envelope"
	"github.com/Voidixx/OctanesCore/pkg/events"
	"github.com/Voidixx/OctanesCore/pkg/models"
	"github.com/Voidixx/OctanesCore/pkg/storage"
)

// Service owns join/leave mutations on the queue store.
type Service struct {
	stores *storage.Stores
	bus    *events.Bus
}

func NewService(stores *storage.Stores, bus *events.Bus) *Service {
	return &Service{stores: stores, bus: bus}
}

// Join puts a player into the queue for the given format and mode. A player
// holds at most one active entry: any prior entry is replaced.
func (s *Service) Join(rootScope *envelope.Scope, playerID, displayName string, format models.Format, mode string) error {
	scope := rootScope.NewChildScope("queue.Join")
	defer scope.Finish()

	if !format.Valid() {
		return models.ErrInvalidFormat
	}
	if mode == "" {
		mode = constants.DefaultMode
	}

	settings, err := s.stores.LoadSettings()
	if err != nil {
		return err
	}
	if !settings.QueueAllowed() {
		return models.ErrQueueDisabled
	}

	updated, err := s.stores.Queue.Update(func(queue []models.QueueEntry) ([]models.QueueEntry, error) {
		queue = pie.Filter(queue, func(e models.QueueEntry) bool { return e.PlayerID != playerID })
		return append(queue, models.QueueEntry{
			PlayerID:    playerID,
			DisplayName: displayName,
			Format:      format,
			Mode:        mode,
			Status:      constants.QueueStatusSearching,
			JoinedAt:    time.Now(),
		}), nil
	})
	if err != nil {
		return err
	}

	scope.Log.WithField("playerID", playerID).
		WithField("format", format).
		WithField("mode", mode).
		Info("QUEUE: player joined")
	events.Publish(s.bus, events.QueueUpdated{Size: len(updated)})

	return nil
}

// Leave removes the player's entry. Returns ErrPlayerNotFound and writes
// nothing when the player is not queued.
func (s *Service) Leave(rootScope *envelope.Scope, playerID string) error {
	scope := rootScope.NewChildScope("queue.Leave")
	defer scope.Finish()

	updated, err := s.stores.Queue.Update(func(queue []models.QueueEntry) ([]models.QueueEntry, error) {
		remaining := pie.Filter(queue, func(e models.QueueEntry) bool { return e.PlayerID != playerID })
		if len(remaining) == len(queue) {
			return queue, models.ErrPlayerNotFound
		}
		return remaining, nil
	})
	if err != nil {
		return err
	}

	scope.Log.WithField("playerID", playerID).Info("QUEUE: player left")
	events.Publish(s.bus, events.QueueUpdated{Size: len(updated)})

	return nil
}

// Snapshot returns the current queue contents.
func (s *Service) Snapshot(rootScope *envelope.Scope) ([]models.QueueEntry, error) {
	return s.stores.Queue.Load()
}

// CountByFormat counts queued players in a format across all modes.
func (s *Service) CountByFormat(rootScope *envelope.Scope, format models.Format) (int, error) {
	queue, err := s.stores.Queue.Load()
	if err != nil {
		return 0, err
	}
	return len(pie.Filter(queue, func(e models.QueueEntry) bool { return e.Format == format })), nil
}

// EstimatedWait is the human-readable wait hint shown to a joining player.
func EstimatedWait(format models.Format, count int) string {
	need := format.RequiredPlayers()
	if need == 0 {
		return ""
	}
	if count >= need {
		return "< 1 minute"
	}
	return fmt.Sprintf("Waiting for %d more players", need-count)
}
