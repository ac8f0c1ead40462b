// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package storage implements the flat JSON file stores. Each store is a
// single-owner, mutex-guarded repository: Update runs a whole
// load-mutate-save cycle under the store's lock, so concurrent writers cannot
// interleave and clobber each other's full-file rewrites.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Voidixx/OctanesCore/pkg/models"
)

// File is a mutex-guarded flat JSON file holding one value of type T.
// A missing file reads as the zero value of T.
type File[T any] struct {
	path string
	mu   sync.Mutex
}

func NewFile[T any](path string) *File[T] {
	return &File[T]{path: path}
}

func (f *File[T]) Path() string {
	return f.path
}

// Load reads the current contents. Every call decodes from disk, so the
// returned value never aliases previously returned state.
func (f *File[T]) Load() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read()
}

// Save rewrites the file wholesale.
func (f *File[T]) Save(value T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(value)
}

// Update runs fn on the current contents and persists the result as one
// atomic operation under the store lock. If fn returns an error nothing is
// written and the error is returned unchanged.
func (f *File[T]) Update(fn func(T) (T, error)) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, err := f.read()
	if err != nil {
		return value, err
	}

	value, err = fn(value)
	if err != nil {
		return value, err
	}

	if err := f.write(value); err != nil {
		return value, err
	}

	return value, nil
}

func (f *File[T]) read() (T, error) {
	var value T

	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return value, nil
	}
	if err != nil {
		return value, fmt.Errorf("%w: read %s: %v", models.ErrStorage, f.path, err)
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		// A corrupt file reads as empty, matching the original stores.
		var zero T
		return zero, nil
	}

	return value, nil
}

func (f *File[T]) write(value T) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", models.ErrStorage, f.path, err)
	}

	// Write-then-rename so a crash mid-write cannot leave a torn file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", models.ErrStorage, tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", models.ErrStorage, f.path, err)
	}

	return nil
}

// Stores bundles the named flat-file stores the pipeline works against.
type Stores struct {
	Queue    *File[[]models.QueueEntry]
	Matches  *File[[]models.MatchRecord]
	History  *File[[]models.HistoryEvent]
	Stats    *File[map[string]models.PlayerStats]
	Settings *File[models.AdminSettings]
}

// Open creates the data directory when needed and opens every store.
func Open(dataDir string) (*Stores, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %v", models.ErrStorage, dataDir, err)
	}

	return &Stores{
		Queue:    NewFile[[]models.QueueEntry](filepath.Join(dataDir, "queue.json")),
		Matches:  NewFile[[]models.MatchRecord](filepath.Join(dataDir, "matches.json")),
		History:  NewFile[[]models.HistoryEvent](filepath.Join(dataDir, "match_history.json")),
		Stats:    NewFile[map[string]models.PlayerStats](filepath.Join(dataDir, "stats.json")),
		Settings: NewFile[models.AdminSettings](filepath.Join(dataDir, "admin_settings.json")),
	}, nil
}

// LoadSettings reads the admin settings with defaults applied.
func (s *Stores) LoadSettings() (models.AdminSettings, error) {
	settings, err := s.Settings.Load()
	if err != nil {
		return settings, err
	}
	return settings.WithDefaults(), nil
}
