// SPDX-License-Identifier: MPL-2.0

// Package history records script executions and per-workspace favorites.
package history

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gigachad-dev/gigachad/internal/resolver"

	"github.com/oklog/ulid/v2"
)

const (
	// Key is the state key holding the history record.
	Key = "gigachad.scriptHistory"
	// Version is the record format version.
	Version = 1

	// DefaultMaxHistorySize caps the number of stored executions.
	DefaultMaxHistorySize = 20
	// DefaultMaxFavoritesSize caps the number of stored favorites.
	DefaultMaxFavoritesSize = 10
	// DefaultRecentLimit is the number of executions RecentHistory returns
	// when asked for a non-positive limit.
	DefaultRecentLimit = 5
)

type (
	// Store is the persistence the service needs.
	Store interface {
		Load(ctx context.Context, key string, version int, dst any) (bool, error)
		Save(ctx context.Context, key string, version int, v any) error
	}

	// Clock supplies timestamps.
	Clock interface {
		Now() time.Time
	}

	// ScriptExecution is one finished run of a script.
	ScriptExecution struct {
		ID         string              `json:"id"`
		ScriptName string              `json:"scriptName"`
		ScriptType resolver.ScriptType `json:"scriptType"`
		Command    string              `json:"command"`
		Timestamp  time.Time           `json:"timestamp"`
		Success    bool                `json:"success"`
		Duration   time.Duration       `json:"duration,omitempty"`
		Workspace  string              `json:"workspace"`
	}

	// FavoriteScript is a script pinned to the top of the menu in one workspace.
	FavoriteScript struct {
		ScriptName string              `json:"scriptName"`
		ScriptType resolver.ScriptType `json:"scriptType"`
		AddedAt    time.Time           `json:"addedAt"`
		UsageCount int                 `json:"usageCount"`
		Workspace  string              `json:"workspace"`
	}

	// Service reads and updates the history record. Every call is a full
	// read-modify-write of the record.
	Service struct {
		store        Store
		clock        Clock
		maxHistory   int
		maxFavorites int
	}

	// Option configures a Service.
	Option func(*Service)

	record struct {
		Favorites []FavoriteScript  `json:"favorites"`
		History   []ScriptExecution `json:"history"`
	}

	realClock struct{}
)

func (realClock) Now() time.Time { return time.Now() }

// WithLimits overrides the history and favorites caps. Non-positive values
// keep the defaults.
func WithLimits(maxHistory, maxFavorites int) Option {
	return func(s *Service) {
		if maxHistory > 0 {
			s.maxHistory = maxHistory
		}
		if maxFavorites > 0 {
			s.maxFavorites = maxFavorites
		}
	}
}

// WithClock sets the timestamp source.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// NewService creates a history service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		clock:        realClock{},
		maxHistory:   DefaultMaxHistorySize,
		maxFavorites: DefaultMaxFavoritesSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordExecution stores exec as the most recent execution. ID and Timestamp
// are assigned here. An earlier entry for the same script in the same
// workspace is replaced, the list is truncated to the history cap, and a
// matching favorite's usage count is incremented.
func (s *Service) RecordExecution(ctx context.Context, exec ScriptExecution) (ScriptExecution, error) {
	if err := exec.ScriptType.Validate(); err != nil {
		return ScriptExecution{}, err
	}

	rec, err := s.load(ctx)
	if err != nil {
		return ScriptExecution{}, err
	}

	now := s.clock.Now()
	exec.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	exec.Timestamp = now

	rec.History = slices.DeleteFunc(rec.History, func(e ScriptExecution) bool {
		return e.ScriptName == exec.ScriptName && e.Workspace == exec.Workspace
	})
	rec.History = slices.Insert(rec.History, 0, exec)
	if len(rec.History) > s.maxHistory {
		rec.History = rec.History[:s.maxHistory]
	}

	if i := findFavorite(rec.Favorites, exec.ScriptName, exec.Workspace); i >= 0 {
		rec.Favorites[i].UsageCount++
	}

	if err := s.save(ctx, rec); err != nil {
		return ScriptExecution{}, err
	}
	return exec, nil
}

// ToggleFavorite adds or removes the script from the workspace's favorites and
// reports whether it is now a favorite. When the favorites list is full, the
// least used favorite is evicted first.
func (s *Service) ToggleFavorite(ctx context.Context, workspace, name string, typ resolver.ScriptType) (bool, error) {
	if err := typ.Validate(); err != nil {
		return false, err
	}

	rec, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	if i := findFavorite(rec.Favorites, name, workspace); i >= 0 {
		rec.Favorites = slices.Delete(rec.Favorites, i, i+1)
		return false, s.save(ctx, rec)
	}

	for len(rec.Favorites) >= s.maxFavorites {
		least := 0
		for i, f := range rec.Favorites {
			if f.UsageCount < rec.Favorites[least].UsageCount {
				least = i
			}
		}
		rec.Favorites = slices.Delete(rec.Favorites, least, least+1)
	}

	rec.Favorites = append(rec.Favorites, FavoriteScript{
		ScriptName: name,
		ScriptType: typ,
		AddedAt:    s.clock.Now(),
		Workspace:  workspace,
	})
	return true, s.save(ctx, rec)
}

// Favorites returns the workspace's favorites, most used first.
func (s *Service) Favorites(ctx context.Context, workspace string) ([]FavoriteScript, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var favs []FavoriteScript
	for _, f := range rec.Favorites {
		if f.Workspace == workspace {
			favs = append(favs, f)
		}
	}
	slices.SortStableFunc(favs, func(a, b FavoriteScript) int {
		return cmp.Compare(b.UsageCount, a.UsageCount)
	})
	return favs, nil
}

// RecentHistory returns up to limit of the workspace's executions, most
// recent first. A non-positive limit means DefaultRecentLimit.
func (s *Service) RecentHistory(ctx context.Context, workspace string, limit int) ([]ScriptExecution, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rec, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var recent []ScriptExecution
	for _, e := range rec.History {
		if e.Workspace != workspace {
			continue
		}
		recent = append(recent, e)
		if len(recent) == limit {
			break
		}
	}
	return recent, nil
}

// IsFavorite reports whether the script is a favorite in the workspace.
func (s *Service) IsFavorite(ctx context.Context, workspace, name string) (bool, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return findFavorite(rec.Favorites, name, workspace) >= 0, nil
}

// ClearHistory removes every recorded execution in all workspaces.
func (s *Service) ClearHistory(ctx context.Context) error {
	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	rec.History = nil
	return s.save(ctx, rec)
}

// ClearFavorites removes every favorite in all workspaces.
func (s *Service) ClearFavorites(ctx context.Context) error {
	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	rec.Favorites = nil
	return s.save(ctx, rec)
}

func (s *Service) load(ctx context.Context) (record, error) {
	var rec record
	if _, err := s.store.Load(ctx, Key, Version, &rec); err != nil {
		return record{}, fmt.Errorf("load history: %w", err)
	}
	return rec, nil
}

func (s *Service) save(ctx context.Context, rec record) error {
	if rec.Favorites == nil {
		rec.Favorites = []FavoriteScript{}
	}
	if rec.History == nil {
		rec.History = []ScriptExecution{}
	}
	if err := s.store.Save(ctx, Key, Version, rec); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func findFavorite(favs []FavoriteScript, name, workspace string) int {
	return slices.IndexFunc(favs, func(f FavoriteScript) bool {
		return f.ScriptName == name && f.Workspace == workspace
	})
}
