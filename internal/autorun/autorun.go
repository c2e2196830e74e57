// SPDX-License-Identifier: MPL-2.0

// Package autorun stores the script (and optional container) to run when a
// workspace is opened.
package autorun

import (
	"context"
	"errors"
	"fmt"

	"github.com/gigachad-dev/gigachad/internal/resolver"
)

const (
	// Key is the state key holding the auto-run record.
	Key = "gigachad.autoRun"
	// Version is the record format version.
	Version = 1
)

// ErrEmptyScriptName is returned when Set is given a config without a script.
var ErrEmptyScriptName = errors.New("auto-run script name must not be empty")

type (
	// Store is the persistence the service needs.
	Store interface {
		Load(ctx context.Context, key string, version int, dst any) (bool, error)
		Save(ctx context.Context, key string, version int, v any) error
	}

	// Config is the auto-run entry for one workspace. A nil ContainerName
	// runs the script on the host.
	Config struct {
		ScriptName    string              `json:"scriptName"`
		ScriptType    resolver.ScriptType `json:"scriptType"`
		ContainerName *string             `json:"containerName"`
	}

	// Service reads and updates auto-run entries keyed by workspace root.
	Service struct {
		store Store
	}

	record struct {
		ByWorkspace map[string]Config `json:"byWorkspace"`
	}
)

// NewService creates an auto-run service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Container returns the configured container name, or "" for none.
func (c Config) Container() string {
	if c.ContainerName == nil {
		return ""
	}
	return *c.ContainerName
}

// Get returns the workspace's entry. The bool is false when none is set.
func (s *Service) Get(ctx context.Context, workspace string) (Config, bool, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return Config{}, false, err
	}
	cfg, ok := rec.ByWorkspace[workspace]
	return cfg, ok, nil
}

// Set replaces the workspace's entry.
func (s *Service) Set(ctx context.Context, workspace string, cfg Config) error {
	if cfg.ScriptName == "" {
		return ErrEmptyScriptName
	}
	if err := cfg.ScriptType.Validate(); err != nil {
		return err
	}
	if cfg.ContainerName != nil && *cfg.ContainerName == "" {
		cfg.ContainerName = nil
	}

	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	rec.ByWorkspace[workspace] = cfg
	return s.save(ctx, rec)
}

// Clear removes the workspace's entry. Clearing an unset workspace is not an
// error.
func (s *Service) Clear(ctx context.Context, workspace string) error {
	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	delete(rec.ByWorkspace, workspace)
	return s.save(ctx, rec)
}

func (s *Service) load(ctx context.Context) (record, error) {
	var rec record
	if _, err := s.store.Load(ctx, Key, Version, &rec); err != nil {
		return record{}, fmt.Errorf("load auto-run: %w", err)
	}
	if rec.ByWorkspace == nil {
		rec.ByWorkspace = make(map[string]Config)
	}
	return rec, nil
}

func (s *Service) save(ctx context.Context, rec record) error {
	if err := s.store.Save(ctx, Key, Version, rec); err != nil {
		return fmt.Errorf("save auto-run: %w", err)
	}
	return nil
}
