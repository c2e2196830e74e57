// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gigachad-dev/gigachad/internal/autorun"
	"github.com/gigachad-dev/gigachad/internal/issue"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/terminal"
	"github.com/gigachad-dev/gigachad/internal/workspace"
)

const autoRunPrompt = "Select a script to run when this workspace opens"

// ErrAutoRunUnavailable is returned when no auto-run store is configured.
var ErrAutoRunUnavailable = errors.New("auto-run is not available")

// ConfigureAutoRun asks for a script and optional container and stores them
// as the workspace's auto-run entry. Container-only sessions cannot be
// auto-run, so that entry is left out of the menu.
func (s *Service) ConfigureAutoRun(ctx context.Context, ws workspace.Workspace) (autorun.Config, error) {
	if s.deps.AutoRun == nil {
		return autorun.Config{}, ErrAutoRunUnavailable
	}
	g, err := s.Gather(ctx, ws)
	if err != nil {
		return autorun.Config{}, err
	}

	menu := slices.DeleteFunc(slices.Clone(g.ScriptMenu), func(o ScriptOption) bool {
		return o.Value == s.opts.Sentinels.ContainerOnly
	})
	script, err := s.deps.Prompter.ChooseScript(autoRunPrompt, menu)
	if err != nil {
		return autorun.Config{}, err
	}

	var ctr string
	if g.DockerReachable {
		if ctr, err = s.deps.Prompter.ChooseContainer(containerPrompt, g.ContainerMenu); err != nil {
			return autorun.Config{}, err
		}
	}
	return s.SetAutoRun(ctx, ws, StripLabel(script), ctr)
}

// SetAutoRun stores name (and ctr, unless it is empty or the no-container
// entry) as the workspace's auto-run entry.
func (s *Service) SetAutoRun(ctx context.Context, ws workspace.Workspace, name, ctr string) (autorun.Config, error) {
	if s.deps.AutoRun == nil {
		return autorun.Config{}, ErrAutoRunUnavailable
	}
	listing, err := s.loadScripts(ws)
	if err != nil {
		return autorun.Config{}, err
	}
	name = StripLabel(name)
	if !slices.Contains(listing.All(), name) {
		return autorun.Config{}, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}

	cfg := autorun.Config{ScriptName: name, ScriptType: resolver.ScriptTypePackage}
	if listing.Catalog.IsCustom(name) {
		cfg.ScriptType = resolver.ScriptTypeCustom
	}
	if ctr != "" && ctr != s.opts.Sentinels.NoContainer {
		cfg.ContainerName = &ctr
	}
	if err := s.deps.AutoRun.Set(ctx, ws.Root, cfg); err != nil {
		return autorun.Config{}, err
	}
	return cfg, nil
}

// ShowAutoRun returns the workspace's auto-run entry, if any.
func (s *Service) ShowAutoRun(ctx context.Context, ws workspace.Workspace) (autorun.Config, bool, error) {
	if s.deps.AutoRun == nil {
		return autorun.Config{}, false, ErrAutoRunUnavailable
	}
	return s.deps.AutoRun.Get(ctx, ws.Root)
}

// ClearAutoRun removes the workspace's auto-run entry.
func (s *Service) ClearAutoRun(ctx context.Context, ws workspace.Workspace) error {
	if s.deps.AutoRun == nil {
		return ErrAutoRunUnavailable
	}
	return s.deps.AutoRun.Clear(ctx, ws.Root)
}

// RunAutoRunIfConfigured runs the workspace's auto-run entry. It reports
// false when nothing is configured. A configured container that is not
// running logs a warning and returns an error without running anything.
func (s *Service) RunAutoRunIfConfigured(ctx context.Context, ws workspace.Workspace) (bool, terminal.Result, error) {
	cfg, ok, err := s.ShowAutoRun(ctx, ws)
	if err != nil || !ok {
		return false, terminal.Result{}, err
	}

	g, err := s.Gather(ctx, ws)
	if err != nil {
		return true, terminal.Result{}, err
	}

	ctr := cfg.Container()
	if ctr != "" && !slices.Contains(g.Containers, ctr) {
		s.deps.Logger.Warn("auto-run container is not running", "container", ctr, "script", cfg.ScriptName)
		return true, terminal.Result{}, issue.NewErrorContext().
			WithOperation("auto-run").
			WithResource(ctr).
			WithSuggestion("Start the container and run 'gigachad autorun run'").
			WithIssue(issue.AutoRunContainerMissingId).
			Wrap(ErrContainerNotRunning).
			BuildError()
	}
	if ctr == "" {
		ctr = s.opts.Sentinels.NoContainer
	}

	plan, err := s.Resolve(ctx, g, Selection{Script: cfg.ScriptName, Container: ctr})
	if err != nil {
		return true, terminal.Result{}, err
	}
	result, err := s.Execute(ctx, ws, AutoRunSessionTitle, plan)
	return true, result, err
}
