// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gigachad-dev/gigachad/internal/history"
	"github.com/gigachad-dev/gigachad/internal/issue"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/terminal"
	"github.com/gigachad-dev/gigachad/internal/workspace"
)

const (
	scriptPrompt    = "Select a script to run"
	containerPrompt = "Select a Docker container"
)

type (
	// Selection is the pair of raw menu answers.
	Selection struct {
		Script    string
		Container string
	}

	// Plan is a resolved selection ready to hand to a sink.
	Plan struct {
		Selection Selection
		Resolved  resolver.ResolvedCommand
		Shell     resolver.ShellKind
	}

	// NamedRequest describes a non-interactive run.
	NamedRequest struct {
		// Script is the script name; labels such as "[json] " are stripped.
		Script string
		// Container runs the script inside this container when set.
		Container string
		// ContainerOnly opens a shell in Container instead of running a script.
		ContainerOnly bool
	}

	// Outcome reports what a flow did.
	Outcome struct {
		Plan   Plan
		Result terminal.Result
	}
)

// Select asks for a script and, when Docker is reachable, a container.
// The container question is skipped otherwise and the answer left empty.
func (s *Service) Select(g *Gathered) (Selection, error) {
	if s.deps.Prompter == nil {
		return Selection{}, errors.New("no prompter configured")
	}

	script, err := s.deps.Prompter.ChooseScript(scriptPrompt, g.ScriptMenu)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{Script: script}
	if !g.DockerReachable {
		return sel, nil
	}

	sel.Container, err = s.deps.Prompter.ChooseContainer(containerPrompt, g.ContainerMenu)
	if err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// Resolve turns raw menu answers into a command. The shell is negotiated
// only when a concrete container was chosen and Docker is reachable.
func (s *Service) Resolve(ctx context.Context, g *Gathered, sel Selection) (Plan, error) {
	script, ctr := resolver.ParseSelection(StripLabel(sel.Script), sel.Container, s.opts.Sentinels)

	shell := resolver.ShellBash
	if ctr.IsConcrete() && g.DockerReachable {
		shell = resolver.NegotiateShell(ctx, s.prober(), ctr.Name(), s.opts.Shell)
		s.deps.Logger.Debug("negotiated shell", "container", ctr.Name(), "shell", shell)
	}

	resolved, ok := resolver.Resolve(resolver.Input{
		Script:          script,
		Container:       ctr,
		DockerReachable: g.DockerReachable,
		Shell:           shell,
		PackageManager:  g.Listing.PackageManager.String(),
	}, g.Listing.Catalog)
	if !ok {
		return Plan{}, issue.NewErrorContext().
			WithOperation("resolve selection").
			WithResource(fmt.Sprintf("script %q, container %q", sel.Script, sel.Container)).
			WithSuggestion("Pick a container when opening a container shell").
			WithIssue(issue.UnresolvableSelectionId).
			Wrap(ErrUnresolvable).
			BuildError()
	}
	return Plan{Selection: sel, Resolved: resolved, Shell: shell}, nil
}

// Execute hands the plan to the sink and records the run in history.
// A command that starts and exits non-zero is not an error; check the
// result's exit code.
func (s *Service) Execute(ctx context.Context, ws workspace.Workspace, title string, plan Plan) (terminal.Result, error) {
	name := StripLabel(plan.Selection.Script)
	if plan.Resolved.ContainerOnly {
		name = plan.Selection.Container
	}

	fmt.Fprintln(s.deps.Out, s.deps.Header(title, name))
	s.deps.Logger.Debug("running", "sink", s.deps.Sink.Kind(), "command", plan.Resolved.Command)

	result := s.deps.Sink.Run(ctx, terminal.Session{
		Name:    name,
		Command: plan.Resolved.Command,
		Dir:     ws.Root,
	})

	if !plan.Resolved.ContainerOnly {
		s.record(ctx, ws, name, plan, result)
	}

	if result.Error != nil {
		return result, issue.NewErrorContext().
			WithOperation("run script").
			WithResource(name).
			WithSuggestion("Run with --print to see the command without executing it").
			WithIssue(issue.ScriptExecutionFailedId).
			Wrap(result.Error).
			BuildError()
	}
	return result, nil
}

// record stores a history entry. Failures are logged and never fail the run.
func (s *Service) record(ctx context.Context, ws workspace.Workspace, name string, plan Plan, result terminal.Result) {
	if s.deps.History == nil {
		return
	}
	_, err := s.deps.History.RecordExecution(ctx, history.ScriptExecution{
		ScriptName: name,
		ScriptType: plan.Resolved.ScriptType,
		Command:    plan.Resolved.Command,
		Success:    result.Success(),
		Duration:   result.Duration,
		Workspace:  ws.Root,
	})
	if err != nil {
		s.deps.Logger.Warn("could not record history", "script", name, "err", err)
	}
}

// Run is the interactive flow: gather, ask, resolve, execute.
func (s *Service) Run(ctx context.Context, ws workspace.Workspace) (Outcome, error) {
	g, err := s.Gather(ctx, ws)
	if err != nil {
		return Outcome{}, err
	}
	sel, err := s.Select(g)
	if err != nil {
		return Outcome{}, err
	}
	plan, err := s.Resolve(ctx, g, sel)
	if err != nil {
		return Outcome{}, err
	}
	result, err := s.Execute(ctx, ws, SessionTitle, plan)
	return Outcome{Plan: plan, Result: result}, err
}

// RunNamed runs a script, or opens a container shell, without asking.
func (s *Service) RunNamed(ctx context.Context, ws workspace.Workspace, req NamedRequest) (Outcome, error) {
	g, err := s.Gather(ctx, ws)
	if err != nil {
		return Outcome{}, err
	}

	sel, err := s.namedSelection(g, req)
	if err != nil {
		return Outcome{}, err
	}
	plan, err := s.Resolve(ctx, g, sel)
	if err != nil {
		return Outcome{}, err
	}
	result, err := s.Execute(ctx, ws, SessionTitle, plan)
	return Outcome{Plan: plan, Result: result}, err
}

func (s *Service) namedSelection(g *Gathered, req NamedRequest) (Selection, error) {
	sel := Selection{Container: s.opts.Sentinels.NoContainer}

	if req.Container != "" {
		if !slices.Contains(g.Containers, req.Container) {
			return Selection{}, issue.NewErrorContext().
				WithOperation("find container").
				WithResource(req.Container).
				WithSuggestion("List running containers with 'gigachad containers'").
				WithIssue(issue.ContainerNotRunningId).
				Wrap(ErrContainerNotRunning).
				BuildError()
		}
		sel.Container = req.Container
	}

	if req.ContainerOnly {
		sel.Script = s.opts.Sentinels.ContainerOnly
		if req.Container == "" {
			sel.Container = ""
		}
		return sel, nil
	}

	name := StripLabel(req.Script)
	if !slices.Contains(g.Listing.All(), name) {
		return Selection{}, issue.NewErrorContext().
			WithOperation("find script").
			WithResource(name).
			WithSuggestion("List available scripts with 'gigachad list'").
			WithIssue(issue.ScriptNotFoundId).
			Wrap(fmt.Errorf("%w: %s", ErrUnknownScript, name)).
			BuildError()
	}
	sel.Script = name
	return sel, nil
}

// ToggleFavorite pins or unpins a script in the workspace and reports
// whether it is now a favorite.
func (s *Service) ToggleFavorite(ctx context.Context, ws workspace.Workspace, name string) (bool, error) {
	if s.deps.History == nil {
		return false, errors.New("history is not available")
	}
	g, err := s.loadScripts(ws)
	if err != nil {
		return false, err
	}
	name = StripLabel(name)
	if !slices.Contains(g.All(), name) {
		return false, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}

	typ := resolver.ScriptTypePackage
	if g.Catalog.IsCustom(name) {
		typ = resolver.ScriptTypeCustom
	}
	return s.deps.History.ToggleFavorite(ctx, ws.Root, name, typ)
}
