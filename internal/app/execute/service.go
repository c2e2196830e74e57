// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gigachad-dev/gigachad/internal/autorun"
	"github.com/gigachad-dev/gigachad/internal/container"
	"github.com/gigachad-dev/gigachad/internal/history"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/scripts"
	"github.com/gigachad-dev/gigachad/internal/terminal"

	"github.com/charmbracelet/log"
)

const (
	// ContainerOnlyOption is the script menu entry for a bare container shell.
	ContainerOnlyOption = "I just want to use a Docker container"
	// NoContainerOption is the container menu entry for running on the host.
	NoContainerOption = "I don't want to use a Docker container"

	// SessionTitle prefixes the header printed before interactive runs.
	SessionTitle = "gigachad"
	// AutoRunSessionTitle prefixes the header printed before auto-runs.
	AutoRunSessionTitle = "gigachad auto-run"
)

var (
	// ErrCancelled is returned when the user dismisses a menu. Flows stop
	// without side effects.
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoScripts is returned when the workspace has nothing to pick.
	ErrNoScripts = errors.New("no scripts found")
	// ErrUnresolvable is returned when a selection maps to no command.
	ErrUnresolvable = errors.New("no script or container selected")
	// ErrUnknownScript is returned when a named script is not in the workspace.
	ErrUnknownScript = errors.New("unknown script")
	// ErrContainerNotRunning is returned when a named container is not running.
	ErrContainerNotRunning = errors.New("container is not running")

	// DefaultSentinels are the menu labels that stand for the special choices.
	DefaultSentinels = resolver.Sentinels{
		ContainerOnly: ContainerOnlyOption,
		NoContainer:   NoContainerOption,
	}
)

type (
	// Prompter asks the user to pick from menus. Implementations return
	// ErrCancelled when the user backs out.
	Prompter interface {
		ChooseScript(title string, options []ScriptOption) (string, error)
		ChooseContainer(title string, options []string) (string, error)
	}

	// DiscoverFunc lists running containers; an empty result means the engine
	// is unreachable.
	DiscoverFunc func(ctx context.Context) []string

	// Dependencies are the collaborators a Service uses. Only Sink is
	// required; a nil History or AutoRun disables persistence, and a nil
	// Engine behaves as "Docker unreachable".
	Dependencies struct {
		Engine   container.Engine
		History  *history.Service
		AutoRun  *autorun.Service
		Prompter Prompter
		Sink     terminal.Sink
		Logger   *log.Logger
		// Out receives session headers and notices.
		Out io.Writer
		// Discover overrides container.Discover, e.g. to show a spinner.
		Discover DiscoverFunc
		// Header formats the session header; nil uses the plain format.
		Header func(title, name string) string
	}

	// Options are the configuration inputs of every flow.
	Options struct {
		// CustomScripts come from the global configuration.
		CustomScripts []scripts.CustomScript
		// PackageManager overrides detection when set.
		PackageManager scripts.PackageManager
		// Shell pins the container shell; empty means probe.
		Shell resolver.ShellKind
		// Sentinels overrides DefaultSentinels when non-zero.
		Sentinels resolver.Sentinels
	}

	// Service runs the flows for one invocation.
	Service struct {
		deps Dependencies
		opts Options
	}
)

// New creates a Service.
func New(deps Dependencies, opts Options) *Service {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Header == nil {
		deps.Header = Header
	}
	if opts.Sentinels == (resolver.Sentinels{}) {
		opts.Sentinels = DefaultSentinels
	}
	return &Service{deps: deps, opts: opts}
}

// Header returns the plain session header.
func Header(title, name string) string {
	return fmt.Sprintf("🚀 [%s]: %s", title, name)
}

func (s *Service) discover(ctx context.Context) []string {
	if s.deps.Discover != nil {
		return s.deps.Discover(ctx)
	}
	return container.Discover(ctx, s.deps.Engine, s.deps.Logger)
}

// prober returns the engine as a ShellProber, or nil without an engine.
func (s *Service) prober() resolver.ShellProber {
	if s.deps.Engine == nil {
		return nil
	}
	return s.deps.Engine
}
