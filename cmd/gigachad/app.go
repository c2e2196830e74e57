// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gigachad-dev/gigachad/internal/app/execute"
	"github.com/gigachad-dev/gigachad/internal/autorun"
	"github.com/gigachad-dev/gigachad/internal/config"
	"github.com/gigachad-dev/gigachad/internal/container"
	"github.com/gigachad-dev/gigachad/internal/history"
	"github.com/gigachad-dev/gigachad/internal/issue"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/scripts"
	"github.com/gigachad-dev/gigachad/internal/state"
	"github.com/gigachad-dev/gigachad/internal/terminal"
	"github.com/gigachad-dev/gigachad/internal/tui"
	"github.com/gigachad-dev/gigachad/internal/workspace"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and asks it
	// for a session.
	App struct {
		Config    config.PathProvider
		NewEngine EngineFactory
		Prompter  execute.Prompter
		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
		logger    *log.Logger
		flags     globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.PathProvider
		NewEngine EngineFactory
		Prompter  execute.Prompter
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// EngineFactory returns the container engine to use, or an error when
	// none is available.
	EngineFactory func(preferred container.EngineType) (container.Engine, error)

	globalFlags struct {
		verbose    bool
		configPath string
		dir        string
		copy       bool
		print      bool
		virtual    bool
	}

	// session is everything one command needs. Close releases the state store.
	session struct {
		cfg     *config.Config
		cfgPath string
		ws      workspace.Workspace
		store   *state.Store
		history *history.Service
		autorun *autorun.Service
		engine  container.Engine
		exec    *execute.Service
	}

	// sessionOptions selects the optional parts of a session.
	sessionOptions struct {
		// engine looks up the container engine; without it Docker reads as
		// unreachable.
		engine bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	std := terminal.StdIO()
	if deps.Stdin == nil {
		deps.Stdin = std.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = std.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = std.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewEngine == nil {
		deps.NewEngine = func(preferred container.EngineType) (container.Engine, error) {
			return container.NewEngine(preferred)
		}
	}

	return &App{
		Config:    deps.Config,
		NewEngine: deps.NewEngine,
		Prompter:  deps.Prompter,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		logger: log.NewWithOptions(deps.Stderr, log.Options{
			Level:  log.WarnLevel,
			Prefix: "gigachad",
		}),
	}
}

// applyFlags runs once the flags are parsed.
func (a *App) applyFlags() {
	if a.flags.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
}

// loadConfig reads the configuration, honoring --config.
func (a *App) loadConfig(ctx context.Context) (*config.Config, string, error) {
	cfg, path, err := a.Config.LoadWithPath(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, "", err
	}
	if cfg.UI.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	applyColorScheme(cfg.UI.ColorScheme)
	return cfg, path, nil
}

// workspace resolves the workspace from --dir or the working directory.
func (a *App) workspace() (workspace.Workspace, error) {
	start := a.flags.dir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return workspace.Workspace{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		start = wd
	}
	return workspace.Detect(start)
}

// sinkKind maps --copy, --print and --virtual to a sink.
func (a *App) sinkKind() (terminal.SinkKind, error) {
	kind := terminal.SinkNative
	set := 0
	for _, f := range []struct {
		on   bool
		kind terminal.SinkKind
	}{
		{a.flags.copy, terminal.SinkClipboard},
		{a.flags.print, terminal.SinkPrint},
		{a.flags.virtual, terminal.SinkVirtual},
	} {
		if f.on {
			kind = f.kind
			set++
		}
	}
	if set > 1 {
		return "", errors.New("--copy, --print and --virtual are mutually exclusive")
	}
	return kind, nil
}

// openSession loads configuration, opens the state store and wires the
// flow service.
func (a *App) openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, cfgPath, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	ws, err := a.workspace()
	if err != nil {
		return nil, err
	}
	kind, err := a.sinkKind()
	if err != nil {
		return nil, err
	}
	sink, err := terminal.New(kind, terminal.IO{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr})
	if err != nil {
		return nil, err
	}

	store, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		cfgPath: cfgPath,
		ws:      ws,
		store:   store,
		history: history.NewService(store,
			history.WithLimits(cfg.History.MaxHistorySize, cfg.History.MaxFavoritesSize)),
		autorun: autorun.NewService(store),
	}

	if opts.engine {
		engine, err := a.NewEngine(container.EngineType(cfg.ContainerEngine))
		if err != nil {
			a.logger.Debug("no container engine", "err", err)
		} else {
			s.engine = engine
		}
	}

	prompter := a.Prompter
	if prompter == nil {
		prompter = newTUIPrompter(a.tuiConfig(cfg))
	}

	s.exec = execute.New(execute.Dependencies{
		Engine:   s.engine,
		History:  s.history,
		AutoRun:  s.autorun,
		Prompter: prompter,
		Sink:     sink,
		Logger:   a.logger,
		Out:      a.stderr,
		Discover: a.discoverFunc(cfg, s.engine),
		Header:   renderHeader,
	}, execute.Options{
		CustomScripts:  customScripts(cfg),
		PackageManager: scripts.PackageManager(cfg.PackageManager),
		Shell:          resolver.ShellKind(cfg.ContainerShell),
	})
	return s, nil
}

func (a *App) openStore(cfg *config.Config) (*state.Store, error) {
	path, err := config.StateFilePath(cfg)
	if err == nil {
		var store *state.Store
		if store, err = state.Open(path); err == nil {
			a.logger.Debug("opened state store", "path", path)
			return store, nil
		}
	}
	return nil, issue.NewErrorContext().
		WithOperation("open state store").
		WithResource(path).
		WithSuggestion("Set state_dir in the config to a writable directory").
		WithIssue(issue.StateStoreFailedId).
		Wrap(err).
		BuildError()
}

// discoverFunc shows a spinner around container discovery on interactive
// terminals.
func (a *App) discoverFunc(cfg *config.Config, engine container.Engine) execute.DiscoverFunc {
	return func(ctx context.Context) []string {
		tcfg := a.tuiConfig(cfg)
		if engine == nil || tcfg.Accessible || a.flags.print || a.flags.copy {
			return container.Discover(ctx, engine, a.logger)
		}

		var names []string
		err := tui.SpinWithContext(ctx, tui.SpinOptions{
			Title:  "Looking for running containers...",
			Type:   tui.SpinnerDots,
			Config: tcfg,
		}, func(ctx context.Context) error {
			names = container.Discover(ctx, engine, a.logger)
			return nil
		})
		if err != nil {
			a.logger.Debug("spinner failed", "err", err)
		}
		return names
	}
}

func (a *App) tuiConfig(cfg *config.Config) tui.Config {
	tcfg := tui.DefaultConfig(cfg.UI.Accessible)
	tcfg.Input = a.stdin
	return tcfg
}

// Close releases the state store.
func (s *session) Close() error {
	return s.store.Close()
}

func customScripts(cfg *config.Config) []scripts.CustomScript {
	out := make([]scripts.CustomScript, len(cfg.CustomScripts))
	for i, cs := range cfg.CustomScripts {
		out[i] = scripts.CustomScript{Name: cs.Name, Command: cs.Command, Group: cs.Group}
	}
	return out
}

// withSession opens a session, runs fn and closes the session.
func withSession(ctx context.Context, app *App, opts sessionOptions, fn func(*session) error) error {
	s, err := app.openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			app.logger.Warn("failed to close state store", "err", closeErr)
		}
	}()
	return fn(s)
}
