// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/gigachad-dev/gigachad/internal/app/execute"

	"github.com/spf13/cobra"
)

// runInteractive is the bare `gigachad` flow: pick a script, pick a
// container, run it.
func runInteractive(ctx context.Context, app *App) error {
	return withSession(ctx, app, sessionOptions{engine: true}, func(s *session) error {
		outcome, err := s.exec.Run(ctx, s.ws)
		if err != nil {
			return cancelled(app.stderr, err)
		}
		return exitResult(outcome.Result)
	})
}

// runNamed runs req without prompting.
func runNamed(ctx context.Context, app *App, req execute.NamedRequest) error {
	return withSession(ctx, app, sessionOptions{engine: true}, func(s *session) error {
		outcome, err := s.exec.RunNamed(ctx, s.ws, req)
		if err != nil {
			return err
		}
		return exitResult(outcome.Result)
	})
}

// newRunCommand creates the `gigachad run` command.
func newRunCommand(app *App) *cobra.Command {
	var (
		ctr           string
		containerOnly bool
	)

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a script without the script menu",
		Long: `Run a manifest or custom script by name.

Without a script name the interactive menus are shown, as with plain
'gigachad'. Labels copied from the menu ("[json] build") are accepted.

Examples:
  gigachad run build
  gigachad run test --container api
  gigachad run --container api --container-only
  gigachad run build --print`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if containerOnly {
				if len(args) > 0 {
					return errors.New("--container-only does not take a script")
				}
				return runNamed(cmd.Context(), app, execute.NamedRequest{Container: ctr, ContainerOnly: true})
			}
			if len(args) == 0 {
				if ctr != "" {
					return errors.New("--container needs a script name or --container-only")
				}
				return runInteractive(cmd.Context(), app)
			}
			return runNamed(cmd.Context(), app, execute.NamedRequest{Script: args[0], Container: ctr})
		},
	}

	cmd.Flags().StringVarP(&ctr, "container", "c", "", "run inside this running container")
	cmd.Flags().BoolVar(&containerOnly, "container-only", false, "open a shell in --container instead of running a script")

	return cmd
}

// newShellCommand creates the `gigachad shell` command.
func newShellCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell <container>",
		Short: "Open a shell in a running container",
		Long: `Open an interactive shell in a running container.

bash is used when the container has it, sh otherwise. Set container_shell in
the config to skip the probe. Shell sessions are not recorded in history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNamed(cmd.Context(), app, execute.NamedRequest{Container: args[0], ContainerOnly: true})
		},
	}
}
