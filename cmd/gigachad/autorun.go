// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/gigachad-dev/gigachad/internal/autorun"

	"github.com/spf13/cobra"
)

// newAutoRunCommand creates the `gigachad autorun` command tree.
func newAutoRunCommand(app *App) *cobra.Command {
	autoCmd := &cobra.Command{
		Use:   "autorun",
		Short: "Manage the script run when this workspace opens",
		Long: `Manage the script run when this workspace opens.

Call 'gigachad autorun run' from a shell hook (e.g. on cd) to run the
configured script. A configured container that is not running is reported
and nothing is started.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var ctr string
	setCmd := &cobra.Command{
		Use:   "set [script]",
		Short: "Choose the auto-run script",
		Long: `Choose the auto-run script.

Without arguments the script and container menus are shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			interactive := len(args) == 0
			return withSession(ctx, app, sessionOptions{engine: interactive}, func(s *session) error {
				var (
					cfg autorun.Config
					err error
				)
				if interactive {
					cfg, err = s.exec.ConfigureAutoRun(ctx, s.ws)
				} else {
					cfg, err = s.exec.SetAutoRun(ctx, s.ws, args[0], ctr)
				}
				if err != nil {
					return cancelled(app.stderr, err)
				}
				fmt.Fprintf(app.stdout, "%s Auto-run set to %s\n", SuccessStyle.Render("✓"), formatAutoRun(cfg))
				return nil
			})
		},
	}
	setCmd.Flags().StringVarP(&ctr, "container", "c", "", "run the script inside this container")
	autoCmd.AddCommand(setCmd)

	autoCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the auto-run script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{}, func(s *session) error {
				cfg, ok, err := s.exec.ShowAutoRun(ctx, s.ws)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(app.stdout, SubtitleStyle.Render("No auto-run configured."))
					return nil
				}
				fmt.Fprintln(app.stdout, formatAutoRun(cfg))
				return nil
			})
		},
	})

	autoCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the auto-run script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{}, func(s *session) error {
				if err := s.exec.ClearAutoRun(ctx, s.ws); err != nil {
					return err
				}
				fmt.Fprintln(app.stdout, SuccessStyle.Render("✓")+" Auto-run cleared")
				return nil
			})
		},
	})

	autoCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the auto-run script, if one is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{engine: true}, func(s *session) error {
				ran, res, err := s.exec.RunAutoRunIfConfigured(ctx, s.ws)
				if err != nil {
					return err
				}
				if !ran {
					app.logger.Debug("no auto-run configured", "workspace", s.ws.Root)
					return nil
				}
				return exitResult(res)
			})
		},
	})

	return autoCmd
}

func formatAutoRun(cfg autorun.Config) string {
	out := CmdStyle.Render(cfg.ScriptName) + SubtitleStyle.Render(" ("+cfg.ScriptType.String()+")")
	if ctr := cfg.Container(); ctr != "" {
		out += " in container " + CmdStyle.Render(ctr)
	}
	return out
}
