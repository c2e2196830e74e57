// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/gigachad-dev/gigachad/internal/app/execute"
	"github.com/gigachad-dev/gigachad/internal/history"
	"github.com/gigachad-dev/gigachad/internal/tui"

	"github.com/spf13/cobra"
)

// newHistoryCommand creates the `gigachad history` command tree.
func newHistoryCommand(app *App) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs in this workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{}, func(s *session) error {
				execs, err := s.history.RecentHistory(ctx, s.ws.Root, limit)
				if err != nil {
					return err
				}
				if len(execs) == 0 {
					fmt.Fprintln(app.stdout, SubtitleStyle.Render("No runs recorded yet."))
					return nil
				}
				for _, e := range execs {
					fmt.Fprintln(app.stdout, formatExecution(e))
				}
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultRecentLimit, "number of runs to show")

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every recorded run, in all workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{}, func(s *session) error {
				if err := confirmClear(app, s, "Forget every recorded run?", yes); err != nil {
					return cancelled(app.stdout, err)
				}
				if err := s.history.ClearHistory(ctx); err != nil {
					return err
				}
				fmt.Fprintln(app.stdout, SuccessStyle.Render("✓")+" History cleared")
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	historyCmd.AddCommand(clearCmd)

	return historyCmd
}

func formatExecution(e history.ScriptExecution) string {
	mark := SuccessStyle.Render("✓")
	if !e.Success {
		mark = ErrorStyle.Render("✗")
	}
	return fmt.Sprintf("%s %s  %s  %s",
		mark,
		SubtitleStyle.Render(e.Timestamp.Local().Format(time.DateTime)),
		CmdStyle.Render(e.ScriptName),
		SubtitleStyle.Render(e.Duration.Round(time.Millisecond).String()))
}

// newFavoritesCommand creates the `gigachad favorites` command tree.
func newFavoritesCommand(app *App) *cobra.Command {
	favCmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Show this workspace's favorite scripts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{}, func(s *session) error {
				favs, err := s.history.Favorites(ctx, s.ws.Root)
				if err != nil {
					return err
				}
				if len(favs) == 0 {
					fmt.Fprintln(app.stdout, SubtitleStyle.Render("No favorites yet. Add one with 'gigachad favorites toggle <script>'."))
					return nil
				}
				for _, f := range favs {
					fmt.Fprintf(app.stdout, "%s %s  %s\n",
						WarningStyle.Render("★"),
						CmdStyle.Render(f.ScriptName),
						SubtitleStyle.Render(fmt.Sprintf("%s, used %d times", f.ScriptType, f.UsageCount)))
				}
				return nil
			})
		},
	}

	favCmd.AddCommand(&cobra.Command{
		Use:   "toggle <script>",
		Short: "Pin or unpin a script at the top of the menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{}, func(s *session) error {
				on, err := s.exec.ToggleFavorite(ctx, s.ws, args[0])
				if err != nil {
					return err
				}
				if on {
					fmt.Fprintf(app.stdout, "%s Added %s to favorites\n", WarningStyle.Render("★"), CmdStyle.Render(args[0]))
				} else {
					fmt.Fprintf(app.stdout, "%s Removed %s from favorites\n", SuccessStyle.Render("✓"), CmdStyle.Render(args[0]))
				}
				return nil
			})
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite, in all workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, sessionOptions{}, func(s *session) error {
				if err := confirmClear(app, s, "Remove every favorite?", yes); err != nil {
					return cancelled(app.stdout, err)
				}
				if err := s.history.ClearFavorites(ctx); err != nil {
					return err
				}
				fmt.Fprintln(app.stdout, SuccessStyle.Render("✓")+" Favorites cleared")
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	favCmd.AddCommand(clearCmd)

	return favCmd
}

// confirmClear asks before wiping state when stdin is a terminal.
func confirmClear(app *App, s *session, title string, yes bool) error {
	if yes || !isTerminal(app.stdin) {
		return nil
	}
	ok, err := tui.Confirm(tui.ConfirmOptions{Title: title, Config: app.tuiConfig(s.cfg)})
	if err != nil {
		return promptError(err)
	}
	if !ok {
		return execute.ErrCancelled
	}
	return nil
}
