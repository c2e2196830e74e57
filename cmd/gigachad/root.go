// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gigachad",
		Short: "Pick a script, pick a container, run it",
		Long: TitleStyle.Render("gigachad") + SubtitleStyle.Render(" - pick a script, pick a container, run it") + `

gigachad lists the scripts of the current workspace (package.json scripts and
custom scripts from the config or .gigachad.toml), asks which one to run and,
when Docker has running containers, where to run it.

` + SubtitleStyle.Render("Examples:") + `
  gigachad                       Pick and run interactively
  gigachad run build             Run the 'build' script on the host
  gigachad run test -c api       Run 'test' inside the 'api' container
  gigachad shell api             Open a shell in the 'api' container
  gigachad autorun run           Run the workspace's auto-run script`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.applyFlags()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), app)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/gigachad/config.cue)")
	flags.StringVarP(&app.flags.dir, "dir", "C", "", "workspace directory (default is the nearest parent with package.json or .gigachad.toml)")
	flags.BoolVar(&app.flags.copy, "copy", false, "copy the command to the clipboard instead of running it")
	flags.BoolVar(&app.flags.print, "print", false, "print the command instead of running it")
	flags.BoolVar(&app.flags.virtual, "virtual", false, "run the command in the built-in shell interpreter")

	rootCmd.AddCommand(
		newRunCommand(app),
		newShellCommand(app),
		newListCommand(app),
		newContainersCommand(app),
		newHistoryCommand(app),
		newFavoritesCommand(app),
		newAutoRunCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the resulting status. It is called by
// main.main().
func Execute() {
	os.Exit(run(context.Background(), Dependencies{}))
}

// run executes the command tree and maps the outcome to an exit status.
func run(ctx context.Context, deps Dependencies) int {
	app := NewApp(deps)
	rootCmd := newRootCommand(app)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.renderError),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return 1
}
