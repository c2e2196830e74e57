// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gigachad-dev/gigachad/internal/config"
	"github.com/gigachad-dev/gigachad/internal/scripts"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `gigachad config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gigachad configuration",
		Long: `Manage gigachad configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/gigachad/config.cue (default ~/.config)
  - macOS: ~/Library/Application Support/gigachad/config.cue
  - Windows: %APPDATA%\gigachad\config.cue

Every key can be overridden with a GIGACHAD_ environment variable, e.g.
GIGACHAD_CONTAINER_ENGINE=podman or GIGACHAD_UI_ACCESSIBLE=true.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.CreateDefaultConfig(force)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration and state file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showPaths(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Check a configuration file and the workspace's custom scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cmd.Context(), app, args)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, path, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	out := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	if path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	orAuto := func(s string) string {
		if s == "" {
			return SubtitleStyle.Render("(auto)")
		}
		return valueStyle.Render(s)
	}

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("container_engine"), valueStyle.Render(string(cfg.ContainerEngine)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("container_shell"), orAuto(string(cfg.ContainerShell)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("package_manager"), orAuto(string(cfg.PackageManager)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("state_dir"), orAuto(string(cfg.StateDir)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("custom_scripts"))
	if len(cfg.CustomScripts) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, s := range cfg.CustomScripts {
		line := fmt.Sprintf("  - %s: %s", valueStyle.Render(s.Name), s.Command)
		if s.Group != "" {
			line += SubtitleStyle.Render(" (group: " + s.Group + ")")
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("history"))
	fmt.Fprintf(out, "  max_history_size: %s\n", valueStyle.Render(fmt.Sprint(cfg.History.MaxHistorySize)))
	fmt.Fprintf(out, "  max_favorites_size: %s\n", valueStyle.Render(fmt.Sprint(cfg.History.MaxFavoritesSize)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(out, "  accessible: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Accessible)))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("state"))
	showState(ctx, app, cfg)

	return nil
}

// showState lists the records kept in the state store.
func showState(ctx context.Context, app *App, cfg *config.Config) {
	out := app.stdout
	store, err := app.openStore(cfg)
	if err != nil {
		app.logger.Warn("could not open state store", "err", err)
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(unavailable)"))
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			app.logger.Debug("closing state store", "err", err)
		}
	}()

	records, err := store.Records(ctx)
	if err != nil {
		app.logger.Warn("could not list state records", "err", err)
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(unavailable)"))
		return
	}
	if len(records) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(empty)"))
		return
	}
	for _, r := range records {
		fmt.Fprintf(out, "  %s: %s\n", r.Key, SubtitleStyle.Render(fmt.Sprintf("v%d, updated %s",
			r.Version, r.UpdatedAt.Local().Format(time.DateTime))))
	}
}

func showPaths(ctx context.Context, app *App) error {
	cfgPath := app.flags.configPath
	if cfgPath == "" {
		var err error
		if cfgPath, err = config.ConfigFilePath(); err != nil {
			return err
		}
	}
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)

	cfg, _, err := app.loadConfig(ctx)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	statePath, err := config.StateFilePath(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "State file: %s\n", statePath)
	return nil
}

// validateConfig checks the config file, the custom script commands and the
// workspace's project file, reporting every problem found.
func validateConfig(ctx context.Context, app *App, args []string) error {
	path := app.flags.configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		var err error
		if path, err = config.ConfigFilePath(); err != nil {
			return err
		}
	}

	var problems []error
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(app.stdout, "%s %s %s\n", SubtitleStyle.Render("-"), path, SubtitleStyle.Render("(not found, defaults apply)"))
	} else if err := config.Validate(path); err != nil {
		problems = append(problems, fmt.Errorf("%s: %w", path, err))
	} else {
		fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("✓"), path)
	}

	var custom []scripts.CustomScript
	if cfg, _, err := app.loadConfig(ctx); err == nil {
		custom = customScripts(cfg)
	}
	if ws, err := app.workspace(); err == nil {
		project, err := scripts.ReadProject(ws.Root)
		if err != nil {
			problems = append(problems, err)
		}
		custom = append(custom, project.CustomScripts...)
	}
	if err := scripts.ValidateScripts(custom); err != nil {
		problems = append(problems, err)
	} else {
		fmt.Fprintf(app.stdout, "%s %d custom scripts\n", SuccessStyle.Render("✓"), len(custom))
	}

	return errors.Join(problems...)
}
