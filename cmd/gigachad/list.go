// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/gigachad-dev/gigachad/internal/config"
	"github.com/gigachad-dev/gigachad/internal/container"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/scripts"

	"github.com/spf13/cobra"
)

// newListCommand creates the `gigachad list` command.
func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workspace's scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listScripts(cmd.Context(), app)
		},
	}
}

func listScripts(ctx context.Context, app *App) error {
	return withSession(ctx, app, sessionOptions{}, func(s *session) error {
		listing, err := scripts.Load(s.ws, scripts.LoadOptions{
			Custom:         customScripts(s.cfg),
			PackageManager: scripts.PackageManager(s.cfg.PackageManager),
		})
		if err != nil {
			return err
		}

		isFav := func(name string) bool {
			fav, err := s.history.IsFavorite(ctx, s.ws.Root, name)
			if err != nil {
				app.logger.Warn("could not read favorites", "err", err)
			}
			return fav
		}

		out := app.stdout
		fmt.Fprintln(out, TitleStyle.Render("Scripts in "+s.ws.Name))
		fmt.Fprintf(out, "%s %s\n\n", SubtitleStyle.Render("package manager:"), listing.PackageManager)
		if listing.Empty() {
			fmt.Fprintln(out, SubtitleStyle.Render("  (none)"))
			return nil
		}

		for _, name := range listing.All() {
			typ := resolver.ScriptTypePackage
			if listing.Catalog.IsCustom(name) {
				typ = resolver.ScriptTypeCustom
			}
			star := " "
			if isFav(name) {
				star = WarningStyle.Render("★")
			}
			line := fmt.Sprintf("%s %-8s %s", star, typ, CmdStyle.Render(name))
			if typ == resolver.ScriptTypeCustom {
				line += "  " + SubtitleStyle.Render(listing.Catalog.Command(name))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	})
}

// newContainersCommand creates the `gigachad containers` command.
func newContainersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "containers",
		Short: "List running containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, _, err := app.loadConfig(ctx)
			if err != nil {
				return err
			}
			engine, err := app.NewEngine(container.EngineType(cfg.ContainerEngine))
			if err != nil {
				return err
			}
			return listContainers(ctx, app, cfg, engine)
		},
	}
}

func listContainers(ctx context.Context, app *App, cfg *config.Config, engine container.Engine) error {
	names := app.discoverFunc(cfg, engine)(ctx)
	if len(names) == 0 {
		fmt.Fprintln(app.stderr, SubtitleStyle.Render("No running containers ("+engine.Name()+")."))
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(app.stdout, n)
	}
	return nil
}
