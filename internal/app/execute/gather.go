// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"regexp"
	"slices"

	"github.com/gigachad-dev/gigachad/internal/history"
	"github.com/gigachad-dev/gigachad/internal/issue"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/scripts"
	"github.com/gigachad-dev/gigachad/internal/workspace"
)

const (
	manifestLabel = "[json]"
	customLabel   = "[gear]"
	favoriteMark  = "★"
)

var labelPrefix = regexp.MustCompile(`^(★\s*)?\[[a-zA-Z0-9_-]+\]\s*`)

type (
	// ScriptOption is one script menu entry. Value is what resolution uses;
	// Label is what the user sees.
	ScriptOption struct {
		Label    string
		Value    string
		Type     resolver.ScriptType
		Favorite bool
		// LastSuccess is set when the script ran recently in this workspace.
		LastSuccess *bool
	}

	// Gathered is everything collected before the first question is asked.
	Gathered struct {
		Workspace       workspace.Workspace
		Listing         *scripts.Listing
		Containers      []string
		DockerReachable bool
		ScriptMenu      []ScriptOption
		ContainerMenu   []string
	}
)

// StripLabel removes a leading favorite mark and type label such as "[json] ".
// A label that would strip to nothing, like "[dev]", is returned unchanged.
func StripLabel(label string) string {
	if name := labelPrefix.ReplaceAllString(label, ""); name != "" {
		return name
	}
	return label
}

// Gather loads scripts, discovers containers and builds both menus.
func (s *Service) Gather(ctx context.Context, ws workspace.Workspace) (*Gathered, error) {
	listing, err := s.loadScripts(ws)
	if err != nil {
		return nil, err
	}

	containers := s.discover(ctx)
	g := &Gathered{
		Workspace:       ws,
		Listing:         listing,
		Containers:      containers,
		DockerReachable: len(containers) > 0,
	}
	g.ScriptMenu = s.scriptMenu(ctx, g)
	if g.DockerReachable {
		g.ContainerMenu = append(slices.Clone(containers), s.opts.Sentinels.NoContainer)
	}
	return g, nil
}

func (s *Service) loadScripts(ws workspace.Workspace) (*scripts.Listing, error) {
	if err := scripts.ValidateScripts(s.opts.CustomScripts); err != nil {
		s.deps.Logger.Warn("custom scripts have problems", "err", err)
	}

	listing, err := scripts.Load(ws, scripts.LoadOptions{
		Custom:         s.opts.CustomScripts,
		PackageManager: s.opts.PackageManager,
	})
	if err != nil {
		return nil, err
	}
	if listing.Empty() {
		return nil, issue.NewErrorContext().
			WithOperation("find scripts").
			WithResource(ws.Root).
			WithSuggestion("Add a scripts section to package.json").
			WithSuggestion("Declare custom_scripts in the config or .gigachad.toml").
			WithIssue(issue.NoScriptsFoundId).
			Wrap(ErrNoScripts).
			BuildError()
	}
	return listing, nil
}

// scriptMenu lists favorites first, then manifest scripts, then custom
// scripts, then the container-only entry when Docker is reachable. History
// lookups are best-effort.
func (s *Service) scriptMenu(ctx context.Context, g *Gathered) []ScriptOption {
	root := g.Workspace.Root

	var favorites []history.FavoriteScript
	lastRun := make(map[string]bool)
	if s.deps.History != nil {
		var err error
		if favorites, err = s.deps.History.Favorites(ctx, root); err != nil {
			s.deps.Logger.Warn("could not read favorites", "err", err)
		}
		recent, err := s.deps.History.RecentHistory(ctx, root, history.DefaultMaxHistorySize)
		if err != nil {
			s.deps.Logger.Warn("could not read history", "err", err)
		}
		for _, e := range recent {
			if _, seen := lastRun[e.ScriptName]; !seen {
				lastRun[e.ScriptName] = e.Success
			}
		}
	}

	typeOf := func(name string) resolver.ScriptType {
		if g.Listing.Catalog.IsCustom(name) {
			return resolver.ScriptTypeCustom
		}
		return resolver.ScriptTypePackage
	}

	// The label names where the entry came from; Type is what resolution
	// will treat it as, since custom scripts shadow manifest scripts.
	option := func(name, label string) ScriptOption {
		opt := ScriptOption{Label: label + " " + name, Value: name, Type: typeOf(name)}
		if ok, ran := lastRun[name]; ran {
			opt.LastSuccess = &ok
		}
		return opt
	}

	labelOf := func(name string) string {
		if slices.Contains(g.Listing.Manifest, name) {
			return manifestLabel
		}
		return customLabel
	}

	all := g.Listing.All()
	var menu []ScriptOption
	pinned := make(map[string]bool)
	for _, f := range favorites {
		if !slices.Contains(all, f.ScriptName) || pinned[f.ScriptName] {
			continue
		}
		opt := option(f.ScriptName, labelOf(f.ScriptName))
		opt.Label = favoriteMark + " " + opt.Label
		opt.Favorite = true
		menu = append(menu, opt)
		pinned[f.ScriptName] = true
	}

	for _, name := range g.Listing.Manifest {
		if !pinned[name] {
			menu = append(menu, option(name, manifestLabel))
		}
	}
	for _, name := range g.Listing.Custom {
		if !pinned[name] && !slices.Contains(g.Listing.Manifest, name) {
			menu = append(menu, option(name, customLabel))
		}
	}

	if g.DockerReachable {
		menu = append(menu, ScriptOption{
			Label: s.opts.Sentinels.ContainerOnly,
			Value: s.opts.Sentinels.ContainerOnly,
		})
	}
	return menu
}
