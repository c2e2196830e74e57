// SPDX-License-Identifier: MPL-2.0

package scripts

import (
	"slices"
	"strings"
)

type (
	// CustomScript is a user-declared script.
	CustomScript struct {
		// Name is what the menu shows and what history records.
		Name string `json:"name" toml:"name"`
		// Command is the literal shell text run for this script.
		Command string `json:"command" toml:"command"`
		// Group, when set, limits the script to workspaces whose folder name
		// matches it case-insensitively.
		Group string `json:"group,omitempty" toml:"group,omitempty"`
	}

	// Catalog answers custom-script questions for one workspace.
	Catalog struct {
		workspace string
		entries   []CustomScript
	}
)

// NewCatalog builds a catalog for the workspace folder name. Later sources
// are appended after earlier ones.
func NewCatalog(workspace string, sources ...[]CustomScript) *Catalog {
	var entries []CustomScript
	for _, src := range sources {
		entries = append(entries, src...)
	}
	return &Catalog{workspace: workspace, entries: entries}
}

// Visible reports whether s is listed in the given workspace. An empty
// workspace name shows every script.
func (s CustomScript) Visible(workspace string) bool {
	return workspace == "" || s.Group == "" || strings.EqualFold(s.Group, workspace)
}

// Names returns the names of the scripts visible in the catalog's workspace,
// in declaration order.
func (c *Catalog) Names() []string {
	var names []string
	for _, e := range c.entries {
		if e.Visible(c.workspace) {
			names = append(names, e.Name)
		}
	}
	return names
}

// IsCustom reports whether name is among the visible custom scripts.
// An empty name is never custom.
func (c *Catalog) IsCustom(name string) bool {
	return name != "" && slices.Contains(c.Names(), name)
}

// Command returns the command text of the first entry named name, searching
// every entry regardless of group. It returns "" when no entry matches.
func (c *Catalog) Command(name string) string {
	for _, e := range c.entries {
		if e.Name == name {
			return e.Command
		}
	}
	return ""
}

