// SPDX-License-Identifier: MPL-2.0

package scripts

import "github.com/gigachad-dev/gigachad/internal/workspace"

type (
	// LoadOptions carries what the global configuration contributes.
	LoadOptions struct {
		// Custom are the custom scripts from the global configuration.
		Custom []CustomScript
		// PackageManager overrides lock-file detection when set.
		PackageManager PackageManager
	}

	// Listing is everything the script menu and the resolver need for one workspace.
	Listing struct {
		// Manifest are package.json script names in declaration order.
		Manifest []string
		// Custom are visible custom script names, global entries first.
		Custom []string
		// Catalog resolves custom scripts; it also holds hidden entries.
		Catalog *Catalog
		// PackageManager runs manifest scripts.
		PackageManager PackageManager
	}
)

// Load gathers scripts for ws. Package manager precedence: project file,
// then opts.PackageManager, then lock-file detection.
func Load(ws workspace.Workspace, opts LoadOptions) (*Listing, error) {
	manifestNames, err := ReadManifest(ws.Root)
	if err != nil {
		return nil, err
	}
	project, err := ReadProject(ws.Root)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog(ws.Name, opts.Custom, project.CustomScripts)

	pm := project.PackageManager
	if pm == "" {
		pm = opts.PackageManager
	}
	if pm == "" {
		pm = DetectPackageManager(ws.Root)
	}

	return &Listing{
		Manifest:       manifestNames,
		Custom:         catalog.Names(),
		Catalog:        catalog,
		PackageManager: pm,
	}, nil
}

// Empty reports whether there is nothing to pick.
func (l *Listing) Empty() bool {
	return len(l.Manifest) == 0 && len(l.Custom) == 0
}

// All returns manifest names followed by custom names.
func (l *Listing) All() []string {
	all := make([]string, 0, len(l.Manifest)+len(l.Custom))
	all = append(all, l.Manifest...)
	return append(all, l.Custom...)
}
