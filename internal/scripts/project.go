// SPDX-License-Identifier: MPL-2.0

package scripts

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gigachad-dev/gigachad/internal/issue"
)

// ProjectFile is the optional per-project file next to package.json.
const ProjectFile = ".gigachad.toml"

// Project is the content of a project file.
//
//	package_manager = "yarn"
//
//	[[custom_scripts]]
//	name = "up"
//	command = "docker compose up -d"
type Project struct {
	PackageManager PackageManager `toml:"package_manager,omitempty"`
	CustomScripts  []CustomScript `toml:"custom_scripts,omitempty"`
}

// ReadProject reads dir/.gigachad.toml. A missing file yields an empty
// Project and no error. Unknown keys are rejected.
func ReadProject(dir string) (Project, error) {
	path := filepath.Join(dir, ProjectFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Project{}, nil
	}
	if err != nil {
		return Project{}, projectError(path, err)
	}

	var p Project
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Project{}, projectError(path, err)
	}
	if p.PackageManager != "" {
		if err := p.PackageManager.Validate(); err != nil {
			return Project{}, projectError(path, err)
		}
	}
	return p, nil
}

// Marshal renders p as TOML.
func (p Project) Marshal() ([]byte, error) {
	return toml.Marshal(p)
}

func projectError(path string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("read project file").
		WithResource(path).
		WithSuggestion("Check the TOML syntax; only package_manager and [[custom_scripts]] are allowed").
		Wrap(cause).
		BuildError()
}
