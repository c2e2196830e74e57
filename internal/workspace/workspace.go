// SPDX-License-Identifier: MPL-2.0

// Package workspace identifies the project a command runs against.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// markers are the files that make a directory a workspace root, in order of
// preference at a single level.
var markers = []string{"package.json", ".gigachad.toml"}

// ErrNotDirectory is returned when the start path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Workspace is the identity used for scoping history, favorites, auto-run and
// custom-script groups.
type Workspace struct {
	// Root is the absolute, cleaned workspace directory.
	Root string
	// Name is the base name of Root, matched against custom script groups.
	Name string
}

// Detect walks up from start to the nearest directory holding package.json or
// .gigachad.toml. When none is found start itself is the workspace.
func Detect(start string) (Workspace, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve workspace path %q: %w", start, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Workspace{}, fmt.Errorf("stat workspace path: %w", err)
	}
	if !info.IsDir() {
		return Workspace{}, fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}

	for dir := abs; ; {
		if hasMarker(dir) {
			return New(dir), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return New(abs), nil
}

// New returns the workspace rooted at root without touching the filesystem.
func New(root string) Workspace {
	root = filepath.Clean(root)
	return Workspace{Root: root, Name: filepath.Base(root)}
}

// String returns the workspace root.
func (w Workspace) String() string { return w.Root }

func hasMarker(dir string) bool {
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}
