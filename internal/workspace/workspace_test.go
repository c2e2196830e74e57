// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	project := filepath.Join(root, "my-app")
	nested := filepath.Join(project, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(project, "package.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		start    string
		wantRoot string
		wantName string
	}{
		{"at root", project, project, "my-app"},
		{"nested directory walks up", nested, project, "my-app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ws, err := Detect(tt.start)
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if ws.Root != tt.wantRoot || ws.Name != tt.wantName {
				t.Errorf("Detect() = %+v, want root %q name %q", ws, tt.wantRoot, tt.wantName)
			}
		})
	}
}

func TestDetect_ProjectFileMarker(t *testing.T) {
	t.Parallel()

	project := filepath.Join(t.TempDir(), "infra")
	sub := filepath.Join(project, "terraform")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(project, ".gigachad.toml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := Detect(sub)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if ws.Root != project {
		t.Errorf("Detect().Root = %q, want %q", ws.Root, project)
	}
}

func TestDetect_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Detect(file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Detect(file) error = %v, want ErrNotDirectory", err)
	}
	if _, err := Detect(filepath.Join(dir, "missing")); err == nil {
		t.Error("Detect(missing) should fail")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	ws := New("/home/dev/projects/api/")
	if ws.Root != "/home/dev/projects/api" || ws.Name != "api" || ws.String() != ws.Root {
		t.Errorf("New() = %+v", ws)
	}
}
