// SPDX-License-Identifier: MPL-2.0

package scripts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gigachad-dev/gigachad/internal/issue"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestReadManifest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string // empty means no file
		want    []string
		wantErr bool
	}{
		{
			name: "declaration order is kept",
			content: `{
  "name": "web",
  "version": "1.0.0",
  "scripts": {
    "start": "node index.js",
    "build": "tsc",
    "test:unit": "jest",
    "lint": "eslint ."
  },
  "devDependencies": {"jest": "^29.0.0"}
}`,
			want: []string{"start", "build", "test:unit", "lint"},
		},
		{
			name: "no file",
			want: nil,
		},
		{
			name:    "no scripts field",
			content: `{"name": "lib", "private": true}`,
			want:    nil,
		},
		{
			name:    "empty scripts object",
			content: `{"scripts": {}}`,
			want:    nil,
		},
		{
			name:    "malformed json",
			content: `{"scripts": {"build": "tsc",}`,
			wantErr: true,
		},
		{
			name:    "non-string script",
			content: `{"scripts": {"build": 42}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tt.content != "" {
				writeFile(t, dir, ManifestFile, tt.content)
			}

			got, err := ReadManifest(dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadManifest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				ae, ok := issue.AsActionable(err)
				if !ok || ae.Issue != issue.ManifestParseFailedId {
					t.Errorf("error should link ManifestParseFailedId, got %v", err)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadManifest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
