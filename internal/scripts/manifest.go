// SPDX-License-Identifier: MPL-2.0

package scripts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"

	"github.com/gigachad-dev/gigachad/internal/cueutil"
	"github.com/gigachad-dev/gigachad/internal/issue"
)

// ManifestFile is the project manifest read for package scripts.
const ManifestFile = "package.json"

// manifestSchema accepts any package.json whose "scripts" field, when present,
// maps names to command strings.
const manifestSchema = `
#Manifest: {
	scripts?: [string]: string
	...
}
`

type manifest struct {
	Scripts map[string]string `json:"scripts"`
}

// ReadManifest returns the script names declared in dir/package.json in
// declaration order. A missing file yields an empty list and no error.
func ReadManifest(dir string) ([]string, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, manifestError(path, err)
	}

	result, err := cueutil.ParseAndDecodeString[manifest](manifestSchema, data, "#Manifest",
		cueutil.WithFilename(path))
	if err != nil {
		return nil, manifestError(path, err)
	}
	if len(result.Value.Scripts) == 0 {
		return nil, nil
	}

	iter, err := result.Unified.LookupPath(cue.ParsePath("scripts")).Fields()
	if err != nil {
		return nil, manifestError(path, fmt.Errorf("iterate scripts: %w", err))
	}
	names := make([]string, 0, len(result.Value.Scripts))
	for iter.Next() {
		names = append(names, iter.Selector().Unquoted())
	}
	return names, nil
}

func manifestError(path string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("read package manifest").
		WithResource(path).
		WithSuggestion("Check that " + ManifestFile + " is valid JSON and every script is a string").
		WithIssue(issue.ManifestParseFailedId).
		Wrap(cause).
		BuildError()
}
