// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// SetHomeDir points the home directory at dir for the rest of the test.
// XDG_CONFIG_HOME and XDG_STATE_HOME are unset so paths derive from dir.
//
// Platform handling:
//   - Windows: Sets USERPROFILE
//   - Linux/macOS: Sets HOME
func SetHomeDir(t testing.TB, dir string) {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		MustSetenv(t, "USERPROFILE", dir)
	default:
		MustSetenv(t, "HOME", dir)
	}
	MustUnsetenv(t, "XDG_CONFIG_HOME")
	MustUnsetenv(t, "XDG_STATE_HOME")
}

// IsolatedHome creates a temporary home directory, points the environment at
// it and returns its path.
func IsolatedHome(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "home")
	MustWriteFile(t, filepath.Join(dir, ".keep"), "")
	SetHomeDir(t, dir)
	return dir
}
