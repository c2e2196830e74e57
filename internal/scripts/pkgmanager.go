// SPDX-License-Identifier: MPL-2.0

package scripts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// PackageManagerNPM runs manifest scripts with npm.
	PackageManagerNPM PackageManager = "npm"
	// PackageManagerYarn runs manifest scripts with yarn.
	PackageManagerYarn PackageManager = "yarn"

	yarnLockFile = "yarn.lock"
	npmLockFile  = "package-lock.json"
)

// ErrInvalidPackageManager is the sentinel error wrapped by InvalidPackageManagerError.
var ErrInvalidPackageManager = errors.New("invalid package manager")

type (
	// PackageManager is the executable that runs manifest scripts.
	PackageManager string

	// InvalidPackageManagerError is returned when a PackageManager is not npm or yarn.
	// It wraps ErrInvalidPackageManager for errors.Is() compatibility.
	InvalidPackageManagerError struct {
		Value PackageManager
	}
)

// String returns the string representation of the PackageManager.
func (p PackageManager) String() string { return string(p) }

// Validate returns an error if the PackageManager is not npm or yarn.
func (p PackageManager) Validate() error {
	switch p {
	case PackageManagerNPM, PackageManagerYarn:
		return nil
	default:
		return &InvalidPackageManagerError{Value: p}
	}
}

// Error implements the error interface.
func (e *InvalidPackageManagerError) Error() string {
	return fmt.Sprintf("invalid package manager %q (valid: npm, yarn)", e.Value)
}

// Unwrap returns ErrInvalidPackageManager for errors.Is() compatibility.
func (e *InvalidPackageManagerError) Unwrap() error { return ErrInvalidPackageManager }

// DetectPackageManager picks the package manager from the lock file in dir:
// yarn.lock wins over package-lock.json, and npm is the default.
func DetectPackageManager(dir string) PackageManager {
	if fileExists(filepath.Join(dir, yarnLockFile)) {
		return PackageManagerYarn
	}
	if fileExists(filepath.Join(dir, npmLockFile)) {
		return PackageManagerNPM
	}
	return PackageManagerNPM
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
