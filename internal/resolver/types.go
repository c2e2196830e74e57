// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
)

const (
	// ScriptTypePackage is a script declared in the project manifest (package.json).
	ScriptTypePackage ScriptType = "package"
	// ScriptTypeCustom is a user-defined custom script from configuration.
	ScriptTypeCustom ScriptType = "custom"

	// ShellBash invokes bash inside the target container.
	ShellBash ShellKind = "bash"
	// ShellSh invokes sh inside the target container.
	ShellSh ShellKind = "sh"
)

var (
	// ErrInvalidScriptType is the sentinel error wrapped by InvalidScriptTypeError.
	ErrInvalidScriptType = errors.New("invalid script type")
	// ErrInvalidShellKind is the sentinel error wrapped by InvalidShellKindError.
	ErrInvalidShellKind = errors.New("invalid shell kind")
)

type (
	// ScriptType classifies a script as manifest-declared or custom.
	ScriptType string

	// InvalidScriptTypeError is returned when a ScriptType value is not recognized.
	// It wraps ErrInvalidScriptType for errors.Is() compatibility.
	InvalidScriptTypeError struct {
		Value ScriptType
	}

	// ShellKind is the shell binary invoked inside a container.
	ShellKind string

	// InvalidShellKindError is returned when a ShellKind value is not recognized.
	// It wraps ErrInvalidShellKind for errors.Is() compatibility.
	InvalidShellKindError struct {
		Value ShellKind
	}
)

// String returns the string representation of the ScriptType.
func (t ScriptType) String() string { return string(t) }

// Validate returns an error if the ScriptType is not package or custom.
func (t ScriptType) Validate() error {
	switch t {
	case ScriptTypePackage, ScriptTypeCustom:
		return nil
	default:
		return &InvalidScriptTypeError{Value: t}
	}
}

// Error implements the error interface for InvalidScriptTypeError.
func (e *InvalidScriptTypeError) Error() string {
	return fmt.Sprintf("invalid script type %q (valid: package, custom)", e.Value)
}

// Unwrap returns ErrInvalidScriptType for errors.Is() compatibility.
func (e *InvalidScriptTypeError) Unwrap() error { return ErrInvalidScriptType }

// String returns the string representation of the ShellKind.
func (s ShellKind) String() string { return string(s) }

// Validate returns an error if the ShellKind is not bash or sh.
// The zero value is invalid.
func (s ShellKind) Validate() error {
	switch s {
	case ShellBash, ShellSh:
		return nil
	default:
		return &InvalidShellKindError{Value: s}
	}
}

// Error implements the error interface for InvalidShellKindError.
func (e *InvalidShellKindError) Error() string {
	return fmt.Sprintf("invalid container shell %q (valid: bash, sh)", e.Value)
}

// Unwrap returns ErrInvalidShellKind for errors.Is() compatibility.
func (e *InvalidShellKindError) Unwrap() error { return ErrInvalidShellKind }
