// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ContainerEngineDocker uses Docker for container discovery and probing.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman for container discovery and probing.
	ContainerEnginePodman ContainerEngine = "podman"

	// ContainerShellAuto probes for bash and falls back to sh.
	ContainerShellAuto ContainerShell = ""
	// ContainerShellBash always uses bash inside containers.
	ContainerShellBash ContainerShell = "bash"
	// ContainerShellSh always uses sh inside containers.
	ContainerShellSh ContainerShell = "sh"

	// PackageManagerAuto detects the package manager from lock files.
	PackageManagerAuto PackageManager = ""
	// PackageManagerNpm forces npm.
	PackageManagerNpm PackageManager = "npm"
	// PackageManagerYarn forces yarn.
	PackageManagerYarn PackageManager = "yarn"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultMaxHistorySize is the number of executions kept per store.
	DefaultMaxHistorySize = 20
	// DefaultMaxFavoritesSize is the number of favorites kept per store.
	DefaultMaxFavoritesSize = 10
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidContainerShell is returned when a ContainerShell value is not recognized.
	ErrInvalidContainerShell = errors.New("invalid container shell")
	// ErrInvalidPackageManager is returned when a PackageManager value is not recognized.
	ErrInvalidPackageManager = errors.New("invalid package manager")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidStateDirPath is returned when a StateDirPath value is whitespace-only.
	ErrInvalidStateDirPath = errors.New("invalid state dir path")
	// ErrInvalidCustomScript is the sentinel error wrapped by InvalidCustomScriptError.
	ErrInvalidCustomScript = errors.New("invalid custom script")
	// ErrInvalidHistoryConfig is the sentinel error wrapped by InvalidHistoryConfigError.
	ErrInvalidHistoryConfig = errors.New("invalid history config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container runtime to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	// It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// ContainerShell pins the shell started inside containers.
	// Defined locally to avoid coupling config to internal/resolver;
	// the flow casts to resolver.ShellKind at the boundary.
	ContainerShell string

	// InvalidContainerShellError is returned when a ContainerShell value is not recognized.
	InvalidContainerShellError struct {
		Value ContainerShell
	}

	// PackageManager overrides package manager detection.
	PackageManager string

	// InvalidPackageManagerError is returned when a PackageManager value is not recognized.
	InvalidPackageManagerError struct {
		Value PackageManager
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// StateDirPath is where the state database lives.
	// The zero value ("") is valid and means "use the default state directory".
	StateDirPath string

	// InvalidStateDirPathError is returned when a StateDirPath value is
	// non-empty but whitespace-only.
	InvalidStateDirPathError struct {
		Value StateDirPath
	}

	// InvalidCustomScriptError is returned when a CustomScript has invalid fields.
	InvalidCustomScriptError struct {
		Index  int
		Reason string
	}

	// InvalidHistoryConfigError is returned when a HistoryConfig has invalid fields.
	InvalidHistoryConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// CustomScript is a user-declared script.
	// Defined locally to avoid coupling config to internal/scripts.
	CustomScript struct {
		Name    string `json:"name" mapstructure:"name"`
		Command string `json:"command" mapstructure:"command"`
		Group   string `json:"group,omitempty" mapstructure:"group"`
	}

	// Config holds the application configuration.
	Config struct {
		// ContainerEngine specifies whether to use "docker" or "podman"
		ContainerEngine ContainerEngine `json:"container_engine" mapstructure:"container_engine"`
		// ContainerShell pins the container shell; empty means probe
		ContainerShell ContainerShell `json:"container_shell" mapstructure:"container_shell"`
		// PackageManager overrides lock-file detection; empty means detect
		PackageManager PackageManager `json:"package_manager" mapstructure:"package_manager"`
		// CustomScripts are offered in every matching workspace
		CustomScripts []CustomScript `json:"custom_scripts" mapstructure:"custom_scripts"`
		// History configures history and favorites limits
		History HistoryConfig `json:"history" mapstructure:"history"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// StateDir overrides where the state database is stored
		StateDir StateDirPath `json:"state_dir" mapstructure:"state_dir"`
	}

	// HistoryConfig limits the persisted history.
	HistoryConfig struct {
		MaxHistorySize   int `json:"max_history_size" mapstructure:"max_history_size"`
		MaxFavoritesSize int `json:"max_favorites_size" mapstructure:"max_favorites_size"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Accessible forces plain prompts suited to screen readers
		Accessible bool `json:"accessible" mapstructure:"accessible"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEngineDocker,
		ContainerShell:  ContainerShellAuto,
		PackageManager:  PackageManagerAuto,
		CustomScripts:   []CustomScript{},
		History: HistoryConfig{
			MaxHistorySize:   DefaultMaxHistorySize,
			MaxFavoritesSize: DefaultMaxFavoritesSize,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ContainerEngine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ContainerShell.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.PackageManager.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for i, s := range c.CustomScripts {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, &InvalidCustomScriptError{Index: i, Reason: "name must be non-empty"})
		}
	}
	if valid, fieldErrs := c.History.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.StateDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so
// errors.Is matches both the config sentinel and each field sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether both limits are positive.
func (c HistoryConfig) IsValid() (bool, []error) {
	var errs []error
	if c.MaxHistorySize < 1 {
		errs = append(errs, fmt.Errorf("max_history_size must be at least 1, got %d", c.MaxHistorySize))
	}
	if c.MaxFavoritesSize < 1 {
		errs = append(errs, fmt.Errorf("max_favorites_size must be at least 1, got %d", c.MaxFavoritesSize))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidHistoryConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHistoryConfigError.
func (e *InvalidHistoryConfigError) Error() string {
	return fmt.Sprintf("invalid history config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidHistoryConfig for errors.Is() compatibility.
func (e *InvalidHistoryConfigError) Unwrap() error { return ErrInvalidHistoryConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// Error implements the error interface for InvalidCustomScriptError.
func (e *InvalidCustomScriptError) Error() string {
	return fmt.Sprintf("custom_scripts[%d]: %s", e.Index, e.Reason)
}

// Unwrap returns ErrInvalidCustomScript for errors.Is() compatibility.
func (e *InvalidCustomScriptError) Unwrap() error { return ErrInvalidCustomScript }

// String returns the string representation of the ContainerEngine.
func (ce ContainerEngine) String() string { return string(ce) }

// IsValid returns whether the ContainerEngine is one of the defined engine types,
// and a list of validation errors if it is not.
func (ce ContainerEngine) IsValid() (bool, []error) {
	switch ce {
	case ContainerEngineDocker, ContainerEnginePodman:
		return true, nil
	default:
		return false, []error{&InvalidContainerEngineError{Value: ce}}
	}
}

// Error implements the error interface for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// String returns the string representation of the ContainerShell.
func (s ContainerShell) String() string { return string(s) }

// IsValid returns whether the ContainerShell is empty or a supported shell.
func (s ContainerShell) IsValid() (bool, []error) {
	switch s {
	case ContainerShellAuto, ContainerShellBash, ContainerShellSh:
		return true, nil
	default:
		return false, []error{&InvalidContainerShellError{Value: s}}
	}
}

// Error implements the error interface for InvalidContainerShellError.
func (e *InvalidContainerShellError) Error() string {
	return fmt.Sprintf("invalid container shell %q (valid: bash, sh, or empty)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerShellError) Unwrap() error { return ErrInvalidContainerShell }

// String returns the string representation of the PackageManager.
func (p PackageManager) String() string { return string(p) }

// IsValid returns whether the PackageManager is empty or a supported manager.
func (p PackageManager) IsValid() (bool, []error) {
	switch p {
	case PackageManagerAuto, PackageManagerNpm, PackageManagerYarn:
		return true, nil
	default:
		return false, []error{&InvalidPackageManagerError{Value: p}}
	}
}

// Error implements the error interface for InvalidPackageManagerError.
func (e *InvalidPackageManagerError) Error() string {
	return fmt.Sprintf("invalid package manager %q (valid: npm, yarn, or empty)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidPackageManagerError) Unwrap() error { return ErrInvalidPackageManager }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the StateDirPath.
func (p StateDirPath) String() string { return string(p) }

// IsValid returns whether the StateDirPath is valid.
// The zero value ("") is valid (means "use default state directory").
// Non-zero values must not be whitespace-only.
func (p StateDirPath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidStateDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidStateDirPathError.
func (e *InvalidStateDirPathError) Error() string {
	return fmt.Sprintf("invalid state dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidStateDirPath for errors.Is() compatibility.
func (e *InvalidStateDirPathError) Unwrap() error { return ErrInvalidStateDirPath }
