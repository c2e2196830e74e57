// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gigachad-dev/gigachad/internal/cueutil"
	"github.com/gigachad-dev/gigachad/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "gigachad"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. GIGACHAD_CONTAINER_ENGINE.
	EnvPrefix = "GIGACHAD"
	// StateFileName is the state database file inside the state directory.
	StateFileName = "state.db"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the gigachad configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of the default config file.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// StateDir returns the directory holding the state database. An explicit
// state_dir in cfg wins; otherwise $XDG_STATE_HOME/gigachad, falling back to
// ~/.local/state/gigachad. Windows uses %LOCALAPPDATA%.
func StateDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.StateDir != "" {
		return expandHome(string(cfg.StateDir))
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	default:
		base = os.Getenv("XDG_STATE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".local", "state")
		}
	}
	return filepath.Join(base, AppName), nil
}

// StateFilePath returns the full path of the state database.
func StateFilePath(cfg *Config) (string, error) {
	dir, err := StateDir(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFileName), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the resolved file path, empty when only
// defaults and the environment were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'gigachad config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", loadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", loadError(cuePath, err)
			}
			resolvedPath = cuePath
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so validate the merged result.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check GIGACHAD_* environment variables for typos").
			WithSuggestion("Run 'gigachad config validate' for details").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(joinFieldErrors(errs)).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("container_engine", defaults.ContainerEngine)
	v.SetDefault("container_shell", defaults.ContainerShell)
	v.SetDefault("package_manager", defaults.PackageManager)
	v.SetDefault("custom_scripts", defaults.CustomScripts)
	v.SetDefault("history.max_history_size", defaults.History.MaxHistorySize)
	v.SetDefault("history.max_favorites_size", defaults.History.MaxFavoritesSize)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.accessible", defaults.UI.Accessible)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("state_dir", defaults.StateDir)
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'gigachad config --help' for configuration options").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into v.
// Fields are optional, so the value need not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithConcrete(false),
		cueutil.WithFilename(path),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// Validate checks a config file against the schema and the typed rules
// without merging defaults or environment overrides.
func Validate(path string) error {
	v := viper.New()
	setDefaults(v)
	if err := loadCUEIntoViper(v, path); err != nil {
		return err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if valid, errs := cfg.IsValid(); !valid {
		return joinFieldErrors(errs)
	}
	return nil
}

// joinFieldErrors flattens InvalidConfigError so each field problem is
// reported on its own line.
func joinFieldErrors(errs []error) error {
	var flat []error
	for _, err := range errs {
		if ce, ok := err.(*InvalidConfigError); ok {
			flat = append(flat, ce.FieldErrors...)
			continue
		}
		flat = append(flat, err)
	}
	return &InvalidConfigError{FieldErrors: flat}
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file. An existing file is
// kept unless force is set. It returns the path written or kept.
func CreateDefaultConfig(force bool) (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}

	if !force && fileExists(cfgPath) {
		return cfgPath, nil
	}

	return cfgPath, writeConfig(cfgPath, DefaultConfig())
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return err
	}
	return writeConfig(cfgPath, cfg)
}

func writeConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// gigachad configuration file\n\n")

	sb.WriteString(fmt.Sprintf("container_engine: %q\n", cfg.ContainerEngine))
	sb.WriteString(fmt.Sprintf("container_shell:  %q\n", cfg.ContainerShell))
	sb.WriteString(fmt.Sprintf("package_manager:  %q\n", cfg.PackageManager))

	if len(cfg.CustomScripts) > 0 {
		sb.WriteString("\ncustom_scripts: [\n")
		for _, s := range cfg.CustomScripts {
			if s.Group != "" {
				sb.WriteString(fmt.Sprintf("\t{name: %q, command: %q, group: %q},\n", s.Name, s.Command, s.Group))
			} else {
				sb.WriteString(fmt.Sprintf("\t{name: %q, command: %q},\n", s.Name, s.Command))
			}
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nhistory: {\n")
	sb.WriteString(fmt.Sprintf("\tmax_history_size:   %d\n", cfg.History.MaxHistorySize))
	sb.WriteString(fmt.Sprintf("\tmax_favorites_size: %d\n", cfg.History.MaxFavoritesSize))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\taccessible:   %v\n", cfg.UI.Accessible))
	sb.WriteString(fmt.Sprintf("\tverbose:      %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	if cfg.StateDir != "" {
		sb.WriteString(fmt.Sprintf("\nstate_dir: %q\n", cfg.StateDir))
	}

	return sb.String()
}
