// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

const (
	// ThemeDefault uses the base huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("cancelled")
	// ErrInvalidTheme is the sentinel error wrapped by InvalidThemeError.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrNoOptions is returned when a menu is asked to show nothing.
	ErrNoOptions = errors.New("no options to choose from")
)

type (
	// Theme represents the visual theme for prompts.
	Theme string

	// InvalidThemeError is returned when a Theme value is not recognized.
	InvalidThemeError struct {
		Value Theme
	}

	// Config holds common configuration for prompts.
	Config struct {
		// Theme specifies the visual theme to use.
		Theme Theme
		// Accessible enables accessible mode for screen readers.
		Accessible bool
		// Input is where answers are read from; nil means stdin.
		Input io.Reader
		// Output is where prompts are drawn; nil picks stdout, or stderr in
		// accessible mode so prompts survive $() capture.
		Output io.Writer
	}
)

// DefaultConfig returns the prompt configuration for the current process.
// Accessible mode is forced by the caller's preference, the ACCESSIBLE
// environment variable, or a non-terminal stdin.
func DefaultConfig(preferAccessible bool) Config {
	return Config{
		Theme:      ThemeCharm,
		Accessible: preferAccessible || os.Getenv("ACCESSIBLE") != "" || !isInputTerminal(),
	}
}

// Error implements the error interface.
func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q (valid: default, charm, dracula, catppuccin, base16)", e.Value)
}

// Unwrap returns ErrInvalidTheme for errors.Is() compatibility.
func (e *InvalidThemeError) Unwrap() error { return ErrInvalidTheme }

// Validate returns an error if the Theme is not a known theme.
func (t Theme) Validate() error {
	switch t {
	case ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return nil
	default:
		return &InvalidThemeError{Value: t}
	}
}

func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func outputWriter(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}
	if cfg.Accessible {
		return os.Stderr
	}
	return os.Stdout
}

func newForm(cfg Config, fields ...huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huhTheme(cfg.Theme)).
		WithAccessible(cfg.Accessible).
		WithOutput(outputWriter(cfg))
	if cfg.Input != nil {
		form = form.WithInput(cfg.Input)
	}
	return form
}

// runForm maps huh's abort error to ErrCancelled.
func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return nil
}

func huhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}
