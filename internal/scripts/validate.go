// SPDX-License-Identifier: MPL-2.0

package scripts

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

var (
	// ErrEmptyScriptName is returned for a custom script without a name.
	ErrEmptyScriptName = errors.New("custom script name is empty")
	// ErrInvalidCommand is the sentinel error wrapped by InvalidCommandError.
	ErrInvalidCommand = errors.New("invalid command")
)

// InvalidCommandError is returned when a custom script's command does not
// parse as a POSIX shell program.
type InvalidCommandError struct {
	Script string
	Err    error
}

// Error implements the error interface.
func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("custom script %q: %v", e.Script, e.Err)
}

// Unwrap returns ErrInvalidCommand and the parse error.
func (e *InvalidCommandError) Unwrap() []error { return []error{ErrInvalidCommand, e.Err} }

// ValidateCommand parses text as a shell program. An empty command is valid;
// the resolver treats it as unresolvable.
func ValidateCommand(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(text), "")
	return err
}

// ValidateScripts checks every entry and joins the failures.
func ValidateScripts(entries []CustomScript) error {
	var errs []error
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("custom_scripts[%d]: %w", i, ErrEmptyScriptName))
			continue
		}
		if err := ValidateCommand(e.Command); err != nil {
			errs = append(errs, &InvalidCommandError{Script: e.Name, Err: err})
		}
	}
	return errors.Join(errs...)
}
