// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/gigachad-dev/gigachad/internal/terminal"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code terminal.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitResult turns a finished run into an error when the command failed.
func exitResult(res terminal.Result) error {
	if res.Success() {
		return nil
	}
	code := res.ExitCode
	if code == 0 {
		code = 1
	}
	return &ExitError{Code: code, Err: res.Error}
}
