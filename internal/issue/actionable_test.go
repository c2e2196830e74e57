// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "list running containers"},
			expected: "failed to list running containers",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "read package manifest", Resource: "./package.json"},
			expected: "failed to read package manifest: ./package.json",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "open state store", Cause: errors.New("disk full")},
			expected: "failed to open state store: disk full",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read package manifest",
				Resource:  "./package.json",
				Cause:     errors.New("unexpected EOF"),
			},
			expected: "failed to read package manifest: ./package.json: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "probe shell", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "probe shell"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions are bulleted",
			err: &ActionableError{
				Operation:   "load configuration",
				Resource:    "~/.config/gigachad/config.cue",
				Suggestions: []string{"Run 'gigachad config validate'", "Check file permissions"},
			},
			contains: []string{
				"failed to load configuration",
				"• Run 'gigachad config validate'",
				"• Check file permissions",
			},
		},
		{
			name: "error chain in verbose mode",
			err: &ActionableError{
				Operation: "record execution",
				Cause:     fmt.Errorf("save history: %w", errors.New("database is locked")),
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. save history: database is locked",
				"2. database is locked",
			},
		},
		{
			name: "no error chain when not verbose",
			err: &ActionableError{
				Operation: "record execution",
				Cause:     errors.New("database is locked"),
			},
			contains: []string{"failed to record execution: database is locked"},
			excludes: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	t.Run("missing operation returns nil", func(t *testing.T) {
		t.Parallel()

		if err := NewErrorContext().WithResource("web").Build(); err != nil {
			t.Errorf("Build() = %v, want nil", err)
		}
		if err := NewErrorContext().BuildError(); err != nil {
			t.Errorf("BuildError() = %v, want nil", err)
		}
	})

	t.Run("full context", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("no such container")
		err := NewErrorContext().
			WithOperation("start auto-run").
			WithResource("web").
			WithSuggestion("Start the container").
			WithSuggestions("Run 'gigachad autorun clear'", "Run 'gigachad autorun set'").
			WithIssue(AutoRunContainerMissingId).
			Wrap(cause).
			Build()

		if err == nil {
			t.Fatal("Build() returned nil")
		}
		if err.Operation != "start auto-run" || err.Resource != "web" {
			t.Errorf("Operation/Resource = %q/%q", err.Operation, err.Resource)
		}
		if len(err.Suggestions) != 3 {
			t.Errorf("Suggestions count = %d, want 3", len(err.Suggestions))
		}
		if !errors.Is(err, cause) {
			t.Errorf("Cause = %v, want %v", err.Cause, cause)
		}
		if got := err.CatalogIssue(); got == nil || got.Id() != AutoRunContainerMissingId {
			t.Errorf("CatalogIssue() = %v, want AutoRunContainerMissingId", got)
		}
	})
}

func TestErrorContext_Reuse(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("probe shell").WithResource("web")

	err1 := ctx.Wrap(errors.New("error 1")).Build()
	err2 := ctx.Wrap(errors.New("error 2")).Build()

	if err1.Cause.Error() == err2.Cause.Error() {
		t.Error("reused context should allow different causes")
	}
	if err1.Operation != err2.Operation {
		t.Error("reused context should preserve operation")
	}
}

func TestAsActionable(t *testing.T) {
	t.Parallel()

	inner := NewErrorContext().WithOperation("read package manifest").BuildError()
	wrapped := fmt.Errorf("gather scripts: %w", inner)

	ae, ok := AsActionable(wrapped)
	if !ok || ae.Operation != "read package manifest" {
		t.Errorf("AsActionable() = %v, %v", ae, ok)
	}
	if _, ok := AsActionable(errors.New("plain")); ok {
		t.Error("AsActionable(plain) should be false")
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Parallel()

	cause := errors.New("original error")
	if err := WrapWithOperation(cause, "list scripts"); err == nil || !errors.Is(err, cause) {
		t.Errorf("WrapWithOperation() = %v", err)
	}
	if err := WrapWithContext(cause, "read manifest", "/w/package.json"); err == nil || err.Resource != "/w/package.json" {
		t.Errorf("WrapWithContext() = %v", err)
	}
	if WrapWithOperation(nil, "x") != nil || WrapWithContext(nil, "x", "y") != nil {
		t.Error("wrapping nil should return nil")
	}
	if NewActionableError("x").CatalogIssue() != nil {
		t.Error("CatalogIssue() without issue should be nil")
	}
}
