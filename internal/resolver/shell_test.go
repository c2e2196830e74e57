// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"context"
	"errors"
	"testing"
)

type fakeProber struct {
	err   error
	calls []ShellKind
}

func (p *fakeProber) ProbeShell(_ context.Context, _ string, shell ShellKind) error {
	p.calls = append(p.calls, shell)
	return p.err
}

func TestNegotiateShell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		preferred ShellKind
		probeErr  error
		want      ShellKind
		wantCalls int
	}{
		{"preferred bash skips probe", ShellBash, errors.New("unused"), ShellBash, 0},
		{"preferred sh skips probe", ShellSh, nil, ShellSh, 0},
		{"bash probe succeeds", "", nil, ShellBash, 1},
		{"bash probe fails", "", errors.New("exec: bash: not found"), ShellSh, 1},
		{"invalid preference probes", "zsh", nil, ShellBash, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prober := &fakeProber{err: tt.probeErr}
			got := NegotiateShell(context.Background(), prober, "web", tt.preferred)
			if got != tt.want {
				t.Errorf("NegotiateShell() = %q, want %q", got, tt.want)
			}
			if len(prober.calls) != tt.wantCalls {
				t.Errorf("probe calls = %d, want %d", len(prober.calls), tt.wantCalls)
			}
			for _, c := range prober.calls {
				if c != ShellBash {
					t.Errorf("probed %q, want only bash", c)
				}
			}
		})
	}
}

func TestNegotiateShell_NoProber(t *testing.T) {
	t.Parallel()

	if got := NegotiateShell(context.Background(), nil, "web", ""); got != ShellBash {
		t.Errorf("NegotiateShell(nil prober) = %q, want bash", got)
	}
}

func TestShellKind_Validate(t *testing.T) {
	t.Parallel()

	for _, s := range []ShellKind{ShellBash, ShellSh} {
		if err := s.Validate(); err != nil {
			t.Errorf("ShellKind(%q).Validate() = %v", s, err)
		}
	}
	for _, s := range []ShellKind{"", "zsh", "BASH"} {
		err := s.Validate()
		if !errors.Is(err, ErrInvalidShellKind) {
			t.Errorf("ShellKind(%q).Validate() = %v, want ErrInvalidShellKind", s, err)
		}
	}
}

func TestScriptType_Validate(t *testing.T) {
	t.Parallel()

	if err := ScriptTypeCustom.Validate(); err != nil {
		t.Errorf("custom: %v", err)
	}
	var typed *InvalidScriptTypeError
	if err := ScriptType("task").Validate(); !errors.As(err, &typed) || typed.Value != "task" {
		t.Errorf("ScriptType(task).Validate() = %v, want *InvalidScriptTypeError", err)
	}
}
