// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gigachad-dev/gigachad/internal/resolver"
)

func TestEngines_ListRunning(t *testing.T) {
	t.Parallel()

	engines := map[string]func(*testing.T, *MockCommandRecorder) Engine{
		"docker": func(t *testing.T, r *MockCommandRecorder) Engine { return newMockDocker(t, r) },
		"podman": func(t *testing.T, r *MockCommandRecorder) Engine { return newMockPodman(t, r) },
	}

	for name, newEngine := range engines {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			recorder := NewMockCommandRecorder()
			recorder.Stdout = "web\n\n  db  \ncache\n"
			engine := newEngine(t, recorder)

			got, err := engine.ListRunning(context.Background())
			if err != nil {
				t.Fatalf("ListRunning() error: %v", err)
			}
			if diff := cmp.Diff([]string{"web", "db", "cache"}, got); diff != "" {
				t.Errorf("ListRunning() mismatch (-want +got):\n%s", diff)
			}
			recorder.AssertInvocationCount(t, 1)
			recorder.AssertCommandName(t, "/usr/bin/"+name)
			recorder.AssertLastArgs(t, "ps", "--format", "{{.Names}}")
		})
	}
}

func TestBaseCLIEngine_ListRunningEmpty(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	got, err := newMockDocker(t, recorder).ListRunning(context.Background())
	if err != nil {
		t.Fatalf("ListRunning() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListRunning() = %v, want empty", got)
	}
}

func TestBaseCLIEngine_ListRunningFailure(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.ExitCode = 1
	recorder.Stderr = "Cannot connect to the Docker daemon"

	_, err := newMockDocker(t, recorder).ListRunning(context.Background())
	if err == nil {
		t.Fatal("ListRunning() should fail when the engine exits non-zero")
	}
	if !strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
		t.Errorf("error should carry stderr, got: %v", err)
	}
}

func TestBaseCLIEngine_ProbeShell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		shell     resolver.ShellKind
		failOn    string
		wantErr   bool
		wantArgs  []string
		wantCalls int
	}{
		{
			name:      "bash available",
			shell:     resolver.ShellBash,
			wantArgs:  []string{"exec", "web", "bash", "-c", "exit"},
			wantCalls: 1,
		},
		{
			name:      "bash missing",
			shell:     resolver.ShellBash,
			failOn:    "bash",
			wantErr:   true,
			wantArgs:  []string{"exec", "web", "bash", "-c", "exit"},
			wantCalls: 1,
		},
		{
			name:      "sh probe",
			shell:     resolver.ShellSh,
			wantArgs:  []string{"exec", "web", "sh", "-c", "exit"},
			wantCalls: 1,
		},
		{
			name:      "invalid shell is rejected without running anything",
			shell:     "fish",
			wantErr:   true,
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := NewMockCommandRecorder()
			recorder.FailOnArg = tt.failOn
			err := newMockDocker(t, recorder).ProbeShell(context.Background(), "web", tt.shell)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ProbeShell() error = %v, wantErr %v", err, tt.wantErr)
			}
			recorder.AssertInvocationCount(t, tt.wantCalls)
			if tt.wantArgs != nil {
				recorder.AssertLastArgs(t, tt.wantArgs...)
			}
		})
	}
}

func TestNegotiateShell_WithEngine(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.FailOnArg = "bash"
	engine := newMockPodman(t, recorder)

	got := resolver.NegotiateShell(context.Background(), engine, "alpine-box", "")
	if got != resolver.ShellSh {
		t.Errorf("NegotiateShell() = %q, want sh", got)
	}
	recorder.AssertInvocationCount(t, 1)
}

func TestEngines_Version(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = "27.3.1\n"
	docker := newMockDocker(t, recorder)

	v, err := docker.Version(context.Background())
	if err != nil || v != "27.3.1" {
		t.Errorf("Version() = %q, %v", v, err)
	}
	recorder.AssertLastArgs(t, "version", "--format", "{{.Server.Version}}")

	precorder := NewMockCommandRecorder()
	precorder.Stdout = "5.2.0"
	podman := newMockPodman(t, precorder)
	if v, err := podman.Version(context.Background()); err != nil || v != "5.2.0" {
		t.Errorf("Version() = %q, %v", v, err)
	}
	precorder.AssertLastArgs(t, "version", "--format", "{{.Version}}")
}

func TestEngines_Available(t *testing.T) {
	t.Parallel()

	ok := NewMockCommandRecorder()
	if !newMockDocker(t, ok).Available() {
		t.Error("Available() = false, want true when version succeeds")
	}

	down := NewMockCommandRecorder()
	down.ExitCode = 1
	if newMockPodman(t, down).Available() {
		t.Error("Available() = true, want false when version fails")
	}

	missing := &DockerEngine{BaseCLIEngine: NewBaseCLIEngine("")}
	if missing.Available() {
		t.Error("Available() = true, want false without a binary")
	}
}
