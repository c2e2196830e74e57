// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gigachad-dev/gigachad/internal/issue"
)

func TestEngineType_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   EngineType
		wantErr bool
	}{
		{EngineTypeDocker, false},
		{EngineTypePodman, false},
		{"", true},
		{"nerdctl", true},
		{"Docker", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidEngineType) {
				t.Errorf("error should wrap ErrInvalidEngineType, got %v", err)
			}
			var typed *InvalidEngineTypeError
			if !errors.As(err, &typed) || typed.Value != tt.value {
				t.Errorf("error should be *InvalidEngineTypeError{%q}, got %v", tt.value, err)
			}
		})
	}
}

func TestNewEngine_InvalidType(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine("lxc"); !errors.Is(err, ErrInvalidEngineType) {
		t.Errorf("NewEngine(lxc) error = %v, want ErrInvalidEngineType", err)
	}
}

func TestNewEngine_NoneAvailable(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.ExitCode = 1
	_, err := NewEngine(EngineTypePodman, WithBinaryPath("/nonexistent/engine"), WithExecCommand(recorder.ContextCommandFunc(t)))
	if !errors.Is(err, ErrEngineNotAvailable) {
		t.Fatalf("NewEngine() error = %v, want ErrEngineNotAvailable", err)
	}
	ae, ok := issue.AsActionable(err)
	if !ok || ae.Issue != issue.ContainerEngineNotFoundId {
		t.Errorf("NewEngine() error should link ContainerEngineNotFoundId, got %v", err)
	}
	// podman first, then docker fallback
	recorder.AssertInvocationCount(t, 2)
	if got := recorder.Invocations[0].Args; !cmp.Equal(got, []string{"version", "--format", "{{.Version}}"}) {
		t.Errorf("first probe args = %q, want podman version", got)
	}
}

func TestNewEngine_FallsBack(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.FailOnArg = "{{.Server.Version}}"
	engine, err := NewEngine(EngineTypeDocker, WithBinaryPath("/opt/bin/engine"), WithExecCommand(recorder.ContextCommandFunc(t)))
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	if engine.Name() != "podman" {
		t.Errorf("NewEngine(docker) = %s, want podman fallback", engine.Name())
	}
}

func TestParseNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank lines only", "\n\n \n", nil},
		{"single", "web\n", []string{"web"}},
		{"crlf and padding", "web\r\n db \r\n", []string{"web", "db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, parseNames(tt.in)); diff != "" {
				t.Errorf("parseNames() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
