// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gigachad-dev/gigachad/internal/resolver"
)

// namesFormat is the Go template passed to `ps --format`: one name per line.
const namesFormat = "{{.Names}}"

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine holds what Docker and Podman share: the binary, the argument
	// builders and command execution.
	BaseCLIEngine struct {
		name        string // engine name for error messages
		binaryPath  string
		execCommand ExecCommandFunc
	}
)

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.name = name
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// WithBinaryPath overrides the binary found on PATH.
func WithBinaryPath(path string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.binaryPath = path
	}
}

// NewBaseCLIEngine creates a new base engine with the given binary path.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// PsArgs builds the arguments that list running container names.
//
// Generated command: <binary> ps --format {{.Names}}
func (e *BaseCLIEngine) PsArgs() []string {
	return []string{"ps", "--format", namesFormat}
}

// ProbeArgs builds the arguments that start shell in container and exit at once.
//
// Generated command: <binary> exec <container> <shell> -c exit
func (e *BaseCLIEngine) ProbeArgs(container string, shell resolver.ShellKind) []string {
	return []string{"exec", container, shell.String(), "-c", "exit"}
}

// ListRunning returns the names of running containers. Blank lines are dropped
// and the engine's order is kept.
func (e *BaseCLIEngine) ListRunning(ctx context.Context) ([]string, error) {
	out, err := e.RunCommandWithOutput(ctx, e.PsArgs()...)
	if err != nil {
		return nil, err
	}
	return parseNames(out), nil
}

// ProbeShell reports whether shell can be started inside container. Any
// failure is returned as is; a missing shell and a stopped container look the same.
func (e *BaseCLIEngine) ProbeShell(ctx context.Context, container string, shell resolver.ShellKind) error {
	if err := shell.Validate(); err != nil {
		return err
	}
	return e.RunCommandStatus(ctx, e.ProbeArgs(container, shell)...)
}

// RunCommandStatus executes a command and returns only the error status.
func (e *BaseCLIEngine) RunCommandStatus(ctx context.Context, args ...string) error {
	cmd := e.CreateCommand(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return nil
}

// RunCommandWithOutput executes a command with stdout captured to a buffer.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.CreateCommand(ctx, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command %s %v failed: %w: %s", e.binaryPath, args, err, msg)
		}
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// CreateCommand creates an exec.Cmd for the given arguments.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

func parseNames(out string) []string {
	var names []string
	for line := range strings.SplitSeq(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}
