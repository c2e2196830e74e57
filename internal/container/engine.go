// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/gigachad-dev/gigachad/internal/issue"
	"github.com/gigachad-dev/gigachad/internal/resolver"
)

const (
	EngineTypePodman EngineType = "podman"
	EngineTypeDocker EngineType = "docker"
)

var (
	// ErrInvalidEngineType is the sentinel error wrapped by InvalidEngineTypeError.
	ErrInvalidEngineType = errors.New("invalid container engine type")
	// ErrEngineNotAvailable is the sentinel error wrapped by EngineNotAvailableError.
	ErrEngineNotAvailable = errors.New("container engine not available")
)

type (
	// Engine is the subset of container engine operations the CLI needs.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available reports whether the engine binary exists and its daemon answers.
		Available() bool
		// ListRunning returns the names of running containers in engine order.
		ListRunning(ctx context.Context) ([]string, error)
		// ProbeShell starts shell inside container with a no-op command.
		ProbeShell(ctx context.Context, container string, shell resolver.ShellKind) error
	}

	// EngineType identifies the container engine type.
	EngineType string

	// InvalidEngineTypeError is returned when an EngineType is not docker or podman.
	InvalidEngineTypeError struct {
		Value EngineType
	}

	// EngineNotAvailableError is returned when neither the preferred engine nor
	// its fallback is usable.
	EngineNotAvailableError struct {
		Engine EngineType
		Reason string
	}
)

// String returns the string representation of the EngineType.
func (t EngineType) String() string { return string(t) }

// Validate returns an error if the EngineType is not docker or podman.
func (t EngineType) Validate() error {
	switch t {
	case EngineTypeDocker, EngineTypePodman:
		return nil
	default:
		return &InvalidEngineTypeError{Value: t}
	}
}

// Error implements the error interface.
func (e *InvalidEngineTypeError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

// Unwrap returns ErrInvalidEngineType for errors.Is() compatibility.
func (e *InvalidEngineTypeError) Unwrap() error { return ErrInvalidEngineType }

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrEngineNotAvailable for errors.Is() compatibility.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// NewEngine returns the preferred engine, or the other one when the preferred
// engine is unavailable. The zero EngineType means docker.
func NewEngine(preferred EngineType, opts ...BaseCLIEngineOption) (Engine, error) {
	if preferred == "" {
		preferred = EngineTypeDocker
	}
	if err := preferred.Validate(); err != nil {
		return nil, err
	}

	candidates := []Engine{NewDockerEngine(opts...), NewPodmanEngine(opts...)}
	if preferred == EngineTypePodman {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, engine := range candidates {
		if engine.Available() {
			return engine, nil
		}
	}

	fallback := candidates[1].Name()
	return nil, issue.NewErrorContext().
		WithOperation("find a container engine").
		WithResource(preferred.String()).
		WithSuggestion("Start the " + preferred.String() + " daemon or install " + fallback).
		WithIssue(issue.ContainerEngineNotFoundId).
		Wrap(&EngineNotAvailableError{
			Engine: preferred,
			Reason: preferred.String() + " is not installed or not running, and " + fallback + " fallback is also not available",
		}).
		BuildError()
}
