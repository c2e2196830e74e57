// SPDX-License-Identifier: MPL-2.0

package resolver

import "context"

// ShellProber checks whether a shell can be started inside a running container.
// Implementations run a zero-cost command and return a non-nil error on any
// failure; "container not running" and "shell not installed" are not
// distinguished.
type ShellProber interface {
	ProbeShell(ctx context.Context, container string, shell ShellKind) error
}

// NegotiateShell picks the shell for container. A valid preferred shell is used
// as-is without probing. Otherwise bash is probed once and sh is the fallback.
func NegotiateShell(ctx context.Context, prober ShellProber, container string, preferred ShellKind) ShellKind {
	if preferred.Validate() == nil {
		return preferred
	}
	if prober == nil || container == "" {
		return ShellBash
	}
	if err := prober.ProbeShell(ctx, container, ShellBash); err != nil {
		return ShellSh
	}
	return ShellBash
}
