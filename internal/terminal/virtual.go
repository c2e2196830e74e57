// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualSink runs commands through the embedded mvdan/sh interpreter, so a
// POSIX shell is not required on the host.
type VirtualSink struct {
	io IO
	// Env overrides the inherited environment when non-nil.
	Env []string
}

// NewVirtualSink creates a virtual sink attached to streams.
func NewVirtualSink(streams IO) *VirtualSink {
	return &VirtualSink{io: streams}
}

// Kind returns SinkVirtual.
func (s *VirtualSink) Kind() SinkKind { return SinkVirtual }

// Run interprets the session's command.
func (s *VirtualSink) Run(ctx context.Context, sess Session) Result {
	start := time.Now()
	if strings.TrimSpace(sess.Command) == "" {
		return errorResult(ErrEmptyCommand, start)
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(sess.Command), "command")
	if err != nil {
		return errorResult(fmt.Errorf("failed to parse command: %w", err), start)
	}

	env := s.Env
	if env == nil {
		env = os.Environ()
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(s.io.Stdin, s.io.Stdout, s.io.Stderr),
	}
	if sess.Dir != "" {
		opts = append(opts, interp.Dir(sess.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return errorResult(fmt.Errorf("failed to create interpreter: %w", err), start)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return Result{ExitCode: ExitCode(exitStatus), Duration: time.Since(start)}
		}
		return errorResult(fmt.Errorf("command execution failed: %w", err), start)
	}
	return Result{Duration: time.Since(start)}
}
