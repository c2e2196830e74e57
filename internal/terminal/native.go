// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// NativeSink runs commands through the system shell, attached to the
// caller's terminal.
type NativeSink struct {
	// Shell overrides shell detection.
	Shell string
	io    IO
}

// NewNativeSink creates a native sink attached to streams.
func NewNativeSink(streams IO) *NativeSink {
	return &NativeSink{io: streams}
}

// Kind returns SinkNative.
func (s *NativeSink) Kind() SinkKind { return SinkNative }

// Run executes the session's command and waits for it to exit.
func (s *NativeSink) Run(ctx context.Context, sess Session) Result {
	start := time.Now()
	if strings.TrimSpace(sess.Command) == "" {
		return errorResult(ErrEmptyCommand, start)
	}

	shell, err := s.shell()
	if err != nil {
		return errorResult(err, start)
	}

	args := append(shellArgs(shell), sess.Command)
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Dir = sess.Dir
	cmd.Stdin = s.io.Stdin
	cmd.Stdout = s.io.Stdout
	cmd.Stderr = s.io.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{ExitCode: ExitCode(exitErr.ExitCode()), Duration: time.Since(start)}
		}
		return errorResult(fmt.Errorf("failed to execute command: %w", err), start)
	}
	return Result{Duration: time.Since(start)}
}

func (s *NativeSink) shell() (string, error) {
	if s.Shell != "" {
		return s.Shell, nil
	}

	switch runtime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", errors.New("no shell found")
	}
}

func shellArgs(shell string) []string {
	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}
