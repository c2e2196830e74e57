// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

const (
	// SinkNative runs commands through the host shell.
	SinkNative SinkKind = "native"
	// SinkVirtual runs commands through the embedded shell interpreter.
	SinkVirtual SinkKind = "virtual"
	// SinkClipboard copies commands to the system clipboard.
	SinkClipboard SinkKind = "clipboard"
	// SinkPrint writes commands to stdout.
	SinkPrint SinkKind = "print"
)

var (
	// ErrInvalidSinkKind is the sentinel error wrapped by InvalidSinkKindError.
	ErrInvalidSinkKind = errors.New("invalid sink kind")
	// ErrEmptyCommand is returned when a session has no command text.
	ErrEmptyCommand = errors.New("command must not be empty")
)

type (
	// SinkKind names a Sink implementation.
	SinkKind string

	// InvalidSinkKindError is returned when a SinkKind value is not recognized.
	InvalidSinkKindError struct {
		Value SinkKind
	}

	// ExitCode represents a process exit status code. The zero value means
	// success.
	ExitCode int

	// Session is one command handed to a sink.
	Session struct {
		// Name labels the session header, e.g. the script or container name.
		Name string
		// Command is the full shell command text.
		Command string
		// Dir is the working directory; empty means the current directory.
		Dir string
	}

	// Result is the outcome of handing a session to a sink.
	Result struct {
		ExitCode ExitCode
		Duration time.Duration
		// Error is set when the command could not be started at all.
		Error error
	}

	// IO groups the standard streams a sink attaches to.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Sink delivers a resolved command.
	Sink interface {
		Kind() SinkKind
		Run(ctx context.Context, s Session) Result
	}
)

// StdIO returns the process's standard streams.
func StdIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Error implements the error interface.
func (e *InvalidSinkKindError) Error() string {
	return fmt.Sprintf("invalid sink kind %q (valid: native, virtual, clipboard, print)", e.Value)
}

// Unwrap returns ErrInvalidSinkKind for errors.Is() compatibility.
func (e *InvalidSinkKindError) Unwrap() error { return ErrInvalidSinkKind }

// Validate returns an error if the SinkKind is not a known sink.
func (k SinkKind) Validate() error {
	switch k {
	case SinkNative, SinkVirtual, SinkClipboard, SinkPrint:
		return nil
	default:
		return &InvalidSinkKindError{Value: k}
	}
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Success reports whether the command started and exited with status 0.
func (r Result) Success() bool {
	return r.Error == nil && r.ExitCode == 0
}

// New returns the sink for kind attached to streams.
func New(kind SinkKind, streams IO) (Sink, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	switch kind {
	case SinkVirtual:
		return NewVirtualSink(streams), nil
	case SinkClipboard:
		return NewClipboardSink(streams.Stderr), nil
	case SinkPrint:
		return NewPrintSink(streams.Stdout), nil
	default:
		return NewNativeSink(streams), nil
	}
}

func errorResult(err error, start time.Time) Result {
	return Result{ExitCode: 1, Duration: time.Since(start), Error: err}
}
