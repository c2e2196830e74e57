// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
)

// ClipboardSink copies the command to the system clipboard instead of running
// it.
type ClipboardSink struct {
	notify   io.Writer
	writeAll func(string) error
}

// NewClipboardSink creates a clipboard sink. A confirmation line is written
// to notify when it is non-nil.
func NewClipboardSink(notify io.Writer) *ClipboardSink {
	return &ClipboardSink{notify: notify, writeAll: clipboard.WriteAll}
}

// Kind returns SinkClipboard.
func (s *ClipboardSink) Kind() SinkKind { return SinkClipboard }

// Run copies the session's command.
func (s *ClipboardSink) Run(_ context.Context, sess Session) Result {
	start := time.Now()
	if sess.Command == "" {
		return errorResult(ErrEmptyCommand, start)
	}
	if err := s.writeAll(sess.Command); err != nil {
		return errorResult(fmt.Errorf("failed to copy to clipboard: %w", err), start)
	}
	if s.notify != nil {
		fmt.Fprintf(s.notify, "Copied to clipboard: %s\n", sess.Command)
	}
	return Result{Duration: time.Since(start)}
}

// PrintSink writes the command to an output stream, one per line.
type PrintSink struct {
	out io.Writer
}

// NewPrintSink creates a print sink writing to out.
func NewPrintSink(out io.Writer) *PrintSink {
	return &PrintSink{out: out}
}

// Kind returns SinkPrint.
func (s *PrintSink) Kind() SinkKind { return SinkPrint }

// Run prints the session's command.
func (s *PrintSink) Run(_ context.Context, sess Session) Result {
	start := time.Now()
	if sess.Command == "" {
		return errorResult(ErrEmptyCommand, start)
	}
	if _, err := fmt.Fprintln(s.out, sess.Command); err != nil {
		return errorResult(err, start)
	}
	return Result{Duration: time.Since(start)}
}
