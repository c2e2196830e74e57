// SPDX-License-Identifier: MPL-2.0

// Package terminal hands a resolved command to its destination: the host
// shell, the embedded mvdan/sh interpreter, the clipboard, or plain output.
//
// Every Sink returns a Result rather than an error for non-zero exits, so the
// caller can record the outcome and propagate the exit code.
package terminal
