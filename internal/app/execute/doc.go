// SPDX-License-Identifier: MPL-2.0

// Package execute orchestrates the pick-and-run flows: gather scripts and
// running containers, ask the user, resolve the selection into a command,
// hand it to a terminal sink, and record the outcome in history.
//
// The package owns no terminal UI. Menus go through the Prompter interface and
// execution through terminal.Sink, so every flow is testable with fakes.
package execute
