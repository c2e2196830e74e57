// SPDX-License-Identifier: MPL-2.0

// Package tui wraps charmbracelet/huh prompts used by the interactive flows:
// single-choice menus, confirmations and a spinner around slow discovery.
//
// Prompts switch to huh's accessible mode when stdin is not a terminal or the
// ACCESSIBLE environment variable is set, so they keep working in pipes and
// screen readers.
package tui
