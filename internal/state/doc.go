// SPDX-License-Identifier: MPL-2.0

// Package state persists small versioned JSON records in a SQLite database.
//
// Each logical store (history, auto-run) owns one key. A record saved under a
// different version than the reader expects is treated as absent, so format
// changes start from an empty record instead of failing.
package state
