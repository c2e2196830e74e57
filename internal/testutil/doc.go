// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by tests: environment and working
// directory overrides that restore themselves, a controllable clock, and a
// semaphore for tests that start real containers.
package testutil
