// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the gigachad command tree.
//
// Every command is built by a newXCommand(app) constructor. App is the
// composition root: it loads configuration, opens the state store and wires
// the services from internal/ for the duration of one invocation.
package cmd
