// SPDX-License-Identifier: MPL-2.0

// Package resolver turns a fully gathered selection into the exact shell command
// that gigachad hands to a terminal.
//
// Resolve is pure: it performs no I/O, keeps no state between calls, and only
// consults the CustomScripts collaborator for custom-script membership and
// command text. Everything that may block (container discovery, shell probing,
// prompting) happens before Resolve is called and is fed in through Input.
//
// Resolved commands are assembled from trusted configuration. No shell quoting
// or escaping is applied to script names, container names, or custom command
// text.
package resolver
