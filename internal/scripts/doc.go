// SPDX-License-Identifier: MPL-2.0

// Package scripts finds the scripts a workspace offers.
//
// Two sources exist. Manifest scripts are the keys of the "scripts" object in
// package.json, kept in declaration order. Custom scripts are user-declared
// name/command pairs from the global config and the optional .gigachad.toml
// project file; a custom script with a group is only listed in the workspace
// whose folder name matches the group.
//
// Catalog implements resolver.CustomScripts. Command text is never escaped or
// rewritten; ValidateCommand only checks that it parses as a shell program.
package scripts
