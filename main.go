// SPDX-License-Identifier: MPL-2.0

// gigachad is a command palette for workspace scripts: pick a script, pick a
// container, run it.
package main

import cmd "github.com/gigachad-dev/gigachad/cmd/gigachad"

func main() {
	cmd.Execute()
}
