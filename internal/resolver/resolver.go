// SPDX-License-Identifier: MPL-2.0

package resolver

import "fmt"

// DefaultPackageManager is used when Input.PackageManager is empty.
const DefaultPackageManager = "npm"

type (
	// CustomScripts answers the two questions the resolver asks about custom
	// scripts. Command returns "" when the name has no registered command.
	CustomScripts interface {
		IsCustom(name string) bool
		Command(name string) string
	}

	// Input is the fully gathered selection context for one resolution.
	Input struct {
		// Script is the script menu answer.
		Script ScriptSelection
		// Container is the container menu answer.
		Container ContainerSelection
		// DockerReachable is true when container discovery returned at least one name.
		DockerReachable bool
		// Shell is the shell to run inside the container. Zero value means bash.
		Shell ShellKind
		// PackageManager is the executable used for manifest scripts (npm or yarn).
		// Zero value means npm.
		PackageManager string
	}

	// ResolvedCommand is the shell command to hand to a terminal.
	ResolvedCommand struct {
		// Command is the literal shell command line.
		Command string
		// ScriptType classifies the selected script.
		ScriptType ScriptType
		// ContainerOnly is true for bare container shell sessions. Such sessions
		// are not recorded in history and are not auto-run candidates.
		ContainerOnly bool
	}
)

// Resolve produces the command for in. The second return value is false when
// the selection cannot be resolved: a container-only request without a
// container, a custom script with no command text, or a combination that no
// rule covers. Rules are evaluated in order and the first match wins.
// Container-only selections skip the custom-script lookup; every other
// selection asks custom.IsCustom exactly once.
func Resolve(in Input, custom CustomScripts) (ResolvedCommand, bool) {
	onlyContainer := in.Script.IsContainerOnly()
	if onlyContainer && in.Container.IsNone() {
		return ResolvedCommand{}, false
	}

	withoutContainer := in.Container.IsNone()
	isCustom := !onlyContainer && custom != nil && custom.IsCustom(in.Script.Name())

	scriptType := ScriptTypePackage
	if isCustom {
		scriptType = ScriptTypeCustom
	}

	shell := in.Shell
	if shell == "" {
		shell = ShellBash
	}
	pm := in.PackageManager
	if pm == "" {
		pm = DefaultPackageManager
	}
	script := in.Script.Name()
	ctr := in.Container.Name()

	var command string
	shellOnly := false

	switch {
	case onlyContainer && in.Container.IsConcrete():
		command = fmt.Sprintf("docker exec -it %s %s", ctr, shell)
		shellOnly = true
	case isCustom && (withoutContainer || in.Container.IsUnselected()):
		command = custom.Command(script)
	case isCustom && in.DockerReachable && in.Container.IsConcrete():
		if text := custom.Command(script); text != "" {
			command = execInContainer(ctr, shell, text)
		}
	case (withoutContainer && !isCustom) || (!in.DockerReachable && !onlyContainer):
		command = pm + " run " + script
	case !isCustom && in.Container.IsConcrete():
		command = execInContainer(ctr, shell, pm+" run "+script)
	}

	if command == "" {
		return ResolvedCommand{}, false
	}

	return ResolvedCommand{
		Command:       command,
		ScriptType:    scriptType,
		ContainerOnly: shellOnly,
	}, true
}

// execInContainer runs text in an interactive shell and keeps the shell open
// once text finishes.
func execInContainer(container string, shell ShellKind, text string) string {
	return fmt.Sprintf(`docker exec -it %s %s -c "%s && exec %s"`, container, shell, text, shell)
}
