// SPDX-License-Identifier: MPL-2.0

package resolver

import "fmt"

const (
	scriptNamed scriptKind = iota
	scriptContainerOnly
)

const (
	// containerUnselected is the zero value: the user was never asked for a
	// container, usually because no running containers were discovered.
	containerUnselected containerKind = iota
	containerNone
	containerConcrete
)

type (
	scriptKind    uint8
	containerKind uint8

	// ScriptSelection is what the user picked from the script menu: either a
	// named script or a bare container shell with no script.
	ScriptSelection struct {
		kind scriptKind
		name string
	}

	// ContainerSelection is what the user picked from the container menu: a
	// concrete running container, an explicit "no container", or nothing at all.
	// The zero value is Unselected.
	ContainerSelection struct {
		kind containerKind
		name string
	}

	// Sentinels are the menu labels that stand for "container only" in the script
	// menu and "no container" in the container menu. They are only used to
	// translate menu strings into selections and never reach Resolve.
	Sentinels struct {
		ContainerOnly string
		NoContainer   string
	}
)

// NamedScript selects the script with the given name.
func NamedScript(name string) ScriptSelection {
	return ScriptSelection{kind: scriptNamed, name: name}
}

// ContainerShellOnly selects a bare shell session in the chosen container.
func ContainerShellOnly() ScriptSelection {
	return ScriptSelection{kind: scriptContainerOnly}
}

// IsContainerOnly reports whether no script was selected, only a container shell.
func (s ScriptSelection) IsContainerOnly() bool { return s.kind == scriptContainerOnly }

// Name returns the selected script name, or "" for a container-only selection.
func (s ScriptSelection) Name() string { return s.name }

// String implements fmt.Stringer.
func (s ScriptSelection) String() string {
	if s.IsContainerOnly() {
		return "<container only>"
	}
	return s.name
}

// InContainer selects the running container with the given name.
// An empty name yields Unselected.
func InContainer(name string) ContainerSelection {
	if name == "" {
		return ContainerSelection{}
	}
	return ContainerSelection{kind: containerConcrete, name: name}
}

// NoContainer selects running on the host, outside any container.
func NoContainer() ContainerSelection {
	return ContainerSelection{kind: containerNone}
}

// Unselected is the selection used when the container question was never asked.
func Unselected() ContainerSelection {
	return ContainerSelection{}
}

// IsConcrete reports whether a named container was selected.
func (c ContainerSelection) IsConcrete() bool { return c.kind == containerConcrete }

// IsNone reports whether "no container" was explicitly selected.
func (c ContainerSelection) IsNone() bool { return c.kind == containerNone }

// IsUnselected reports whether no container answer exists.
func (c ContainerSelection) IsUnselected() bool { return c.kind == containerUnselected }

// Name returns the container name for a concrete selection, or "".
func (c ContainerSelection) Name() string { return c.name }

// String implements fmt.Stringer.
func (c ContainerSelection) String() string {
	switch c.kind {
	case containerConcrete:
		return c.name
	case containerNone:
		return "<no container>"
	default:
		return "<unselected>"
	}
}

// GoString implements fmt.GoStringer so test failures print the variant.
func (c ContainerSelection) GoString() string {
	return fmt.Sprintf("resolver.ContainerSelection(%s)", c.String())
}

// ParseSelection translates raw menu answers into selections. The sentinels
// are compared by exact string equality; an empty container answer means the
// container question was never asked.
func ParseSelection(script, container string, s Sentinels) (ScriptSelection, ContainerSelection) {
	sel := NamedScript(script)
	if s.ContainerOnly != "" && script == s.ContainerOnly {
		sel = ContainerShellOnly()
	}

	var ctr ContainerSelection
	switch {
	case container == "":
		ctr = Unselected()
	case s.NoContainer != "" && container == s.NoContainer:
		ctr = NoContainer()
	default:
		ctr = InContainer(container)
	}
	return sel, ctr
}
