// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	NoScriptsFoundId Id = iota + 1
	ManifestParseFailedId
	ContainerEngineNotFoundId
	ConfigLoadFailedId
	UnresolvableSelectionId
	AutoRunContainerMissingId
	StateStoreFailedId
	ScriptExecutionFailedId
	ScriptNotFoundId
	ContainerNotRunningId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide with glamour. stylePath is a glamour style name
// ("dark", "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	noScriptsFoundIssue = &Issue{
		id: NoScriptsFoundId,
		mdMsg: `
# No scripts found!

There is nothing to pick: the workspace has no package.json scripts and no
custom scripts are visible for it.

## Things you can try:
- Add a ` + "`scripts`" + ` section to package.json:
~~~json
{ "scripts": { "test": "jest" } }
~~~

- Declare a custom script in your config (` + "`gigachad config path`" + `):
~~~cue
custom_scripts: [{name: "up", command: "docker compose up -d"}]
~~~

- Or in a ` + "`.gigachad.toml`" + ` next to package.json:
~~~toml
[[custom_scripts]]
name = "up"
command = "docker compose up -d"
~~~

- Check that a grouped script's ` + "`group`" + ` matches this folder's name`,
	}

	manifestParseFailedIssue = &Issue{
		id: ManifestParseFailedId,
		mdMsg: `
# Failed to parse package.json!

The manifest exists but could not be read as JSON, or its ` + "`scripts`" + `
field is not an object of strings.

## Things you can try:
- Validate the file:
~~~
$ node -e "require('./package.json')"
~~~

- Make sure every script value is a string`,
		extLinks: []HttpLink{"https://docs.npmjs.com/cli/configuring-npm/package-json#scripts"},
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# Container engine not found!

Neither Docker nor Podman answered. Container menus are hidden and every
script runs on the host.

## Things you can try:
- Start the Docker daemon, or install Docker or Podman
- Pick the engine explicitly in your config:
~~~cue
container_engine: "podman"
~~~`,
		extLinks: []HttpLink{"https://docs.docker.com/engine/install/", "https://podman.io/docs/installation"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The config file exists but could not be parsed or does not match the schema.

## Things you can try:
- Validate it:
~~~
$ gigachad config validate
~~~

- Print the effective configuration:
~~~
$ gigachad config show
~~~

- Start over from the defaults:
~~~
$ gigachad config init --force
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	unresolvableSelectionIssue = &Issue{
		id: UnresolvableSelectionId,
		mdMsg: `
# No script or container selected!

The combination you picked does not map to a command. The usual cause is
asking for a bare container shell together with "no container".

## Things you can try:
- Pick a running container for a container shell
- Pick a script when running on the host
- For custom scripts, make sure ` + "`command`" + ` is not empty`,
	}

	autoRunContainerMissingIssue = &Issue{
		id: AutoRunContainerMissingId,
		mdMsg: `
# Auto-run container is not running!

This workspace auto-runs a script inside a container that is not running
right now, so nothing was started.

## Things you can try:
- Start the container and run again:
~~~
$ gigachad autorun run
~~~

- Reconfigure or drop the auto-run:
~~~
$ gigachad autorun set
$ gigachad autorun clear
~~~`,
	}

	stateStoreFailedIssue = &Issue{
		id: StateStoreFailedId,
		mdMsg: `
# State store unavailable!

History, favorites and auto-run settings live in a SQLite file under the
state directory. It could not be opened or written.

## Things you can try:
- Check the permissions of the state directory (` + "`state_dir`" + ` in the config)
- Make sure no other process holds a write lock on ` + "`state.db`" + `
- Delete the file to start with empty history`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script execution failed!

The command could not be started by the selected terminal.

## Things you can try:
- Re-run with ` + "`--print`" + ` to see the exact command line
- Run it with ` + "`--verbose`" + ` for debug logs
- Try the built-in shell with ` + "`--virtual`" + ` to rule out host shell differences`,
	}

	scriptNotFoundIssue = &Issue{
		id: ScriptNotFoundId,
		mdMsg: `
# Script not found!

No manifest or custom script with that name is visible in this workspace.
Custom scripts with a ` + "`group`" + ` only show up in the workspace of that name.

## Things you can try:
- List what is available:
~~~
$ gigachad list
~~~

- Check the spelling, names are case sensitive`,
	}

	containerNotRunningIssue = &Issue{
		id: ContainerNotRunningId,
		mdMsg: `
# Container is not running!

The container you named is not in the list of running containers.

## Things you can try:
- List running containers:
~~~
$ gigachad containers
~~~

- Start it first, e.g. ` + "`docker start <name>`",
	}

	issues = map[Id]*Issue{
		noScriptsFoundIssue.Id():          noScriptsFoundIssue,
		manifestParseFailedIssue.Id():     manifestParseFailedIssue,
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		unresolvableSelectionIssue.Id():   unresolvableSelectionIssue,
		autoRunContainerMissingIssue.Id(): autoRunContainerMissingIssue,
		stateStoreFailedIssue.Id():        stateStoreFailedIssue,
		scriptExecutionFailedIssue.Id():   scriptExecutionFailedIssue,
		scriptNotFoundIssue.Id():          scriptNotFoundIssue,
		containerNotRunningIssue.Id():     containerNotRunningIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	all := slices.Collect(maps.Values(issues))
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id - b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}
