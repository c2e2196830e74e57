// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

// stubRender swaps the glamour renderer for the identity function.
// Tests using it must not run in parallel.
func stubRender(t *testing.T) {
	t.Helper()
	original := render
	render = func(in, _ string) (string, error) { return in, nil }
	t.Cleanup(func() { render = original })
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{NoScriptsFoundId, false, "No scripts found"},
		{ManifestParseFailedId, false, "Failed to parse package.json"},
		{ContainerEngineNotFoundId, false, "Container engine not found"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{UnresolvableSelectionId, false, "No script or container selected"},
		{AutoRunContainerMissingId, false, "Auto-run container is not running"},
		{StateStoreFailedId, false, "State store unavailable"},
		{ScriptExecutionFailedId, false, "Script execution failed"},
		{ScriptNotFoundId, false, "Script not found"},
		{ContainerNotRunningId, false, "Container is not running"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			got := Get(tt.id)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Get(%d) = %v, want nil", tt.id, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if got.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, got.Id())
			}
			if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(all), len(issues))
	}
	for i, is := range all {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), i+1)
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty MarkdownMsg", is.Id())
		}
	}
}

func TestIssue_ExtLinksAreCloned(t *testing.T) {
	t.Parallel()

	is := Get(ContainerEngineNotFoundId)
	links := is.ExtLinks()
	if len(links) == 0 {
		t.Fatal("expected external links")
	}
	links[0] = "mutated"
	if is.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() should return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	stubRender(t)

	withLinks, err := Get(ContainerEngineNotFoundId).Render("")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(withLinks, "See also") || !strings.Contains(withLinks, "docs.docker.com") {
		t.Errorf("Render() with links missing See also section:\n%s", withLinks)
	}

	noLinks, err := Get(UnresolvableSelectionId).Render("")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(noLinks, "See also") {
		t.Errorf("Render() without links should not contain See also:\n%s", noLinks)
	}
}

func TestAllIssuesRenderWithGlamour(t *testing.T) {
	t.Parallel()

	for _, is := range Values() {
		out, err := is.Render("notty")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", is.Id(), err)
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("issue %d rendered to empty string", is.Id())
		}
	}
}
