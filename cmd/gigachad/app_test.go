// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigachad-dev/gigachad/internal/app/execute"
	"github.com/gigachad-dev/gigachad/internal/config"
	"github.com/gigachad-dev/gigachad/internal/container"
	"github.com/gigachad-dev/gigachad/internal/issue"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/terminal"
	"github.com/gigachad-dev/gigachad/internal/testutil"

	"github.com/charmbracelet/fang"
	"github.com/google/go-cmp/cmp"
)

type (
	stubEngine struct{ running []string }

	stubPrompter struct {
		script    string
		container string
		err       error
		shown     []string
	}
)

func (e *stubEngine) Name() string    { return "docker" }
func (e *stubEngine) Available() bool { return true }

func (e *stubEngine) ListRunning(context.Context) ([]string, error) { return e.running, nil }

func (e *stubEngine) ProbeShell(context.Context, string, resolver.ShellKind) error { return nil }

func (p *stubPrompter) ChooseScript(_ string, options []execute.ScriptOption) (string, error) {
	for _, o := range options {
		p.shown = append(p.shown, o.Label)
	}
	return p.script, p.err
}

func (p *stubPrompter) ChooseContainer(string, []string) (string, error) {
	return p.container, p.err
}

// newTestApp isolates home, config and state under a temp dir and returns an
// App whose workspace holds a small package.json.
func newTestApp(t *testing.T, prompter execute.Prompter, running ...string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	home := testutil.IsolatedHome(t)
	testutil.MustSetenv(t, "APPDATA", filepath.Join(home, "config"))
	testutil.MustSetenv(t, "LOCALAPPDATA", filepath.Join(home, "state"))
	config.SetConfigDirOverride(filepath.Join(home, "config"))
	t.Cleanup(config.Reset)

	ws := filepath.Join(t.TempDir(), "web")
	testutil.MustWriteFile(t, filepath.Join(ws, "package.json"), `{"scripts": {"dev": "vite", "build": "vite build"}}`)

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Prompter: prompter,
		NewEngine: func(container.EngineType) (container.Engine, error) {
			return &stubEngine{running: running}, nil
		},
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	app.flags.dir = ws
	app.flags.print = true
	return app, &stdout, &stderr
}

// Not parallel: these tests change HOME and the config directory override.

func TestRunInteractive(t *testing.T) {
	prompter := &stubPrompter{script: "[json] build", container: "api"}
	app, stdout, stderr := newTestApp(t, prompter, "api")

	if err := runInteractive(context.Background(), app); err != nil {
		t.Fatalf("runInteractive failed: %v", err)
	}

	want := `docker exec -it api bash -c "npm run build && exec bash"` + "\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if !strings.Contains(stderr.String(), "[gigachad]: build") {
		t.Errorf("stderr should carry the session header, got %q", stderr.String())
	}
	wantMenu := []string{"[json] dev", "[json] build", execute.ContainerOnlyOption}
	if diff := cmp.Diff(wantMenu, prompter.shown); diff != "" {
		t.Errorf("script menu mismatch (-want +got):\n%s", diff)
	}
}

func TestRunInteractive_Cancelled(t *testing.T) {
	app, stdout, stderr := newTestApp(t, &stubPrompter{err: execute.ErrCancelled}, "api")

	if err := runInteractive(context.Background(), app); err != nil {
		t.Fatalf("cancellation should not be an error, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should run, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Cancelled.") {
		t.Errorf("stderr = %q, want a cancellation notice", stderr.String())
	}
}

func TestRunNamed_StateStoreFailure(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	blocker := filepath.Join(t.TempDir(), "file")
	testutil.MustWriteFile(t, blocker, "")
	testutil.MustSetenv(t, "GIGACHAD_STATE_DIR", filepath.Join(blocker, "nested"))

	err := runNamed(context.Background(), app, execute.NamedRequest{Script: "dev"})
	ae, ok := issue.AsActionable(err)
	if !ok || ae.Issue != issue.StateStoreFailedId {
		t.Fatalf("expected StateStoreFailed issue, got %v", err)
	}
}

func TestConfirmClear_NonInteractive(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	err := withSession(context.Background(), app, sessionOptions{}, func(s *session) error {
		return confirmClear(app, s, "Forget every recorded run?", false)
	})
	if err != nil {
		t.Errorf("piped stdin should skip the prompt, got %v", err)
	}
}

func TestWorkspace_FromWorkingDirectory(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	root := app.flags.dir
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.MustChdir(t, nested)
	app.flags.dir = ""

	ws, err := app.workspace()
	if err != nil {
		t.Fatalf("workspace failed: %v", err)
	}
	got, _ := filepath.EvalSymlinks(ws.Root)
	want, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("Root = %q, want %q", got, want)
	}
}

func TestSinkKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   globalFlags
		want    terminal.SinkKind
		wantErr bool
	}{
		{"default", globalFlags{}, terminal.SinkNative, false},
		{"copy", globalFlags{copy: true}, terminal.SinkClipboard, false},
		{"print", globalFlags{print: true}, terminal.SinkPrint, false},
		{"virtual", globalFlags{virtual: true}, terminal.SinkVirtual, false},
		{"conflict", globalFlags{print: true, virtual: true}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := &App{flags: tt.flags}
			got, err := app.sinkKind()
			if (err != nil) != tt.wantErr {
				t.Fatalf("sinkKind() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("sinkKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	app := NewApp(Dependencies{Stderr: &bytes.Buffer{}})

	t.Run("actionable", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := issue.NewErrorContext().
			WithOperation("find script").
			WithResource("deploy").
			WithSuggestion("List available scripts with 'gigachad list'").
			Wrap(execute.ErrUnknownScript).
			BuildError()
		app.renderError(&buf, fang.Styles{}, err)
		if !strings.Contains(buf.String(), "List available scripts") {
			t.Errorf("suggestions missing from %q", buf.String())
		}
	})

	t.Run("exit status only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app.renderError(&buf, fang.Styles{}, &ExitError{Code: 2})
		if buf.Len() != 0 {
			t.Errorf("bare exit status should print nothing, got %q", buf.String())
		}
	})
}
