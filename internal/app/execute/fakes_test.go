// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/gigachad-dev/gigachad/internal/autorun"
	"github.com/gigachad-dev/gigachad/internal/history"
	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/scripts"
	"github.com/gigachad-dev/gigachad/internal/state"
	"github.com/gigachad-dev/gigachad/internal/terminal"
	"github.com/gigachad-dev/gigachad/internal/testutil"
	"github.com/gigachad-dev/gigachad/internal/workspace"

	"github.com/charmbracelet/log"
)

const testManifest = `{
  "name": "web",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "test": "vitest"
  }
}`

type (
	fakeEngine struct {
		running []string
		// broken lists shells whose probe fails.
		broken []resolver.ShellKind
		err    error
	}

	// scriptedPrompter answers menus from queues and records what it was shown.
	scriptedPrompter struct {
		scripts    []string
		containers []string
		err        error

		shownScripts    [][]ScriptOption
		shownContainers [][]string
	}

	recordingSink struct {
		mu       sync.Mutex
		sessions []terminal.Session
		result   terminal.Result
	}

	fixture struct {
		ws      workspace.Workspace
		svc     *Service
		engine  *fakeEngine
		prompt  *scriptedPrompter
		sink    *recordingSink
		history *history.Service
		autorun *autorun.Service
		out     *lockedBuffer
	}

	lockedBuffer struct {
		mu  sync.Mutex
		buf []byte
	}
)

func (e *fakeEngine) Name() string    { return "docker" }
func (e *fakeEngine) Available() bool { return e.err == nil }

func (e *fakeEngine) ListRunning(context.Context) ([]string, error) {
	return slices.Clone(e.running), e.err
}

func (e *fakeEngine) ProbeShell(_ context.Context, _ string, shell resolver.ShellKind) error {
	if slices.Contains(e.broken, shell) {
		return errors.New("exec failed")
	}
	return nil
}

func (p *scriptedPrompter) ChooseScript(_ string, options []ScriptOption) (string, error) {
	p.shownScripts = append(p.shownScripts, options)
	if p.err != nil {
		return "", p.err
	}
	if len(p.scripts) == 0 {
		return "", ErrCancelled
	}
	answer := p.scripts[0]
	p.scripts = p.scripts[1:]
	return answer, nil
}

func (p *scriptedPrompter) ChooseContainer(_ string, options []string) (string, error) {
	p.shownContainers = append(p.shownContainers, options)
	if len(p.containers) == 0 {
		return "", ErrCancelled
	}
	answer := p.containers[0]
	p.containers = p.containers[1:]
	return answer, nil
}

func (s *recordingSink) Kind() terminal.SinkKind { return terminal.SinkPrint }

func (s *recordingSink) Run(_ context.Context, sess terminal.Session) terminal.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sess)
	return s.result
}

func (s *recordingSink) commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Command
	}
	return out
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// newFixture builds a service over a temporary workspace holding
// testManifest and one global custom script named "up".
func newFixture(t *testing.T, running ...string) *fixture {
	t.Helper()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, scripts.ManifestFile), testManifest)

	store, err := state.Open(state.MemoryPath)
	if err != nil {
		t.Fatalf("state.Open failed: %v", err)
	}
	t.Cleanup(func() { testutil.MustClose(t, store) })

	f := &fixture{
		ws:      workspace.New(dir),
		engine:  &fakeEngine{running: running},
		prompt:  &scriptedPrompter{},
		sink:    &recordingSink{result: terminal.Result{Duration: time.Second}},
		history: history.NewService(store, history.WithClock(testutil.NewFakeClock(time.Time{}))),
		autorun: autorun.NewService(store),
		out:     &lockedBuffer{},
	}
	f.svc = New(Dependencies{
		Engine:   f.engine,
		History:  f.history,
		AutoRun:  f.autorun,
		Prompter: f.prompt,
		Sink:     f.sink,
		Logger:   log.New(&lockedBuffer{}),
		Out:      f.out,
	}, Options{
		CustomScripts: []scripts.CustomScript{{Name: "up", Command: "docker compose up -d"}},
	})
	return f
}

func (f *fixture) recent(t *testing.T) []history.ScriptExecution {
	t.Helper()
	execs, err := f.history.RecentHistory(context.Background(), f.ws.Root, 10)
	if err != nil {
		t.Fatalf("RecentHistory failed: %v", err)
	}
	return execs
}

// readOnlyStore loads nothing and rejects every write.
type readOnlyStore struct{ err error }

func (s *readOnlyStore) Load(context.Context, string, int, any) (bool, error) { return false, nil }

func (s *readOnlyStore) Save(context.Context, string, int, any) error { return s.err }
