// SPDX-License-Identifier: MPL-2.0

package autorun

import (
	"context"
	"errors"
	"testing"

	"github.com/gigachad-dev/gigachad/internal/resolver"
	"github.com/gigachad-dev/gigachad/internal/state"
	"github.com/gigachad-dev/gigachad/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := state.Open(state.MemoryPath)
	if err != nil {
		t.Fatalf("state.Open failed: %v", err)
	}
	t.Cleanup(func() { testutil.MustClose(t, store) })
	return NewService(store)
}

func ptr(s string) *string { return &s }

func TestGet_Unset(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	_, ok, err := s.Get(context.Background(), "/src/api")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected no auto-run entry")
	}
}

func TestSetGetClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestService(t)

	api := Config{ScriptName: "dev", ScriptType: resolver.ScriptTypePackage, ContainerName: ptr("api-1")}
	web := Config{ScriptName: "up", ScriptType: resolver.ScriptTypeCustom}

	if err := s.Set(ctx, "/src/api", api); err != nil {
		t.Fatalf("Set(api) failed: %v", err)
	}
	if err := s.Set(ctx, "/src/web", web); err != nil {
		t.Fatalf("Set(web) failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "/src/api")
	if err != nil || !ok {
		t.Fatalf("Get(api) = %v, %v", ok, err)
	}
	if diff := cmp.Diff(api, got); diff != "" {
		t.Errorf("api entry (-want +got):\n%s", diff)
	}
	if got.Container() != "api-1" {
		t.Errorf("Container() = %q", got.Container())
	}

	if err := s.Clear(ctx, "/src/api"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "/src/api"); ok {
		t.Error("api entry should be cleared")
	}

	got, ok, err = s.Get(ctx, "/src/web")
	if err != nil || !ok {
		t.Fatalf("Get(web) = %v, %v", ok, err)
	}
	if got.ContainerName != nil || got.Container() != "" {
		t.Errorf("web entry should have no container, got %+v", got)
	}

	if err := s.Clear(ctx, "/never/set"); err != nil {
		t.Errorf("Clear(unset) failed: %v", err)
	}
}

func TestSet_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestService(t)

	if err := s.Set(ctx, "/w", Config{ScriptType: resolver.ScriptTypePackage}); !errors.Is(err, ErrEmptyScriptName) {
		t.Errorf("error = %v, want ErrEmptyScriptName", err)
	}
	if err := s.Set(ctx, "/w", Config{ScriptName: "x", ScriptType: "npm"}); !errors.Is(err, resolver.ErrInvalidScriptType) {
		t.Errorf("error = %v, want ErrInvalidScriptType", err)
	}

	if err := s.Set(ctx, "/w", Config{ScriptName: "x", ScriptType: resolver.ScriptTypePackage, ContainerName: ptr("")}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _, _ := s.Get(ctx, "/w")
	if got.ContainerName != nil {
		t.Errorf("empty container name should be stored as none, got %q", *got.ContainerName)
	}
}
