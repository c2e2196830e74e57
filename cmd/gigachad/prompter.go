// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/gigachad-dev/gigachad/internal/app/execute"
	"github.com/gigachad-dev/gigachad/internal/tui"
)

// tuiPrompter shows the flow menus as huh selects.
type tuiPrompter struct {
	cfg tui.Config
}

func newTUIPrompter(cfg tui.Config) *tuiPrompter {
	return &tuiPrompter{cfg: cfg}
}

// ChooseScript shows the script menu. Recent outcomes are appended to the
// label; the returned value is the label so favorites and type prefixes can
// be stripped the same way for every caller.
func (p *tuiPrompter) ChooseScript(title string, options []execute.ScriptOption) (string, error) {
	opts := make([]tui.Option[string], len(options))
	for i, o := range options {
		opts[i] = tui.NewOption(scriptOptionTitle(o), o.Label)
	}
	answer, err := tui.Choose(tui.ChooseOptions[string]{
		Title:   title,
		Options: opts,
		Config:  p.cfg,
	})
	return answer, promptError(err)
}

// ChooseContainer shows the container menu.
func (p *tuiPrompter) ChooseContainer(title string, options []string) (string, error) {
	opts := make([]tui.Option[string], len(options))
	for i, o := range options {
		opts[i] = tui.NewOption(o, o)
	}
	answer, err := tui.Choose(tui.ChooseOptions[string]{
		Title:   title,
		Options: opts,
		Config:  p.cfg,
	})
	return answer, promptError(err)
}

func scriptOptionTitle(o execute.ScriptOption) string {
	switch {
	case o.LastSuccess == nil:
		return o.Label
	case *o.LastSuccess:
		return o.Label + " " + SuccessStyle.Render("✓")
	default:
		return o.Label + " " + ErrorStyle.Render("✗")
	}
}

func promptError(err error) error {
	if errors.Is(err, tui.ErrCancelled) {
		return execute.ErrCancelled
	}
	return err
}

// cancelled reports a dismissed menu and swallows the error.
func cancelled(w io.Writer, err error) error {
	if errors.Is(err, execute.ErrCancelled) {
		fmt.Fprintln(w, SubtitleStyle.Render("Cancelled."))
		return nil
	}
	return err
}
