// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

const (
	// SpinnerDots is the braille dots spinner.
	SpinnerDots SpinnerType = "dots"
	// SpinnerLine is the ASCII line spinner.
	SpinnerLine SpinnerType = "line"
	// SpinnerMiniDot is the single-dot spinner.
	SpinnerMiniDot SpinnerType = "minidot"
)

type (
	// SpinnerType names a spinner animation.
	SpinnerType string

	// SpinOptions configures a spinner.
	SpinOptions struct {
		Title  string
		Type   SpinnerType
		Config Config
	}
)

// SpinWithContext shows a spinner while action runs and returns its error.
// Accessible mode prints the title once instead of animating.
func SpinWithContext(ctx context.Context, opts SpinOptions, action func(context.Context) error) error {
	if opts.Config.Accessible {
		fmt.Fprintln(outputWriter(opts.Config), opts.Title)
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Title(opts.Title).
		Type(spinnerType(opts.Type)).
		Context(ctx).
		Action(func() { actionErr = action(ctx) }).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}

func spinnerType(t SpinnerType) spinner.Type {
	switch t {
	case SpinnerLine:
		return spinner.Line
	case SpinnerMiniDot:
		return spinner.MiniDot
	default:
		return spinner.Dots
	}
}
