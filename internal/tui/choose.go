// SPDX-License-Identifier: MPL-2.0

package tui

import "github.com/charmbracelet/huh"

type (
	// Option is one menu entry.
	Option[T comparable] struct {
		Title string
		Value T
	}

	// ChooseOptions configures a single-choice menu.
	ChooseOptions[T comparable] struct {
		Title       string
		Description string
		Options     []Option[T]
		// Height limits the number of visible options (0 for auto).
		Height int
		Config Config
	}
)

// NewOption returns an Option.
func NewOption[T comparable](title string, value T) Option[T] {
	return Option[T]{Title: title, Value: value}
}

// Choose shows a single-choice menu and returns the chosen value. Aborting
// returns ErrCancelled; an empty option list returns ErrNoOptions.
func Choose[T comparable](opts ChooseOptions[T]) (T, error) {
	var result T
	if len(opts.Options) == 0 {
		return result, ErrNoOptions
	}

	sel := huh.NewSelect[T]().
		Title(opts.Title).
		Description(opts.Description).
		Options(huhOptions(opts.Options)...).
		Value(&result)
	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	if err := runForm(newForm(opts.Config, sel)); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func huhOptions[T comparable](options []Option[T]) []huh.Option[T] {
	out := make([]huh.Option[T], len(options))
	for i, opt := range options {
		out[i] = huh.NewOption(opt.Title, opt.Value)
	}
	return out
}
