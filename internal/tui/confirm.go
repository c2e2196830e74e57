// SPDX-License-Identifier: MPL-2.0

package tui

import "github.com/charmbracelet/huh"

// ConfirmOptions configures a yes/no question.
type ConfirmOptions struct {
	Title       string
	Description string
	Affirmative string
	Negative    string
	Default     bool
	Config      Config
}

// Confirm asks a yes/no question. Aborting returns ErrCancelled.
func Confirm(opts ConfirmOptions) (bool, error) {
	result := opts.Default

	affirmative, negative := opts.Affirmative, opts.Negative
	if affirmative == "" {
		affirmative = "Yes"
	}
	if negative == "" {
		negative = "No"
	}

	field := huh.NewConfirm().
		Title(opts.Title).
		Description(opts.Description).
		Affirmative(affirmative).
		Negative(negative).
		Value(&result)

	if err := runForm(newForm(opts.Config, field)); err != nil {
		return false, err
	}
	return result, nil
}
