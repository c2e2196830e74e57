// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/gigachad-dev/gigachad/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output.
const (
	// ColorPrimary is purple, used for titles and the session header.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, used for checkmarks and successful runs.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red, used for errors and failed runs.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, used for warnings and favorites.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for script names and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings and the favorite star.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for script names and command lines.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// headerStyle renders the session header printed before each run.
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// applyColorScheme forces lipgloss' background detection when the config
// pins a scheme.
func applyColorScheme(scheme config.ColorScheme) {
	switch scheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// glamourStyle picks the issue catalog style for the current background.
func glamourStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
