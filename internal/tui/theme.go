package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// currentTheme holds the configured theme. nil means the pyscaf theme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// Unknown or empty names select the pyscaf theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return pyscafTheme()
	}
	return currentTheme
}

var (
	pyscafBlue        = lipgloss.AdaptiveColor{Light: "#306998", Dark: "#4b8bbe"}
	pyscafYellow      = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffd43b"}
	pyscafTextStrong  = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	pyscafTextMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	pyscafBorder      = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	pyscafButtonText  = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#0b1120"}
	pyscafButtonMuted = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#1f2937"}
)

// pyscafTheme derives the default prompt theme from the Charm theme using
// the Python blue and yellow as accents.
func pyscafTheme() *huh.Theme {
	t := huh.ThemeCharm()

	t.Focused.Base = t.Focused.Base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pyscafBlue)
	t.Focused.Title = t.Focused.Title.Foreground(pyscafBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(pyscafTextMuted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(pyscafButtonText).
		Background(pyscafBlue).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(pyscafTextStrong).
		Background(pyscafButtonMuted).
		Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(pyscafYellow)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(pyscafBorder)
	t.Blurred.Title = t.Blurred.Title.Foreground(pyscafTextMuted)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(pyscafYellow)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(pyscafTextMuted)

	return t
}
