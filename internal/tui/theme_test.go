package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPyscafTheme(t *testing.T) {
	theme := pyscafTheme()
	if theme == nil {
		t.Fatal("pyscafTheme() returned nil")
	}

	if !theme.Focused.Title.GetBold() {
		t.Error("Focused.Title should be bold")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
		t.Error("Focused.Base should have rounded border")
	}
	if !theme.Focused.FocusedButton.GetBold() {
		t.Error("Focused.FocusedButton should be bold")
	}

	_, fRight, _, fLeft := theme.Focused.FocusedButton.GetPadding()
	_, bRight, _, bLeft := theme.Focused.BlurredButton.GetPadding()
	if fLeft != 1 || fRight != 1 {
		t.Errorf("FocusedButton padding = %d/%d, want 1/1", fLeft, fRight)
	}
	if fLeft != bLeft || fRight != bRight {
		t.Error("FocusedButton and BlurredButton should have consistent padding")
	}
}

func TestPyscafThemeColors(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"blue":        pyscafBlue,
		"yellow":      pyscafYellow,
		"textStrong":  pyscafTextStrong,
		"textMuted":   pyscafTextMuted,
		"border":      pyscafBorder,
		"buttonText":  pyscafButtonText,
		"buttonMuted": pyscafButtonMuted,
	}

	for name, c := range colors {
		if !isValidHexColor(c.Light) || !isValidHexColor(c.Dark) {
			t.Errorf("%s: invalid adaptive color %+v", name, c)
		}
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { currentTheme = nil })

	SetTheme("dracula")
	if currentTheme == nil {
		t.Fatal("SetTheme(dracula) left the default theme")
	}

	SetTheme("no-such-theme")
	if currentTheme != nil {
		t.Error("unknown theme should fall back to the default")
	}
	if currentThemeOrDefault() == nil {
		t.Error("currentThemeOrDefault() returned nil")
	}
}

// isValidHexColor checks if a string is a valid hex color (e.g., "#0d9488")
func isValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
