package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme holds the colors and pre-computed styles for the session view.
// Styles are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Pinned    lipgloss.AdaptiveColor

	Base        lipgloss.Style
	Header      lipgloss.Style
	Pane        lipgloss.Style
	Selected    lipgloss.Style
	MutedText   lipgloss.Style
	SubtleText  lipgloss.Style
	PinnedMark  lipgloss.Style
	MatchedText lipgloss.Style
	StatusBar   lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#999999", Dark: "#55596A"},
		Pinned:    lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})
	t.Header = r.NewStyle().Bold(true).Foreground(t.Primary)
	t.Pane = r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.Selected = r.NewStyle().Background(t.Highlight).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SubtleText = r.NewStyle().Foreground(t.Subtext)
	t.PinnedMark = r.NewStyle().Foreground(t.Pinned).Bold(true)
	t.MatchedText = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.StatusBar = r.NewStyle().Foreground(t.Secondary)

	return t
}
