// Package theme defines named color palettes and the Lipgloss styles derived
// from them.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultName is the name of the built-in theme.
const DefaultName = "Ferra"

// Theme is a named palette. Themes are plain values and compare with ==.
type Theme struct {
	Name    string
	Palette Palette
}

// New builds a theme from a decoded theme file.
func New(name string, palette Palette) Theme {
	return Theme{Name: name, Palette: palette}
}

// Default returns the built-in theme used whenever no theme file resolves.
func Default() Theme {
	return New(DefaultName, DefaultPalette())
}

// Muted is the text color pulled towards the background.
func (t Theme) Muted() Color {
	return t.Palette.Text.Mix(t.Palette.Background, 0.45)
}

// Surface is a background shade one step away from the base background.
func (t Theme) Surface() Color {
	if t.Palette.Background.IsDark() {
		return t.Palette.Background.Mix(t.Palette.Text, 0.08)
	}
	return t.Palette.Background.Mix(t.Palette.Text, 0.05)
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	p := t.Palette
	bg := lipgloss.Color(p.Background.Hex())
	surface := lipgloss.Color(t.Surface().Hex())

	return Styles{
		// Base styles
		Background: lipgloss.NewStyle().
			Background(bg),

		Surface: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(p.Text.Hex())),

		// Text styles
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text.Hex())),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted().Hex())),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent.Hex())),

		ActionText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Action.Hex())),

		AlertText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Alert.Hex())),

		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error.Hex())).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Info.Hex())),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success.Hex())).
			Bold(true),

		// Component styles
		Header: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(p.Text.Hex())).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(t.Muted().Hex())).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Action.Hex())).
			Foreground(bg),

		background: p.Background,
	}
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	ActionText  lipgloss.Style
	AlertText   lipgloss.Style
	ErrorText   lipgloss.Style
	InfoText    lipgloss.Style
	SuccessText lipgloss.Style

	// Components
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style

	background Color
}

// Swatch renders width cells filled with c, for palette previews.
func (s Styles) Swatch(c Color, width int) string {
	if width <= 0 {
		width = 2
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", width))
}

// Badge renders label on a colored chip, using the theme background as text.
func (s Styles) Badge(label string, c Color) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background.Hex())).
		Background(lipgloss.Color(c.Hex())).
		Padding(0, 1).
		Render(label)
}
