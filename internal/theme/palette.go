package theme

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a palette entry. It decodes from and encodes to "#rrggbb" text so
// it can sit directly in TOML theme files.
type Color struct {
	c colorful.Color
}

// ParseColor parses a "#rgb" or "#rrggbb" hex string.
func ParseColor(hex string) (Color, error) {
	trimmed := strings.TrimSpace(hex)
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	c, err := colorful.Hex(trimmed)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return Color{c: c}, nil
}

// MustParseColor is ParseColor for package-level literals.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.c.Clamped().Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Mix blends c towards other in Lab space. t is clamped to [0, 1].
func (c Color) Mix(other Color, t float64) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return other
	}
	return Color{c: c.c.BlendLab(other.c, t).Clamped()}
}

// IsDark reports whether the color's perceived lightness is below the midpoint.
func (c Color) IsDark() bool {
	l, _, _ := c.c.Lab()
	return l < 0.5
}

// Palette is the set of named colors a theme file provides.
type Palette struct {
	Background Color `toml:"background"`
	Text       Color `toml:"text"`
	Action     Color `toml:"action"`
	Accent     Color `toml:"accent"`
	Alert      Color `toml:"alert"`
	Error      Color `toml:"error"`
	Info       Color `toml:"info"`
	Success    Color `toml:"success"`
}

// DefaultPalette returns the built-in Ferra palette.
func DefaultPalette() Palette {
	// Ferra palette: https://github.com/casperstorm/ferra
	return Palette{
		Background: MustParseColor("#2b292d"), // night
		Text:       MustParseColor("#fecdb2"), // blush
		Action:     MustParseColor("#b1b695"), // sage
		Accent:     MustParseColor("#d1d1e0"), // mist
		Alert:      MustParseColor("#ffa07a"), // coral
		Error:      MustParseColor("#e06b75"), // ember
		Info:       MustParseColor("#f5d76e"), // honey
		Success:    MustParseColor("#b1b695"), // sage
	}
}
