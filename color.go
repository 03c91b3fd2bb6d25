package gui

import "fmt"

// Color is a straight-alpha RGBA color with 8 bits per channel. Sprites
// carry it unmodified; the backend decides how to blend.
type Color struct {
	R, G, B, A uint8
}

// Predefined colors.
var (
	ColorWhite = Color{255, 255, 255, 255}
	ColorBlack = Color{0, 0, 0, 255}
)

// ColorFromU32 builds a color from a 0xRRGGBBAA value.
func ColorFromU32(value uint32) Color {
	return Color{
		R: uint8(value >> 24),
		G: uint8(value >> 16),
		B: uint8(value >> 8),
		A: uint8(value),
	}
}

// ColorFromArray builds a color from [r, g, b, a].
func ColorFromArray(value [4]uint8) Color {
	return Color{value[0], value[1], value[2], value[3]}
}

// ColorFromHex parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is
// optional). Alpha defaults to 255.
func ColorFromHex(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var c Color
	c.A = 255
	switch len(s) {
	case 6:
		_, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return Color{}, fmt.Errorf("gui: invalid hex color %q: %w", s, err)
		}
	case 8:
		_, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return Color{}, fmt.Errorf("gui: invalid hex color %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("gui: invalid hex color %q", s)
	}
	return c, nil
}

// Array returns the color as [r, g, b, a].
func (c Color) Array() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}
