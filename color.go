package loom

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses a "#rrggbb" (or "rrggbb") string into an RGB color,
// the same conversion original_source/src/color.rs's convert_hex_rgb
// performs before handing the result to the terminal. Commands that want
// to carry color intent without binding the runtime to one color library
// can build one of these and pass it to ForegroundEscape/BackgroundEscape.
func ParseHexColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("loom: parse hex color %q: %w", hex, err)
	}
	return c, nil
}

func normalizeHex(hex string) string {
	if len(hex) > 0 && hex[0] != '#' {
		return "#" + hex
	}
	return hex
}

// ForegroundEscape returns the SGR escape sequence that sets the terminal
// foreground to c, using 24-bit truecolor.
func ForegroundEscape(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// BackgroundEscape returns the SGR escape sequence that sets the terminal
// background to c, using 24-bit truecolor.
func BackgroundEscape(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// ResetEscape returns the SGR sequence that clears any foreground,
// background, or attribute set by ForegroundEscape/BackgroundEscape/Invert.
const ResetEscape = "\x1b[0m"

// Invert wraps s in the SGR reverse-video escape pair, matching the
// `invert` free function original_source/src/core/renderer.rs exposes
// outside of a running program.
func Invert(s string) string {
	return "\x1b[7m" + s + "\x1b[0m"
}
