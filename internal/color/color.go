package color

import (
	"fmt"
	"math"
)

// Color is a parsed color: a space, three coordinates in that space's
// native scale and an alpha in [0, 1].
//
// Coordinate scales follow CSS Color 4 conventions: RGB and XYZ spaces are
// nominally [0, 1], lab/lch lightness is [0, 100], oklab/oklch lightness is
// [0, 1], hsl saturation/lightness and hwb whiteness/blackness are [0, 100],
// and hues are degrees. A hue of NaN marks an achromatic color.
type Color struct {
	Space  Space
	Coords [3]float64
	Alpha  float64
}

// ParseError reports input that is not a color in any supported grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid color %q: %s", e.Input, e.Reason)
}

// UnsupportedSpaceError reports a color space outside the known set.
type UnsupportedSpaceError struct {
	Space string
}

func (e *UnsupportedSpaceError) Error() string {
	return fmt.Sprintf("unsupported color space %q", e.Space)
}

func parseErr(input, format string, args ...any) *ParseError {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// IsAchromatic reports whether the color's hue is undefined.
func (c Color) IsAchromatic() bool {
	def, ok := lookup(c.Space)
	if !ok || def.hue < 0 {
		return false
	}
	return math.IsNaN(c.Coords[def.hue])
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
