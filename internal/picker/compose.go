package picker

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/chromapick/internal/color"
)

// FallbackColor is the canonical color when the active space cannot be
// composed.
const FallbackColor = "#000"

// ChannelGroup holds the free-form text of a space's three channels and its
// alpha percentage. The text is not validated.
type ChannelGroup struct {
	Values [3]string
	Alpha  string
}

// Compose writes the canonical color string for group in space. The channel
// text is substituted as is. It reports false for an unknown space.
func Compose(space Space, group ChannelGroup) (string, bool) {
	v := group.Values
	alpha := alphaSuffix(group.Alpha)

	switch space {
	case OKLab:
		return fmt.Sprintf("oklab(%s%% %s %s%s)", v[0], v[1], v[2], alpha), true
	case OKLCH:
		return fmt.Sprintf("oklch(%s%% %s %s%s)", v[0], v[1], v[2], alpha), true
	case Lab:
		return fmt.Sprintf("lab(%s%% %s %s%s)", v[0], v[1], v[2], alpha), true
	case LCH:
		return fmt.Sprintf("lch(%s%% %s %s%s)", v[0], v[1], v[2], alpha), true
	case HSL:
		return fmt.Sprintf("hsl(%s %s%% %s%%%s)", v[0], v[1], v[2], alpha), true
	case HWB:
		return fmt.Sprintf("hwb(%s %s%% %s%%%s)", v[0], v[1], v[2], alpha), true
	case SRGB:
		return fmt.Sprintf("rgb(%s%% %s%% %s%%%s)", v[0], v[1], v[2], alpha), true
	}

	if !space.IsRGB() {
		return "", false
	}
	name := color.CSSName(space.AdapterID())
	return fmt.Sprintf("color(%s %s%% %s%% %s%%%s)", name, v[0], v[1], v[2], alpha), true
}

// alphaSuffix is empty for a fully opaque alpha and " / N%" otherwise.
func alphaSuffix(alpha string) string {
	if v, err := strconv.ParseFloat(strings.TrimSpace(alpha), 64); err == nil && v == 100 {
		return ""
	}
	return " / " + alpha + "%"
}

// Decompose converts c into space and formats its coordinates as channel
// text. Bounded spaces are clipped into their gamut first. srgb is always
// clipped, whatever the picker's gamut mapping.
func Decompose(c color.Color, space Space) (ChannelGroup, error) {
	return decompose(c, space, color.Clip)
}

func decompose(c color.Color, space Space, method color.GamutMethod) (ChannelGroup, error) {
	def, ok := spaces[space]
	if !ok {
		return ChannelGroup{}, &color.UnsupportedSpaceError{Space: string(space)}
	}

	if space == SRGB {
		method = color.Clip
	}
	converted, err := color.Convert(c, space.AdapterID(), color.WithGamutMap(method))
	if err != nil {
		return ChannelGroup{}, fmt.Errorf("decomposing into %s: %w", space, err)
	}

	var g ChannelGroup
	for i, f := range def.formats {
		g.Values[i] = f.text(converted.Coords[i])
	}
	g.Alpha = fmtPercent.text(converted.Alpha)
	return g, nil
}

func (f format) text(v float64) string {
	if f.hue && math.IsNaN(v) {
		v = 0
	}
	v *= f.scale
	if f.clamp {
		v = math.Max(0, math.Min(100, v))
	}
	if f.hue {
		f.decimals = 0
	}
	return formatNumber(v, f.decimals)
}

// formatNumber rounds v to decimals places. Negative zero is written as 0.
func formatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	scale := math.Pow(10, float64(decimals))
	v = math.Round(v*scale) / scale
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
