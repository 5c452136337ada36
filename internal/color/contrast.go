package color

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chromapick.color")

// Reference colors for contrast.
const (
	White = "white"
	Black = "black"
)

// Gamut labels, narrowest first.
const (
	GamutSRGB    = "srgb"
	GamutP3      = "p3"
	GamutRec2020 = "rec2020"
	GamutXYZ     = "xyz"
)

// gamutChecks is ordered widest to narrowest; each membership overwrites
// the previous result.
var gamutChecks = []struct {
	label string
	space Space
}{
	{GamutXYZ, XYZ},
	{GamutRec2020, Rec2020},
	{GamutP3, P3},
	{GamutSRGB, SRGB},
}

// ContrastColor returns "white" or "black", whichever contrasts more with
// text. It uses the WCAG 2.1 contrast ratio and falls back to the CIE L*
// difference when luminance is not a number. Equal contrast yields black.
// Unparseable input yields black.
func ContrastColor(text string) string {
	c, err := Parse(text)
	if err != nil {
		return Black
	}

	var whContrast, blContrast float64
	if y := Luminance(c); !math.IsNaN(y) {
		whContrast = contrastWCAG21(y, 1)
		blContrast = contrastWCAG21(y, 0)
	} else {
		whContrast = contrastLstar(c, 100)
		blContrast = contrastLstar(c, 0)
	}

	if whContrast > blContrast {
		return White
	}
	return Black
}

// ContrastColorPreferWhite leans towards white: it picks white when the L*
// contrast against white is at least 8 or the color is noticeably chromatic.
func ContrastColorPreferWhite(text string) string {
	c, err := Parse(text)
	if err != nil {
		return Black
	}
	lch, err := Convert(c, OKLCH)
	if err != nil {
		return Black
	}
	if contrastLstar(c, 100) >= 8 || lch.Coords[1] > 0.1 {
		return White
	}
	return Black
}

// ContrastRatio returns the WCAG 2.1 contrast ratio between two colors.
func ContrastRatio(a, b Color) float64 {
	return contrastWCAG21(Luminance(a), Luminance(b))
}

func contrastWCAG21(y1, y2 float64) float64 {
	y1, y2 = math.Max(y1, 0), math.Max(y2, 0)
	if y2 > y1 {
		y1, y2 = y2, y1
	}
	return (y1 + 0.05) / (y2 + 0.05)
}

// contrastLstar is the absolute difference between the Lab lightness of c
// and the reference lightness.
func contrastLstar(c Color, reference float64) float64 {
	lab, err := Convert(c, Lab)
	if err != nil {
		return 0
	}
	return math.Abs(lab.Coords[0] - reference)
}

// GamutOf returns the narrowest of srgb, p3, rec2020 and xyz that contains
// the color. Hex input is always srgb. Failures are logged and yield srgb.
func GamutOf(text string) string {
	gamut := GamutSRGB
	if strings.HasPrefix(text, "#") {
		return gamut
	}

	c, err := Parse(text)
	if err != nil {
		log.Errorf("gamut of %q: %s", text, err)
		return GamutSRGB
	}

	for _, check := range gamutChecks {
		converted, err := Convert(c, check.space)
		if err != nil {
			log.Errorf("gamut of %q: %s", text, err)
			return GamutSRGB
		}
		if InGamut(converted) {
			gamut = check.label
		}
	}
	return gamut
}

// Hex returns the sRGB hex form of text, clipped into the sRGB gamut.
func Hex(text string) (string, error) {
	c, err := Parse(text)
	if err != nil {
		return "", err
	}
	rgb, err := Convert(c, SRGB, WithGamutMap(Clip))
	if err != nil {
		return "", err
	}
	return colorful.Color{R: rgb.Coords[0], G: rgb.Coords[1], B: rgb.Coords[2]}.Clamped().Hex(), nil
}
