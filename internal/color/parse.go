package color

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"
)

// channelRef describes how a CSS argument maps onto a coordinate.
type channelRef struct {
	percent float64 // coordinate value of 100%
	number  float64 // multiplier for plain numbers
	hue     bool
}

var (
	refUnit    = channelRef{percent: 1, number: 1}
	refByte    = channelRef{percent: 1, number: 1.0 / 255.0}
	refPercent = channelRef{percent: 100, number: 1}
	refHue     = channelRef{hue: true}
)

// functionRefs lists the argument references of each color function.
var functionRefs = map[string]struct {
	space Space
	refs  [3]channelRef
}{
	"rgb":   {SRGB, [3]channelRef{refByte, refByte, refByte}},
	"rgba":  {SRGB, [3]channelRef{refByte, refByte, refByte}},
	"hsl":   {HSL, [3]channelRef{refHue, refPercent, refPercent}},
	"hsla":  {HSL, [3]channelRef{refHue, refPercent, refPercent}},
	"hwb":   {HWB, [3]channelRef{refHue, refPercent, refPercent}},
	"lab":   {Lab, [3]channelRef{refPercent, {percent: 125, number: 1}, {percent: 125, number: 1}}},
	"lch":   {LCH, [3]channelRef{refPercent, {percent: 150, number: 1}, refHue}},
	"oklab": {OKLab, [3]channelRef{refUnit, {percent: 0.4, number: 1}, {percent: 0.4, number: 1}}},
	"oklch": {OKLCH, [3]channelRef{refUnit, {percent: 0.4, number: 1}, refHue}},
}

// predefinedSpaces maps color() space names to adapter ids. CSS names and
// adapter ids are both accepted.
var predefinedSpaces = map[string]Space{
	"srgb":         SRGB,
	"srgb-linear":  SRGBLinear,
	"display-p3":   P3,
	"p3":           P3,
	"a98-rgb":      A98RGB,
	"a98rgb":       A98RGB,
	"prophoto-rgb": ProPhoto,
	"prophoto":     ProPhoto,
	"rec2020":      Rec2020,
	"xyz":          XYZ,
	"xyz-d50":      XYZD50,
	"xyz-d65":      XYZD65,
}

// CSSName returns the name used for space inside color(). Spaces without a
// color() form return their adapter id.
func CSSName(s Space) string {
	switch s {
	case P3:
		return "display-p3"
	case A98RGB:
		return "a98-rgb"
	case ProPhoto:
		return "prophoto-rgb"
	}
	return string(s)
}

// token is one significant CSS token inside a color function.
type token struct {
	tt   css.TokenType
	text string
}

// Parse parses a CSS color string: hex, named colors, the rgb/hsl/hwb/lab/
// lch/oklab/oklch functions and color() with any predefined space.
func Parse(text string) (Color, error) {
	src := strings.ToLower(strings.TrimSpace(text))
	if src == "" {
		return Color{}, parseErr(text, "empty input")
	}

	l := css.NewLexer(parse.NewInputString(src))
	tt, data := next(l)

	var (
		c   Color
		err error
	)
	switch tt {
	case css.HashToken:
		c, err = parseHex(text, string(data))
	case css.IdentToken:
		c, err = parseNamed(text, string(data))
	case css.FunctionToken:
		c, err = parseFunction(text, strings.TrimSuffix(string(data), "("), l)
	default:
		return Color{}, parseErr(text, "unexpected %q", data)
	}
	if err != nil {
		return Color{}, err
	}

	if tt, data := next(l); tt != css.ErrorToken {
		return Color{}, parseErr(text, "trailing %q", data)
	}
	if lexErr := l.Err(); lexErr != nil && lexErr != io.EOF {
		return Color{}, parseErr(text, "%v", lexErr)
	}
	return c, nil
}

// next returns the next token that is not whitespace or a comment.
func next(l *css.Lexer) (css.TokenType, []byte) {
	for {
		tt, data := l.Next()
		if tt != css.WhitespaceToken && tt != css.CommentToken {
			return tt, data
		}
	}
}

func parseHex(input, hash string) (Color, error) {
	digits := strings.TrimPrefix(hash, "#")
	alpha := 1.0

	switch len(digits) {
	case 4, 8:
		n := len(digits) / 4
		a, err := strconv.ParseUint(digits[len(digits)-n:], 16, 8)
		if err != nil {
			return Color{}, parseErr(input, "invalid hex alpha")
		}
		if n == 1 {
			a *= 17
		}
		alpha = float64(a) / 255.0
		digits = digits[:len(digits)-n]
	case 3, 6:
	default:
		return Color{}, parseErr(input, "hex color must have 3, 4, 6 or 8 digits")
	}

	rgb, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, parseErr(input, "invalid hex digits")
	}
	return Color{Space: SRGB, Coords: [3]float64{rgb.R, rgb.G, rgb.B}, Alpha: alpha}, nil
}

func parseNamed(input, name string) (Color, error) {
	if name == "transparent" {
		return Color{Space: SRGB, Alpha: 0}, nil
	}
	rgba, ok := colornames.Map[name]
	if !ok {
		return Color{}, parseErr(input, "unknown color name %q", name)
	}
	return Color{
		Space:  SRGB,
		Coords: [3]float64{float64(rgba.R) / 255, float64(rgba.G) / 255, float64(rgba.B) / 255},
		Alpha:  1,
	}, nil
}

func parseFunction(input, name string, l *css.Lexer) (Color, error) {
	space, refs := Space(""), [3]channelRef{}
	if name == "color" {
		tt, data := next(l)
		if tt != css.IdentToken {
			return Color{}, parseErr(input, "color() needs a space name")
		}
		s, ok := predefinedSpaces[string(data)]
		if !ok {
			return Color{}, parseErr(input, "unknown color() space %q", data)
		}
		space, refs = s, [3]channelRef{refUnit, refUnit, refUnit}
	} else {
		fn, ok := functionRefs[name]
		if !ok {
			return Color{}, parseErr(input, "unknown color function %q", name)
		}
		space, refs = fn.space, fn.refs
	}

	channels, alpha, err := readArguments(input, l)
	if err != nil {
		return Color{}, err
	}

	c := Color{Space: space, Alpha: 1}
	for i, tok := range channels {
		v, ok := tok.value(refs[i])
		if !ok {
			return Color{}, parseErr(input, "invalid channel %q", tok.text)
		}
		c.Coords[i] = v
	}
	if alpha != nil {
		a, ok := alpha.value(refUnit)
		if !ok || math.IsNaN(a) {
			return Color{}, parseErr(input, "invalid alpha %q", alpha.text)
		}
		c.Alpha = clamp01(a)
	}
	return c, nil
}

// readArguments collects exactly three channel tokens and an optional alpha
// token up to the closing parenthesis. Both the modern space-separated form
// with "/ alpha" and the legacy comma-separated form are accepted.
func readArguments(input string, l *css.Lexer) ([]token, *token, error) {
	var (
		args     []token
		alpha    *token
		commas   int
		slash    bool
		finished bool
	)
	for !finished {
		tt, data := next(l)
		switch tt {
		case css.RightParenthesisToken:
			finished = true
		case css.CommaToken:
			commas++
		case css.DelimToken:
			if string(data) != "/" || slash {
				return nil, nil, parseErr(input, "unexpected %q", data)
			}
			slash = true
		case css.NumberToken, css.PercentageToken, css.DimensionToken, css.IdentToken:
			tok := token{tt: tt, text: string(data)}
			if slash {
				if alpha != nil {
					return nil, nil, parseErr(input, "more than one alpha value")
				}
				alpha = &tok
				continue
			}
			args = append(args, tok)
		case css.ErrorToken:
			return nil, nil, parseErr(input, "missing closing parenthesis")
		default:
			return nil, nil, parseErr(input, "unexpected %q", data)
		}
	}

	if commas > 0 {
		if slash {
			return nil, nil, parseErr(input, "cannot mix commas and '/'")
		}
		if len(args) == 4 {
			alpha = &args[3]
			args = args[:3]
		}
		if commas != len(args)-1+boolInt(alpha != nil) {
			return nil, nil, parseErr(input, "misplaced comma")
		}
	}
	if len(args) != 3 {
		return nil, nil, parseErr(input, "expected 3 channels, got %d", len(args))
	}
	return args, alpha, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// value converts the token to a coordinate using ref.
func (t token) value(ref channelRef) (float64, bool) {
	switch t.tt {
	case css.IdentToken:
		if t.text != "none" {
			return 0, false
		}
		if ref.hue {
			return math.NaN(), true
		}
		return 0, true
	case css.NumberToken:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return 0, false
		}
		if ref.hue {
			return v, true
		}
		return v * ref.number, true
	case css.PercentageToken:
		if ref.hue {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(t.text, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v / 100 * ref.percent, true
	case css.DimensionToken:
		if !ref.hue {
			return 0, false
		}
		return degrees(t.text)
	}
	return 0, false
}

// degrees converts an angle dimension such as "180deg" or "0.5turn".
func degrees(text string) (float64, bool) {
	for _, unit := range []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 360.0 / 400.0},
		{"rad", 180.0 / math.Pi},
		{"turn", 360},
	} {
		if !strings.HasSuffix(text, unit.suffix) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(text, unit.suffix), 64)
		if err != nil {
			return 0, false
		}
		return v * unit.scale, true
	}
	return 0, false
}

// IsFunction reports whether name (without the parenthesis) is a color
// function Parse understands.
func IsFunction(name string) bool {
	name = strings.ToLower(name)
	if name == "color" {
		return true
	}
	_, ok := functionRefs[name]
	return ok
}
