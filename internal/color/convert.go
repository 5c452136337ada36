package color

import "math"

// GamutMethod selects how out-of-gamut colors are brought into a bounded
// RGB space.
type GamutMethod int

const (
	// Clip clamps each RGB channel to [0, 1].
	Clip GamutMethod = iota + 1
	// CSS reduces OKLCH chroma until the clipped result is within a just
	// noticeable difference, as in CSS Color 4.
	CSS
)

// gamutEpsilon is the tolerance for gamut membership checks.
const gamutEpsilon = 0.000075

type convertOptions struct {
	gamut GamutMethod
}

// Option configures Convert.
type Option func(*convertOptions)

// WithGamutMap maps the converted color into the target's gamut.
// It has no effect on unbounded targets.
func WithGamutMap(method GamutMethod) Option {
	return func(o *convertOptions) {
		o.gamut = method
	}
}

// Convert converts c into the target space through XYZ-D65. Alpha is kept.
func Convert(c Color, target Space, opts ...Option) (Color, error) {
	var o convertOptions
	for _, opt := range opts {
		opt(&o)
	}

	from, ok := lookup(c.Space)
	if !ok {
		return Color{}, &UnsupportedSpaceError{Space: string(c.Space)}
	}
	to, ok := lookup(target)
	if !ok {
		return Color{}, &UnsupportedSpaceError{Space: string(target)}
	}

	out := c
	if c.Space != target {
		out = Color{Space: target, Coords: to.fromXYZ(from.toXYZ(c.Coords)), Alpha: c.Alpha}
	}
	if o.gamut != 0 {
		return ToGamut(out, target, o.gamut)
	}
	return out, nil
}

// InGamut reports whether c lies inside the gamut of its own space.
// Unbounded spaces contain every color.
func InGamut(c Color) bool {
	def, ok := lookup(c.Space)
	if !ok || def.gamut == "" {
		return ok
	}
	rgb := c
	if c.Space != def.gamut {
		rgb, _ = Convert(c, def.gamut)
	}
	for _, v := range rgb.Coords {
		if v < -gamutEpsilon || v > 1+gamutEpsilon {
			return false
		}
	}
	return true
}

// ToGamut maps c into the gamut of space using method and returns the result
// in c's own space. Colors already in gamut and unbounded spaces are
// returned unchanged.
func ToGamut(c Color, space Space, method GamutMethod) (Color, error) {
	def, ok := lookup(space)
	if !ok {
		return Color{}, &UnsupportedSpaceError{Space: string(space)}
	}
	if def.gamut == "" {
		return c, nil
	}

	rgb, err := Convert(c, def.gamut)
	if err != nil {
		return Color{}, err
	}
	if InGamut(rgb) {
		return c, nil
	}

	var mapped Color
	switch method {
	case CSS:
		mapped = mapChroma(c, def.gamut)
	default:
		mapped = clipColor(rgb)
	}
	return Convert(mapped, c.Space)
}

func clipColor(rgb Color) Color {
	rgb.Coords = mapVec(rgb.Coords, clamp01)
	return rgb
}

// mapChroma implements the CSS Color 4 gamut mapping: binary search on OKLCH
// chroma, accepting a clipped candidate once it is within a just noticeable
// difference of the unclipped one.
func mapChroma(c Color, gamut Space) Color {
	const (
		jnd            = 0.02
		minConvergence = 0.0001
	)

	lch, _ := Convert(c, OKLCH)
	if lch.Coords[0] >= 1 {
		return Color{Space: gamut, Coords: [3]float64{1, 1, 1}, Alpha: c.Alpha}
	}
	if lch.Coords[0] <= 0 {
		return Color{Space: gamut, Alpha: c.Alpha}
	}

	toRGB := func(chroma float64) Color {
		current := lch
		current.Coords[1] = chroma
		rgb, _ := Convert(current, gamut)
		return rgb
	}

	clipped := clipColor(toRGB(lch.Coords[1]))
	if deltaE(clipped, lch) < jnd {
		return clipped
	}

	low, high := 0.0, lch.Coords[1]
	for high-low > minConvergence {
		mid := (low + high) / 2
		candidate := toRGB(mid)
		if InGamut(candidate) {
			low = mid
			continue
		}
		if deltaE(clipColor(candidate), candidate) < jnd {
			low = mid
		} else {
			high = mid
		}
	}
	return clipColor(toRGB(low))
}

func deltaE(a, b Color) float64 {
	x, _ := Convert(a, OKLab)
	y, _ := Convert(b, OKLab)
	return deltaEOK(x.Coords, y.Coords)
}

// Luminance returns the relative luminance (Y of XYZ-D65) of c.
func Luminance(c Color) float64 {
	xyz, err := Convert(c, XYZD65)
	if err != nil {
		return math.NaN()
	}
	return xyz.Coords[1]
}
