package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Space identifies a color space in the adapter's vocabulary.
type Space string

const (
	SRGB       Space = "srgb"
	SRGBLinear Space = "srgb-linear"
	P3         Space = "p3"
	A98RGB     Space = "a98rgb"
	Rec2020    Space = "rec2020"
	ProPhoto   Space = "prophoto"
	XYZ        Space = "xyz"
	XYZD50     Space = "xyz-d50"
	XYZD65     Space = "xyz-d65"
	Lab        Space = "lab"
	LCH        Space = "lch"
	OKLab      Space = "oklab"
	OKLCH      Space = "oklch"
	HSL        Space = "hsl"
	HWB        Space = "hwb"
)

// spaceDef describes how a space maps to and from the XYZ-D65 hub.
type spaceDef struct {
	toXYZ   func(c [3]float64) [3]float64
	fromXYZ func(xyz [3]float64) [3]float64
	// gamut is the bounded RGB space whose [0, 1] cube limits this space,
	// or "" for unbounded spaces.
	gamut Space
	// hue is the index of the hue coordinate, or -1.
	hue int
}

var spaceOrder = []Space{
	SRGB, SRGBLinear, P3, A98RGB, Rec2020, ProPhoto,
	XYZ, XYZD50, XYZD65, Lab, LCH, OKLab, OKLCH, HSL, HWB,
}

var spaces = map[Space]spaceDef{
	SRGB: {
		toXYZ:   srgbToXYZ,
		fromXYZ: xyzToSRGB,
		gamut:   SRGB,
		hue:     -1,
	},
	SRGBLinear: {
		toXYZ:   linearSRGBToXYZ,
		fromXYZ: xyzToLinearSRGB,
		gamut:   SRGBLinear,
		hue:     -1,
	},
	P3: {
		toXYZ:   func(c [3]float64) [3]float64 { return p3ToXYZ.mulVec(mapVec(c, srgbToLinear)) },
		fromXYZ: func(xyz [3]float64) [3]float64 { return mapVec(xyzToP3.mulVec(xyz), linearToSRGB) },
		gamut:   P3,
		hue:     -1,
	},
	A98RGB: {
		toXYZ:   func(c [3]float64) [3]float64 { return a98ToXYZ.mulVec(mapVec(c, a98ToLinear)) },
		fromXYZ: func(xyz [3]float64) [3]float64 { return mapVec(xyzToA98.mulVec(xyz), linearToA98) },
		gamut:   A98RGB,
		hue:     -1,
	},
	Rec2020: {
		toXYZ:   func(c [3]float64) [3]float64 { return rec2020ToXYZ.mulVec(mapVec(c, rec2020ToLinear)) },
		fromXYZ: func(xyz [3]float64) [3]float64 { return mapVec(xyzToRec2020.mulVec(xyz), linearToRec2020) },
		gamut:   Rec2020,
		hue:     -1,
	},
	ProPhoto: {
		toXYZ: func(c [3]float64) [3]float64 {
			return d50ToD65.mulVec(prophotoToXYZD50.mulVec(mapVec(c, prophotoToLinear)))
		},
		fromXYZ: func(xyz [3]float64) [3]float64 {
			return mapVec(xyzD50ToProphoto.mulVec(d65ToD50.mulVec(xyz)), linearToProphoto)
		},
		gamut: ProPhoto,
		hue:   -1,
	},
	XYZ:    {toXYZ: identity, fromXYZ: identity, hue: -1},
	XYZD65: {toXYZ: identity, fromXYZ: identity, hue: -1},
	XYZD50: {toXYZ: d50ToD65.mulVec, fromXYZ: d65ToD50.mulVec, hue: -1},
	Lab:    {toXYZ: labToXYZ, fromXYZ: xyzToLab, hue: -1},
	LCH: {
		toXYZ: func(c [3]float64) [3]float64 {
			a, b := fromPolar(c[1], c[2])
			return labToXYZ([3]float64{c[0], a, b})
		},
		fromXYZ: func(xyz [3]float64) [3]float64 {
			lab := xyzToLab(xyz)
			chroma, hue := toPolar(lab[1], lab[2], 0.0015)
			return [3]float64{lab[0], chroma, hue}
		},
		hue: 2,
	},
	OKLab: {toXYZ: oklabToXYZ, fromXYZ: xyzToOKLab, hue: -1},
	OKLCH: {
		toXYZ: func(c [3]float64) [3]float64 {
			a, b := fromPolar(c[1], c[2])
			return oklabToXYZ([3]float64{c[0], a, b})
		},
		fromXYZ: func(xyz [3]float64) [3]float64 {
			lab := xyzToOKLab(xyz)
			chroma, hue := toPolar(lab[1], lab[2], 0.0002)
			return [3]float64{lab[0], chroma, hue}
		},
		hue: 2,
	},
	HSL: {toXYZ: hslToXYZ, fromXYZ: xyzToHSL, gamut: SRGB, hue: 0},
	HWB: {toXYZ: hwbToXYZ, fromXYZ: xyzToHWB, gamut: SRGB, hue: 0},
}

func lookup(s Space) (spaceDef, bool) {
	def, ok := spaces[s]
	return def, ok
}

// Spaces returns every adapter space in a stable order.
func Spaces() []Space {
	out := make([]Space, len(spaceOrder))
	copy(out, spaceOrder)
	return out
}

// Known reports whether s is a supported adapter space.
func (s Space) Known() bool {
	_, ok := spaces[s]
	return ok
}

// SpaceID translates a display space name to the adapter's id.
// Already-translated ids are returned unchanged.
func SpaceID(display string) Space {
	switch display {
	case "display-p3":
		return P3
	case "a98-rgb":
		return A98RGB
	}
	return Space(display)
}

// DisplayName translates an adapter id to the display space name.
// Already-translated names are returned unchanged.
func DisplayName(id Space) string {
	switch id {
	case P3:
		return "display-p3"
	case A98RGB:
		return "a98-rgb"
	}
	return string(id)
}

// IsCylindrical reports whether the space has a hue coordinate.
func IsCylindrical(s Space) bool {
	def, ok := lookup(s)
	return ok && def.hue >= 0
}

func identity(v [3]float64) [3]float64 { return v }

func mapVec(v [3]float64, f func(float64) float64) [3]float64 {
	return [3]float64{f(v[0]), f(v[1]), f(v[2])}
}

func linearSRGBToXYZ(c [3]float64) [3]float64 {
	x, y, z := colorful.LinearRgbToXyz(c[0], c[1], c[2])
	return [3]float64{x, y, z}
}

func xyzToLinearSRGB(xyz [3]float64) [3]float64 {
	r, g, b := colorful.XyzToLinearRgb(xyz[0], xyz[1], xyz[2])
	return [3]float64{r, g, b}
}

func srgbToXYZ(c [3]float64) [3]float64 {
	return linearSRGBToXYZ(mapVec(c, srgbToLinear))
}

func xyzToSRGB(xyz [3]float64) [3]float64 {
	return mapVec(xyzToLinearSRGB(xyz), linearToSRGB)
}

// srgbToLinear applies the sRGB transfer function, mirrored for negatives.
func srgbToLinear(v float64) float64 {
	r, _, _ := colorful.Color{R: math.Abs(v)}.LinearRgb()
	return math.Copysign(r, v)
}

func linearToSRGB(v float64) float64 {
	return math.Copysign(colorful.LinearRgb(math.Abs(v), 0, 0).R, v)
}

func a98ToLinear(v float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), 563.0/256.0), v)
}

func linearToA98(v float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), 256.0/563.0), v)
}

const (
	rec2020Alpha = 1.09929682680944
	rec2020Beta  = 0.018053968510807
)

func rec2020ToLinear(v float64) float64 {
	abs := math.Abs(v)
	if abs < rec2020Beta*4.5 {
		return v / 4.5
	}
	return math.Copysign(math.Pow((abs+rec2020Alpha-1)/rec2020Alpha, 1/0.45), v)
}

func linearToRec2020(v float64) float64 {
	abs := math.Abs(v)
	if abs < rec2020Beta {
		return v * 4.5
	}
	return math.Copysign(rec2020Alpha*math.Pow(abs, 0.45)-(rec2020Alpha-1), v)
}

func prophotoToLinear(v float64) float64 {
	abs := math.Abs(v)
	if abs <= 16.0/512.0 {
		return v / 16
	}
	return math.Copysign(math.Pow(abs, 1.8), v)
}

func linearToProphoto(v float64) float64 {
	abs := math.Abs(v)
	if abs >= 1.0/512.0 {
		return math.Copysign(math.Pow(abs, 1/1.8), v)
	}
	return v * 16
}

// labToXYZ converts CIE Lab (D50, L in [0, 100]) to XYZ-D65.
func labToXYZ(c [3]float64) [3]float64 {
	x, y, z := colorful.LabToXyzWhiteRef(c[0]/100, c[1]/100, c[2]/100, whiteD50)
	return d50ToD65.mulVec([3]float64{x, y, z})
}

func xyzToLab(xyz [3]float64) [3]float64 {
	d50 := d65ToD50.mulVec(xyz)
	l, a, b := colorful.XyzToLabWhiteRef(d50[0], d50[1], d50[2], whiteD50)
	return [3]float64{l * 100, a * 100, b * 100}
}

func oklabToXYZ(c [3]float64) [3]float64 {
	r, g, b := oklabToLinearRGB(c[0], c[1], c[2])
	return linearSRGBToXYZ([3]float64{r, g, b})
}

func xyzToOKLab(xyz [3]float64) [3]float64 {
	lin := xyzToLinearSRGB(xyz)
	l, a, b := linearRGBToOKLAB(lin[0], lin[1], lin[2])
	return [3]float64{l, a, b}
}

// normalizeHue wraps a hue into [0, 360); NaN becomes 0.
func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func hslToXYZ(c [3]float64) [3]float64 {
	rgb := colorful.Hsl(normalizeHue(c[0]), c[1]/100, c[2]/100)
	return srgbToXYZ([3]float64{rgb.R, rgb.G, rgb.B})
}

// achromaticSpread is the largest RGB channel spread still treated as gray.
const achromaticSpread = 1e-9

// snapRGB rounds conversion noise off sRGB channels before hue extraction.
func snapRGB(v float64) float64 {
	return math.Round(v*1e12) / 1e12
}

func rgbSpread(rgb [3]float64) (lo, hi float64) {
	lo = math.Min(rgb[0], math.Min(rgb[1], rgb[2]))
	hi = math.Max(rgb[0], math.Max(rgb[1], rgb[2]))
	return lo, hi
}

func xyzToHSL(xyz [3]float64) [3]float64 {
	rgb := mapVec(xyzToSRGB(xyz), snapRGB)
	if lo, hi := rgbSpread(rgb); hi-lo < achromaticSpread {
		return [3]float64{math.NaN(), 0, (lo + hi) / 2 * 100}
	}
	h, s, l := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.Hsl()
	return [3]float64{h, s * 100, l * 100}
}

func hwbToXYZ(c [3]float64) [3]float64 {
	w, b := c[1]/100, c[2]/100
	if w+b >= 1 {
		gray := w / (w + b)
		return srgbToXYZ([3]float64{gray, gray, gray})
	}
	v := 1 - b
	s := 1 - w/v
	rgb := colorful.Hsv(normalizeHue(c[0]), s, v)
	return srgbToXYZ([3]float64{rgb.R, rgb.G, rgb.B})
}

func xyzToHWB(xyz [3]float64) [3]float64 {
	rgb := mapVec(xyzToSRGB(xyz), snapRGB)
	if lo, hi := rgbSpread(rgb); hi-lo < achromaticSpread {
		return [3]float64{math.NaN(), hi * 100, (1 - hi) * 100}
	}
	h, s, v := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.Hsv()
	return [3]float64{h, (1 - s) * v * 100, (1 - v) * 100}
}
