package color

import "math"

// linearRGBToOKLAB converts linear sRGB to OKLAB (L, a, b).
func linearRGBToOKLAB(r, g, b float64) (float64, float64, float64) {
	// M1: linear RGB → LMS
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	// Cube root (preserving sign)
	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	// M2: LMS' → Lab
	L := 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp
	A := 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp
	B := 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp

	return L, A, B
}

// oklabToLinearRGB converts OKLAB (L, a, b) to linear sRGB.
func oklabToLinearRGB(L, a, b float64) (float64, float64, float64) {
	// Inverse M2: Lab → LMS'
	lp := L + 0.3963377774*a + 0.2158037573*b
	mp := L - 0.1055613458*a - 0.0638541728*b
	sp := L - 0.0894841775*a - 1.2914855480*b

	// Cube: LMS' → LMS
	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	// Inverse M1: LMS → linear RGB
	r := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	bl := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	return r, g, bl
}

// toPolar converts rectangular (a, b) to chroma and hue in degrees [0, 360).
// The hue is NaN when chroma is below epsilon.
func toPolar(a, b, epsilon float64) (chroma, hue float64) {
	chroma = math.Sqrt(a*a + b*b)
	if chroma < epsilon {
		return chroma, math.NaN()
	}
	hue = math.Atan2(b, a) * (180.0 / math.Pi)
	if hue < 0 {
		hue += 360.0
	}
	return chroma, hue
}

// fromPolar converts chroma and hue in degrees to rectangular (a, b).
// A NaN hue is treated as zero.
func fromPolar(chroma, hue float64) (a, b float64) {
	if math.IsNaN(hue) {
		return 0, 0
	}
	hRad := hue * (math.Pi / 180.0)
	return chroma * math.Cos(hRad), chroma * math.Sin(hRad)
}

// deltaEOK is the Euclidean distance between two OKLAB colors.
func deltaEOK(x, y [3]float64) float64 {
	dl := x[0] - y[0]
	da := x[1] - y[1]
	db := x[2] - y[2]
	return math.Sqrt(dl*dl + da*da + db*db)
}
