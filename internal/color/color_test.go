package color

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func coordsEqual(a, b [3]float64, tol float64) bool {
	for i := range a {
		if math.IsNaN(a[i]) != math.IsNaN(b[i]) {
			return false
		}
		if !math.IsNaN(a[i]) && !approxEqual(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		space  Space
		coords [3]float64
		alpha  float64
	}{
		{"hex six digits", "#336699", SRGB, [3]float64{0.2, 0.4, 0.6}, 1},
		{"hex three digits", "#f00", SRGB, [3]float64{1, 0, 0}, 1},
		{"hex uppercase", "#AABBCC", SRGB, [3]float64{170.0 / 255, 187.0 / 255, 204.0 / 255}, 1},
		{"hex with alpha", "#ff000080", SRGB, [3]float64{1, 0, 0}, 128.0 / 255},
		{"hex short alpha", "#0f08", SRGB, [3]float64{0, 1, 0}, 136.0 / 255},
		{"named", "navy", SRGB, [3]float64{0, 0, 128.0 / 255}, 1},
		{"named mixed case", "DarkOrange", SRGB, [3]float64{1, 140.0 / 255, 0}, 1},
		{"transparent", "transparent", SRGB, [3]float64{0, 0, 0}, 0},
		{"oklch default", "oklch(75% .3 180deg)", OKLCH, [3]float64{0.75, 0.3, 180}, 1},
		{"oklch number hue", "oklch(50% 0.5 220)", OKLCH, [3]float64{0.5, 0.5, 220}, 1},
		{"oklch chroma percent", "oklch(0.5 50% 10)", OKLCH, [3]float64{0.5, 0.2, 10}, 1},
		{"oklab", "oklab(100% -0.2 0.5)", OKLab, [3]float64{1, -0.2, 0.5}, 1},
		{"lab", "lab(50% 40 -20)", Lab, [3]float64{50, 40, -20}, 1},
		{"lab axis percent", "lab(50 100% -100%)", Lab, [3]float64{50, 125, -125}, 1},
		{"lch alpha", "lch(50% 100 220 / 99%)", LCH, [3]float64{50, 100, 220}, 0.99},
		{"hsl", "hsl(220 100% 50%)", HSL, [3]float64{220, 100, 50}, 1},
		{"hsla legacy", "hsla(120, 50%, 25%, 0.5)", HSL, [3]float64{120, 50, 25}, 0.5},
		{"hwb turn", "hwb(0.5turn 10% 20%)", HWB, [3]float64{180, 10, 20}, 1},
		{"rgb legacy", "rgb(255, 0, 0)", SRGB, [3]float64{1, 0, 0}, 1},
		{"rgba legacy", "rgba(255, 0, 0, 0.25)", SRGB, [3]float64{1, 0, 0}, 0.25},
		{"rgb percent", "rgb(100% 50% 0% / 50%)", SRGB, [3]float64{1, 0.5, 0}, 0.5},
		{"color display-p3", "color(display-p3 1 0 0)", P3, [3]float64{1, 0, 0}, 1},
		{"color prophoto", "color(prophoto-rgb 0% 100% 0%)", ProPhoto, [3]float64{0, 1, 0}, 1},
		{"color a98", "color(a98-rgb 0.5 0.5 0.5 / 0.1)", A98RGB, [3]float64{0.5, 0.5, 0.5}, 0.1},
		{"color xyz-d50", "color(xyz-d50 0.2 0.3 0.4)", XYZD50, [3]float64{0.2, 0.3, 0.4}, 1},
		{"alpha clamped", "rgb(0 0 0 / 150%)", SRGB, [3]float64{0, 0, 0}, 1},
		{"surrounding space", "  lab( 10%  0 0 )  ", Lab, [3]float64{10, 0, 0}, 1},
		{"degrees in rad", "oklch(50% 0.1 3.141592653589793rad)", OKLCH, [3]float64{0.5, 0.1, 180}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got.Space != tt.space {
				t.Errorf("Parse(%q).Space = %q, want %q", tt.input, got.Space, tt.space)
			}
			if !coordsEqual(got.Coords, tt.coords, 1e-9) {
				t.Errorf("Parse(%q).Coords = %v, want %v", tt.input, got.Coords, tt.coords)
			}
			if !approxEqual(got.Alpha, tt.alpha, 1e-9) {
				t.Errorf("Parse(%q).Alpha = %v, want %v", tt.input, got.Alpha, tt.alpha)
			}
		})
	}
}

func TestParseNoneHue(t *testing.T) {
	got, err := Parse("oklch(50% 0 none)")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !got.IsAchromatic() {
		t.Errorf("hue = %v, want NaN", got.Coords[2])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unknown name", "notacolor"},
		{"short hex", "#12"},
		{"bad hex digits", "#zzzzzz"},
		{"empty channel", "oklch(% 0.5 220)"},
		{"missing channel", "rgb(1 2)"},
		{"too many channels", "rgb(1 2 3 4)"},
		{"trailing text", "oklch(50% 0.1 180) x"},
		{"unknown function", "cmyk(0 0 0)"},
		{"unknown predefined space", "color(foo 1 2 3)"},
		{"misplaced comma", "rgb(1, 2 3)"},
		{"mixed separators", "rgb(1, 2, 3 / 0.5)"},
		{"unclosed", "lab(50 0 0"},
		{"percent hue", "hsl(50% 10% 10%)"},
		{"angle on non hue", "lab(10deg 0 0)"},
		{"double alpha", "rgb(0 0 0 / 1 / 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("Parse(%q) error = %T, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestSpaceIDTranslation(t *testing.T) {
	tests := []struct {
		display string
		id      Space
	}{
		{"display-p3", P3},
		{"a98-rgb", A98RGB},
		{"oklch", OKLCH},
		{"prophoto", ProPhoto},
		{"xyz-d50", XYZD50},
	}

	for _, tt := range tests {
		if got := SpaceID(tt.display); got != tt.id {
			t.Errorf("SpaceID(%q) = %q, want %q", tt.display, got, tt.id)
		}
		if got := SpaceID(string(tt.id)); got != tt.id {
			t.Errorf("SpaceID(%q) not idempotent: got %q", tt.id, got)
		}
		if got := DisplayName(tt.id); got != tt.display {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.display)
		}
		if got := DisplayName(Space(tt.display)); got != tt.display {
			t.Errorf("DisplayName(%q) not idempotent: got %q", tt.display, got)
		}
	}
}

func TestIsCylindrical(t *testing.T) {
	for _, s := range []Space{HSL, HWB, LCH, OKLCH} {
		if !IsCylindrical(s) {
			t.Errorf("IsCylindrical(%q) = false, want true", s)
		}
	}
	for _, s := range []Space{SRGB, Lab, OKLab, XYZ, Space("bogus")} {
		if IsCylindrical(s) {
			t.Errorf("IsCylindrical(%q) = true, want false", s)
		}
	}
}

func TestIsFunction(t *testing.T) {
	for _, name := range []string{"rgb", "RGBA", "hsl", "hwb", "lab", "lch", "oklab", "OKLCH", "color"} {
		if !IsFunction(name) {
			t.Errorf("IsFunction(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "url", "calc", "cmyk"} {
		if IsFunction(name) {
			t.Errorf("IsFunction(%q) = true, want false", name)
		}
	}
}
