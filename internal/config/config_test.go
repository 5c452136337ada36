package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/picker"
)

const sampleHCL = `
palette {
  accent = "#ff8800"
  ink    = "oklch(30% 0.05 260)"
}

picker {
  color     = convert(palette.accent, "oklch")
  space     = "hsl"
  gamut_map = "css"
}

channels "hsl" {
  values = [220, 100, 50]
  alpha  = 80
}

channels "display-p3" {
  values = ["10", "20", "30"]
}

log {
  verbosity = 2
  file      = "chromapick.log"
}
`

func writeTempHCL(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "chromapick.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempHCL(t, sampleHCL)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	wantColor, err := ConvertColor("#ff8800", "oklch", color.Clip)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color != wantColor {
		t.Errorf("Color = %q, want %q", cfg.Color, wantColor)
	}
	if cfg.Space != picker.HSL {
		t.Errorf("Space = %q, want hsl", cfg.Space)
	}
	if cfg.GamutMap != color.CSS {
		t.Errorf("GamutMap = %v, want CSS", cfg.GamutMap)
	}
	if cfg.Log.Verbosity != 2 || cfg.Log.File != "chromapick.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}

	wantChannels := map[picker.Space]picker.ChannelGroup{
		picker.HSL:       {Values: [3]string{"220", "100", "50"}, Alpha: "80"},
		picker.DisplayP3: {Values: [3]string{"10", "20", "30"}, Alpha: "100"},
	}
	if diff := cmp.Diff(wantChannels, cfg.Channels); diff != "" {
		t.Errorf("Channels mismatch (-want +got):\n%s", diff)
	}

	wantPalette := map[string]string{"accent": "#ff8800", "ink": "oklch(30% 0.05 260)"}
	if diff := cmp.Diff(wantPalette, cfg.Palette); diff != "" {
		t.Errorf("Palette mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	if err == nil || !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("Load() error = %v, want read error", err)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.hcl")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Color != "" || cfg.Space != "" || len(cfg.Channels) != 0 {
		t.Errorf("Parse(empty) = %+v, want zero settings", cfg)
	}
	if cfg.GamutMap != color.Clip {
		t.Errorf("GamutMap = %v, want Clip", cfg.GamutMap)
	}
}

func TestParseFunctions(t *testing.T) {
	src := `
picker {
  color = hex("color(display-p3 1 0 0)")
  space = gamut("color(display-p3 1 0 0)") == "p3" ? "display-p3" : "srgb"
}
channels "srgb" {
  values = [contrast("navy"), contrast("yellow"), "0"]
}
`
	cfg, err := Parse([]byte(src), "functions.hcl")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Color != "#ff0000" {
		t.Errorf("Color = %q, want #ff0000", cfg.Color)
	}
	if cfg.Space != picker.DisplayP3 {
		t.Errorf("Space = %q, want display-p3", cfg.Space)
	}
	want := [3]string{"white", "black", "0"}
	if got := cfg.Channels[picker.SRGB].Values; got != want {
		t.Errorf("Channels[srgb] = %v, want %v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax", `picker {`, "parsing HCL"},
		{"bad palette color", `palette { x = "nope" }`, "parsing palette"},
		{"palette not string", `palette { x = 1 }`, "expected a color string"},
		{"bad picker color", `picker { color = "nope" }`, "picker.color"},
		{"bad space", `picker { space = "p3" }`, "picker.space"},
		{"bad gamut map", `picker { gamut_map = "fancy" }`, "picker.gamut_map"},
		{"channels space", `channels "cmyk" { values = [1, 2, 3] }`, `channels "cmyk"`},
		{"channels count", `channels "hsl" { values = [1, 2] }`, "expected 3 values"},
		{"channels duplicate", "channels \"hsl\" { values = [1, 2, 3] }\nchannels \"hsl\" { values = [1, 2, 3] }", "duplicate"},
		{"convert failure", `picker { color = convert("nope", "hsl") }`, "decoding"},
		{"convert space", `picker { color = convert("red", "cmyk") }`, "decoding"},
		{"unknown block", `theme { x = 1 }`, "decoding"},
		{"unknown palette ref", `picker { color = palette.missing }`, "decoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			if err == nil {
				t.Fatalf("Parse() succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg, err := Parse([]byte(sampleHCL), "sample.hcl")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	p := picker.New(cfg.Options()...)
	if p.Space() != picker.HSL {
		t.Errorf("Space() = %q, want hsl", p.Space())
	}
	if !strings.HasPrefix(p.Color(), "hsl(") {
		t.Errorf("Color() = %q, want an hsl() color", p.Color())
	}

	want := picker.ChannelGroup{Values: [3]string{"10", "20", "30"}, Alpha: "100"}
	if diff := cmp.Diff(want, p.Group(picker.DisplayP3)); diff != "" {
		t.Errorf("Group(display-p3) mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_ChannelsSeedInitialSpace(t *testing.T) {
	src := `
picker {
  space = "hsl"
}

channels "hsl" {
  values = ["200", "50", "40"]
}
`
	cfg, err := Parse([]byte(src), "seed.hcl")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	p := picker.New(cfg.Options()...)
	if got := p.Color(); got != "hsl(200 50% 40%)" {
		t.Errorf("Color() = %q, want hsl(200 50%% 40%%)", got)
	}
}

func TestConvertColor(t *testing.T) {
	tests := []struct {
		input string
		space string
		want  string
	}{
		{"red", "srgb", "rgb(100% 0% 0%)"},
		{"red", "hsl", "hsl(0 100% 50%)"},
		{"#336699", "display-p3", ""},
		{"oklch(75% .3 180deg)", "oklch", "oklch(75% 0.30 180)"},
	}

	for _, tt := range tests {
		got, err := ConvertColor(tt.input, tt.space, color.Clip)
		if err != nil {
			t.Fatalf("ConvertColor(%q, %q) error: %v", tt.input, tt.space, err)
		}
		if tt.want == "" {
			if !strings.HasPrefix(got, "color("+tt.space+" ") {
				t.Errorf("ConvertColor(%q, %q) = %q", tt.input, tt.space, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ConvertColor(%q, %q) = %q, want %q", tt.input, tt.space, got, tt.want)
		}
	}
}

func TestParseGamutMethod(t *testing.T) {
	for name, want := range map[string]color.GamutMethod{"": color.Clip, "clip": color.Clip, "css": color.CSS} {
		got, err := ParseGamutMethod(name)
		if err != nil || got != want {
			t.Errorf("ParseGamutMethod(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseGamutMethod("nope"); err == nil {
		t.Error("ParseGamutMethod(nope) succeeded, want error")
	}
}
