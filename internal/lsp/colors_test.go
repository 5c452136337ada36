package lsp

import (
	"math"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/chromapick/internal/color"
)

func mustParse(t *testing.T, text string) color.Color {
	t.Helper()
	c, err := color.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", text, err)
	}
	return c
}

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  protocol.Color
	}{
		{
			name:  "pure red",
			input: "#ff0000",
			want:  protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "mid gray",
			input: "#808080",
			want:  protocol.Color{Red: float32(128) / 255.0, Green: float32(128) / 255.0, Blue: float32(128) / 255.0, Alpha: 1.0},
		},
		{
			name:  "half transparent blue",
			input: "rgb(0 0 255 / 50%)",
			want:  protocol.Color{Red: 0.0, Green: 0.0, Blue: 1.0, Alpha: 0.5},
		},
		{
			name:  "wide gamut is clipped",
			input: "color(display-p3 1 0 0)",
			want:  protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "oklch white",
			input: "oklch(100% 0 0)",
			want:  protocol.Color{Red: 1.0, Green: 1.0, Blue: 1.0, Alpha: 1.0},
		},
	}

	const tolerance = 1e-4
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorToLSP(mustParse(t, tt.input))
			check := func(channel string, got, want float32) {
				if math.Abs(float64(got-want)) > tolerance {
					t.Errorf("%s: got %f, want %f", channel, got, want)
				}
			}
			check("Red", got.Red, tt.want.Red)
			check("Green", got.Green, tt.want.Green)
			check("Blue", got.Blue, tt.want.Blue)
			check("Alpha", got.Alpha, tt.want.Alpha)
		})
	}
}

func TestLSPColorText(t *testing.T) {
	got := lspColorText(protocol.Color{Red: 1, Green: 0.5, Blue: 0, Alpha: 1})
	if got != "color(srgb 1 0.5 0 / 1)" {
		t.Errorf("lspColorText() = %q", got)
	}
	if _, err := color.Parse(got); err != nil {
		t.Errorf("lspColorText() output does not parse: %v", err)
	}
}

func TestDocumentColors(t *testing.T) {
	result := Analyze("file:///x/style.css", "a { color: #ff0000; background: hsl(120 100% 50%) }")

	infos := documentColors(result)
	if len(infos) != 2 {
		t.Fatalf("expected 2 color infos, got %d", len(infos))
	}
	for i, info := range infos {
		if info.Range != result.Colors[i].Range {
			t.Errorf("info %d range = %+v, want %+v", i, info.Range, result.Colors[i].Range)
		}
	}
	if infos[1].Color.Green < 0.999 {
		t.Errorf("hsl green = %+v", infos[1].Color)
	}
}

func TestDocumentColors_NilResult(t *testing.T) {
	infos := documentColors(nil)
	if infos == nil {
		t.Fatal("expected non-nil empty slice for nil result")
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 items, got %d", len(infos))
	}
}

func presentationLabels(ps []protocol.ColorPresentation) []string {
	labels := make([]string, len(ps))
	for i, p := range ps {
		labels[i] = p.Label
	}
	return labels
}

func TestColorPresentation_QuotedLiteral(t *testing.T) {
	content := "palette {\n  base = \"#191724\"\n}\n"
	params := &protocol.ColorPresentationParams{
		Color: protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 9},
			End:   protocol.Position{Line: 1, Character: 18},
		},
	}

	presentations := colorPresentation(content, params)
	if len(presentations) < 2 {
		t.Fatalf("expected a hex presentation plus one per space, got %v", presentationLabels(presentations))
	}

	first := presentations[0]
	if first.Label != "#ff0000" {
		t.Errorf("first label = %q, want #ff0000", first.Label)
	}
	if first.TextEdit == nil || first.TextEdit.NewText != "\"#ff0000\"" {
		t.Errorf("first edit = %+v, want quoted hex", first.TextEdit)
	}
	if first.TextEdit.Range != params.Range {
		t.Errorf("expected TextEdit range to match params range")
	}

	labels := make(map[string]bool)
	for _, p := range presentations {
		if labels[p.Label] {
			t.Errorf("duplicate label %q", p.Label)
		}
		labels[p.Label] = true
	}
	for _, want := range []string{"hsl(0 100% 50%)", "rgb(100% 0% 0%)"} {
		if !labels[want] {
			t.Errorf("expected presentation %q in %v", want, presentationLabels(presentations))
		}
	}
}

func TestColorPresentation_BareFunction(t *testing.T) {
	content := "a { color: hsl(0 0% 0%); }"
	params := &protocol.ColorPresentationParams{
		Color: protocol.Color{Red: 0.0, Green: 1.0, Blue: 0.0, Alpha: 1.0},
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 11},
			End:   protocol.Position{Line: 0, Character: 23},
		},
	}

	presentations := colorPresentation(content, params)
	if len(presentations) == 0 {
		t.Fatal("expected presentations for a color function")
	}
	if got := presentations[0].TextEdit.NewText; got != "#00ff00" {
		t.Errorf("NewText = %q, want unquoted #00ff00", got)
	}
}

func TestColorPresentation_NotReplaced(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rng     protocol.Range
	}{
		{
			name:    "palette reference",
			content: "picker {\n  color = palette.base\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 10},
				End:   protocol.Position{Line: 1, Character: 22},
			},
		},
		{
			name:    "function call",
			content: "picker {\n  color = convert(\"red\", \"hsl\")\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 10},
				End:   protocol.Position{Line: 1, Character: 31},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &protocol.ColorPresentationParams{
				Color: protocol.Color{Red: 0.1, Green: 0.09, Blue: 0.14, Alpha: 1.0},
				Range: tt.rng,
			}
			if ps := colorPresentation(tt.content, params); len(ps) != 0 {
				t.Errorf("expected no presentations, got %v", presentationLabels(ps))
			}
		})
	}
}

func TestColorPresentation_Integration(t *testing.T) {
	content := `palette {
  base = "#191724"
}

picker {
  color = palette.base
}
`
	result := Analyze("chromapick.hcl", content)
	infos := documentColors(result)
	if len(infos) != 2 {
		t.Fatalf("expected 2 color infos, got %d", len(infos))
	}

	for i, cl := range result.Colors {
		params := &protocol.ColorPresentationParams{
			Color: infos[i].Color,
			Range: infos[i].Range,
		}
		presentations := colorPresentation(content, params)

		if cl.IsRef && len(presentations) != 0 {
			t.Errorf("color %d: expected no presentations for a reference, got %d", i, len(presentations))
		}
		if !cl.IsRef && len(presentations) == 0 {
			t.Errorf("color %d: expected presentations for a literal", i)
		}
	}
}
