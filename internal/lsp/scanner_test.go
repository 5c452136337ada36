package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func colorTexts(result *AnalysisResult) []string {
	texts := make([]string, len(result.Colors))
	for i, cl := range result.Colors {
		texts[i] = cl.Text
	}
	return texts
}

func TestScanDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "css declarations",
			content: "a { color: #ff8800; background: oklch(75% .3 180deg); }",
			want:    []string{"#ff8800", "oklch(75% .3 180deg)"},
		},
		{
			name:    "colors inside strings",
			content: `const accent = "#336699"; const ink = 'hsl(220 50% 40% / 80%)';`,
			want:    []string{"#336699", "hsl(220 50% 40% / 80%)"},
		},
		{
			name:    "color function with color space",
			content: "p3 := color(display-p3 1 0 0)",
			want:    []string{"color(display-p3 1 0 0)"},
		},
		{
			name:    "ids and other functions ignored",
			content: "#main { width: calc(100% - 2px); background: url(x.png) }",
			want:    []string{},
		},
		{
			name:    "apostrophe does not hide colors",
			content: "don't forget #fff\nand #000",
			want:    []string{"#fff", "#000"},
		},
		{
			name:    "nested parentheses",
			content: "rgb(10 20 30) lab(50% 20 -30)",
			want:    []string{"rgb(10 20 30)", "lab(50% 20 -30)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze("file:///x/doc.txt", tt.content)
			if diff := cmp.Diff(tt.want, colorTexts(result)); diff != "" {
				t.Errorf("colors mismatch (-want +got):\n%s", diff)
			}
			if len(result.Diagnostics) != 0 {
				t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
			}
		})
	}
}

func TestScanDocument_Ranges(t *testing.T) {
	content := "body {\n  color: \"#ff8800\";\n  fill: rgb(1 2 3);\n}"
	result := Analyze("file:///x/style.css", content)

	want := []protocol.Range{
		{Start: protocol.Position{Line: 1, Character: 10}, End: protocol.Position{Line: 1, Character: 17}},
		{Start: protocol.Position{Line: 2, Character: 8}, End: protocol.Position{Line: 2, Character: 18}},
	}
	if len(result.Colors) != len(want) {
		t.Fatalf("expected %d colors, got %d", len(want), len(result.Colors))
	}
	for i, cl := range result.Colors {
		if diff := cmp.Diff(want[i], cl.Range); diff != "" {
			t.Errorf("color %d range mismatch (-want +got):\n%s", i, diff)
		}
		if got := extractText(content, cl.Range); got != cl.Text {
			t.Errorf("text at range = %q, want %q", got, cl.Text)
		}
	}
}

func TestScanDocument_InvalidFunctionWarns(t *testing.T) {
	result := Analyze("file:///x/style.css", "a { color: rgb(1 2); }")

	if len(result.Colors) != 0 {
		t.Errorf("expected no colors, got %v", colorTexts(result))
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", result.Diagnostics)
	}
	if sev := result.Diagnostics[0].Severity; sev == nil || *sev != DiagWarning {
		t.Errorf("expected warning severity, got %v", sev)
	}
}

func TestScanDocument_Unterminated(t *testing.T) {
	result := Analyze("file:///x/style.css", "#abc hsl(10 20% ")

	if diff := cmp.Diff([]string{"#abc"}, colorTexts(result)); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
	if !hasDiagnostic(result, "unterminated hsl()") {
		t.Errorf("expected unterminated diagnostic, got %v", result.Diagnostics)
	}
}

func TestLineIndex(t *testing.T) {
	idx := newLineIndex("ab\ncde\n\nf")
	tests := []struct {
		offset int
		want   protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{2, protocol.Position{Line: 0, Character: 2}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{5, protocol.Position{Line: 1, Character: 2}},
		{7, protocol.Position{Line: 2, Character: 0}},
		{8, protocol.Position{Line: 3, Character: 0}},
		{9, protocol.Position{Line: 3, Character: 1}},
	}
	for _, tt := range tests {
		if got := idx.position(tt.offset); got != tt.want {
			t.Errorf("position(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}
