package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "extra whitespace normalized",
			input:    `picker   {   space   =   "hsl"   }`,
			expected: `picker { space = "hsl" }`,
		},
		{
			name: "already formatted stays same",
			input: `picker {
  space = "oklch"
}
`,
			expected: `picker {
  space = "oklch"
}
`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "picker { space = \"hsl\" }\n\n\n\npalette { base = \"#191724\" }",
			expected: "picker { space = \"hsl\" }\n\npalette { base = \"#191724\" }",
		},
		{
			name:     "single blank line preserved",
			input:    "picker { space = \"hsl\" }\n\npalette { base = \"#191724\" }",
			expected: "picker { space = \"hsl\" }\n\npalette { base = \"#191724\" }",
		},
		{
			name:     "blank line after opening brace removed",
			input:    "palette {\n\n  base = \"#191724\"\n}",
			expected: "palette {\n  base = \"#191724\"\n}",
		},
		{
			name:     "blank line before closing brace removed",
			input:    "palette {\n  base = \"#191724\"\n\n}",
			expected: "palette {\n  base = \"#191724\"\n}",
		},
		{
			name:     "labeled block",
			input:    "channels \"hsl\" {\n\n  values = [1, 2, 3]\n\n}",
			expected: "channels \"hsl\" {\n  values = [1, 2, 3]\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.expected {
				t.Errorf("Format() =\n%q\nwant\n%q", got, tt.expected)
			}
		})
	}
}

func TestFormatFile(t *testing.T) {
	path := writeTempHCL(t, "picker   {   space   =   \"hsl\"   }")

	changed, err := FormatFile(path, true)
	if err != nil {
		t.Fatalf("FormatFile(check) error: %v", err)
	}
	if !changed {
		t.Error("FormatFile(check) = false, want true")
	}
	if src, _ := os.ReadFile(path); string(src) != "picker   {   space   =   \"hsl\"   }" {
		t.Errorf("check mode rewrote the file: %q", src)
	}

	changed, err = FormatFile(path, false)
	if err != nil {
		t.Fatalf("FormatFile() error: %v", err)
	}
	if !changed {
		t.Error("FormatFile() = false, want true")
	}
	if src, _ := os.ReadFile(path); string(src) != `picker { space = "hsl" }` {
		t.Errorf("formatted file = %q", src)
	}

	changed, err = FormatFile(path, false)
	if err != nil || changed {
		t.Errorf("second FormatFile() = %v, %v; want false, nil", changed, err)
	}
}

func TestFormatFileMissing(t *testing.T) {
	if _, err := FormatFile(filepath.Join(t.TempDir(), "nope.hcl"), false); err == nil {
		t.Error("FormatFile(missing) succeeded, want error")
	}
}
