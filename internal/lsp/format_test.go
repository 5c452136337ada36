package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFormatEdits(t *testing.T) {
	content := "picker   {\n  space   =   \"hsl\"\n}\n"

	edits := formatEdits(content)
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}

	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 3, Character: 0},
	}
	if edits[0].Range != want {
		t.Errorf("Range = %+v, want %+v", edits[0].Range, want)
	}
	if edits[0].NewText != "picker {\n  space = \"hsl\"\n}\n" {
		t.Errorf("NewText = %q", edits[0].NewText)
	}
}

func TestFormatEdits_AlreadyFormatted(t *testing.T) {
	edits := formatEdits("picker {\n  space = \"hsl\"\n}\n")
	if edits == nil || len(edits) != 0 {
		t.Errorf("expected empty non-nil edits, got %v", edits)
	}
}

func TestFormatEdits_InvalidHCL(t *testing.T) {
	// Partial input must not break formatting while the user is typing.
	edits := formatEdits("picker   {\n  space =")
	for _, e := range edits {
		if e.Range.End != (protocol.Position{Line: 1, Character: 9}) {
			t.Errorf("edit should span the whole document, End = %+v", e.Range.End)
		}
	}
}
