package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// paletteRefAt returns the symbol "palette.<name>" when the cursor is on the
// name of a palette reference. Palette entries are flat, so anything with
// more than one segment after "palette" is not a reference.
func paletteRefAt(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	start, end := col, col
	for start > 0 && isRefChar(line[start-1]) {
		start--
	}
	for end < len(line) && isRefChar(line[end]) {
		end++
	}

	head, name, ok := strings.Cut(line[start:end], ".")
	if !ok || head != "palette" || !isName(name) {
		return ""
	}
	if col <= start+len(head) {
		return ""
	}
	return head + "." + name
}

func isRefChar(b byte) bool {
	return b == '.' || isNameChar(b)
}

func isNameChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '-'
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}

// definition resolves the palette reference under the cursor to the range of
// its entry. It returns nil off a reference or for an undefined entry.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	ref := paletteRefAt(lines[pos.Line], pos.Character)
	if ref == "" {
		return nil
	}
	rng, ok := result.Symbols[ref]
	if !ok {
		return nil
	}
	return &protocol.Location{URI: protocol.DocumentUri(uri), Range: rng}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return definition(result, content, uri, params.Position), nil
}
