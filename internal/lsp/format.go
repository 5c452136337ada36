package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/chromapick/internal/config"
)

// formatEdits returns a single edit replacing the whole document with its
// formatted form, or no edits when it is already formatted.
func formatEdits(content string) []protocol.TextEdit {
	formatted := config.Format(content)
	if formatted == content {
		return []protocol.TextEdit{}
	}

	lines := splitLines(content)
	last := len(lines) - 1
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(last), Character: uint32(len(lines[last]))},
			},
			NewText: formatted,
		},
	}
}

// textDocumentFormatting handles textDocument/formatting for config documents.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	if !IsConfigDocument(uri) {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok || strings.TrimSpace(content) == "" {
		return nil, nil
	}
	return formatEdits(content), nil
}
