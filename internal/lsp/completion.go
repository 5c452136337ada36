package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/chromapick/internal/picker"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// topLevelBlocks are the valid top-level block names, in completion order.
var topLevelBlocks = []string{"palette", "picker", "channels", "log"}

// functionSnippets are the color functions callable from config values.
var functionSnippets = []struct {
	name, detail, snippet string
}{
	{"convert", "convert(color, space)", "convert(${1:color}, \"${2:oklch}\")"},
	{"contrast", "contrast(color)", "contrast(${1:color})"},
	{"gamut", "gamut(color)", "gamut(${1:color})"},
	{"hex", "hex(color)", "hex(${1:color})"},
}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	if paletteItems := tryPaletteCompletion(result, textBeforeCursor); paletteItems != nil {
		return paletteItems
	}

	if strings.HasPrefix(strings.TrimSpace(textBeforeCursor), "channels \"") && !strings.Contains(textBeforeCursor, "{") {
		return spaceCompletions()
	}

	if attr, ok := valueAttribute(textBeforeCursor); ok {
		switch attr {
		case "space":
			return spaceCompletions()
		case "gamut_map":
			return constantCompletions("clip", "css")
		}
		return valueCompletions()
	}

	block := currentBlock(lines, int(pos.Line))
	if block == "" {
		return topLevelCompletions()
	}
	return attributeCompletions(block, lines, int(pos.Line))
}

// tryPaletteCompletion returns the palette names when the text before the
// cursor ends in "palette." or a partial "palette.name".
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || len(result.Palette) == 0 {
		return nil
	}

	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}
	if strings.Contains(textBeforeCursor[idx+len("palette."):], ".") {
		return nil
	}

	kind := protocol.CompletionItemKindColor
	items := make([]protocol.CompletionItem, 0, len(result.Palette))
	for _, name := range result.Palette {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		})
	}
	return items
}

// valueAttribute reports the attribute name when the cursor sits right after
// "name =", optionally inside an opening quote.
func valueAttribute(textBeforeCursor string) (string, bool) {
	name, value, ok := strings.Cut(textBeforeCursor, "=")
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value != "" && value != "\"" {
		return "", false
	}
	return strings.TrimSpace(name), true
}

// valueCompletions returns completion items for a value position, including
// function snippets and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	paletteSnippet := "palette."

	items := make([]protocol.CompletionItem, 0, len(functionSnippets)+1)
	for _, fn := range functionSnippets {
		snippet := fn.snippet
		items = append(items, protocol.CompletionItem{
			Label:            fn.name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fn.detail),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}
	items = append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: &paletteSnippet,
	})
	return items
}

// spaceCompletions lists the picker spaces.
func spaceCompletions() []protocol.CompletionItem {
	spaces := picker.Spaces()
	names := make([]string, len(spaces))
	for i, s := range spaces {
		names[i] = string(s)
	}
	return constantCompletions(names...)
}

func constantCompletions(names ...string) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindEnumMember
	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		})
	}
	return items
}

// currentBlock scans from the top of the file down to the cursor line and
// returns the name of the innermost open block, or "" at the top level.
func currentBlock(lines []string, cursorLine int) string {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		if opens := strings.Count(line, "{"); opens > 0 {
			if parts := strings.Fields(line); len(parts) >= 1 {
				for n := 0; n < opens; n++ {
					stack = append(stack, parts[0])
				}
			}
		}

		for n, closes := 0, strings.Count(line, "}"); n < closes; n++ {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}

// attributeCompletions returns the attributes of block not yet defined in it.
func attributeCompletions(block string, lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range configBlocks[block] {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}
	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		snippet := name + " {\n  $0\n}"
		if name == "channels" {
			snippet = "channels \"${1:hsl}\" {\n  values = [$0]\n}"
		}
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	if !IsConfigDocument(uri) {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	items := complete(s.getResult(uri), content, params.Position)
	return items, nil
}
