package lsp

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/chromapick/internal/color"
)

// lineIndex maps byte offsets to LSP positions. Characters are counted in
// bytes, matching extractText.
type lineIndex []int

func newLineIndex(content string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (idx lineIndex) position(offset int) protocol.Position {
	line := 0
	lo, hi := 0, len(idx)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if idx[mid] <= offset {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return protocol.Position{Line: uint32(line), Character: uint32(offset - idx[line])}
}

func (idx lineIndex) span(start, end int) protocol.Range {
	return protocol.Range{Start: idx.position(start), End: idx.position(end)}
}

// scanDocument finds hex colors and color functions anywhere in content,
// including inside quoted strings. Color functions that fail to parse are
// reported as warnings; hashes that are not colors are ignored.
func scanDocument(content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}
	result.scan(content, 0, newLineIndex(content))
	return result
}

// scan lexes src, which starts at byte offset base of the document.
func (r *AnalysisResult) scan(src string, base int, idx lineIndex) {
	l := css.NewLexer(parse.NewInputString(src))
	offset := 0

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return
		}
		start := offset
		offset += len(data)

		switch tt {
		case css.HashToken:
			text := string(data)
			c, err := color.Parse(text)
			if err != nil {
				continue
			}
			r.Colors = append(r.Colors, ColorLocation{
				Range: idx.span(base+start, base+offset),
				Text:  text,
				Color: c,
			})

		case css.FunctionToken:
			name := strings.TrimSuffix(string(data), "(")
			if !color.IsFunction(name) {
				continue
			}
			var b strings.Builder
			b.Write(data)
			closed := readCall(l, &b, &offset)
			text := b.String()
			rng := idx.span(base+start, base+offset)
			if !closed {
				r.add(rng, DiagWarning, "unterminated "+name+"()")
				return
			}
			c, err := color.Parse(text)
			if err != nil {
				r.add(rng, DiagWarning, err.Error())
				continue
			}
			r.Colors = append(r.Colors, ColorLocation{Range: rng, Text: text, Color: c})

		case css.StringToken, css.BadStringToken:
			inner := data[1:]
			if n := len(inner); n > 0 && (inner[n-1] == data[0] || tt == css.BadStringToken) {
				inner = inner[:n-1]
			}
			r.scan(string(inner), base+start+1, idx)
		}
	}
}

// readCall copies tokens into b up to the parenthesis closing the current
// function. It reports false when the input ends first.
func readCall(l *css.Lexer, b *strings.Builder, offset *int) bool {
	depth := 1
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return false
		}
		*offset += len(data)
		b.Write(data)

		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
}
