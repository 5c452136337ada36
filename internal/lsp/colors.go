package lsp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/config"
	"github.com/jsvensson/chromapick/internal/picker"
)

// colorToLSP converts a color to a protocol.Color, clipped into sRGB.
func colorToLSP(c color.Color) protocol.Color {
	rgb, err := color.Convert(c, color.SRGB, color.WithGamutMap(color.Clip))
	if err != nil {
		log.Errorf("converting %v to srgb: %s", c, err)
		return protocol.Color{Alpha: 1}
	}
	return protocol.Color{
		Red:   float32(rgb.Coords[0]),
		Green: float32(rgb.Coords[1]),
		Blue:  float32(rgb.Coords[2]),
		Alpha: float32(c.Alpha),
	}
}

// lspColorText renders a protocol.Color as a color() string the picker can
// read.
func lspColorText(c protocol.Color) string {
	f := func(v float32) string {
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return fmt.Sprintf("color(srgb %s %s %s / %s)", f(c.Red), f(c.Green), f(c.Blue), f(c.Alpha))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers the picked color as a hex literal followed by its
// canonical string in every picker space. References and expressions in
// config documents are never replaced.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if text == "" || strings.HasPrefix(text, "palette.") {
		return []protocol.ColorPresentation{}
	}

	quote := ""
	if strings.HasPrefix(text, "\"") {
		quote = "\""
	} else if text[0] != '#' && !color.IsFunction(strings.SplitN(text, "(", 2)[0]) {
		return []protocol.ColorPresentation{}
	}

	src := lspColorText(params.Color)
	var labels []string
	if hex, err := color.Hex(src); err == nil {
		labels = append(labels, hex)
	}
	for _, s := range picker.Spaces() {
		converted, err := config.ConvertColor(src, string(s), color.Clip)
		if err != nil {
			log.Warningf("presenting %s in %s: %s", src, s, err)
			continue
		}
		labels = append(labels, converted)
	}

	presentations := make([]protocol.ColorPresentation, 0, len(labels))
	seen := make(map[string]bool)
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: quote + label + quote,
			},
		})
	}
	return presentations
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
