package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/config"
	"github.com/jsvensson/chromapick/internal/picker"
)

const diagSource = "chromapick"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

// configBlocks are the top-level blocks of a config document.
var configBlocks = map[string][]string{
	"palette":  nil,
	"picker":   {"color", "space", "gamut_map"},
	"channels": {"values", "alpha"},
	"log":      {"verbosity", "file"},
}

// AnalysisResult holds all information produced by analyzing a document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     []string                  // palette names in source order
	Symbols     map[string]protocol.Range // "palette.accent" -> definition range
	Colors      []ColorLocation
}

// ColorLocation records a color found at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Text  string // resolved color text
	Color color.Color
	IsRef bool // true if the expression is not a literal
}

// IsConfigDocument reports whether uri names a config file rather than a
// document that is only scanned for color literals.
func IsConfigDocument(uri string) bool {
	return strings.HasSuffix(strings.ToLower(uri), ".hcl")
}

// Analyze produces diagnostics, symbols and color locations for a document.
// Config documents get full HCL analysis; anything else is scanned for
// CSS color literals.
func Analyze(uri, content string) *AnalysisResult {
	if IsConfigDocument(uri) {
		return analyzeConfig(uri, content)
	}
	return scanDocument(content)
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// analyzeConfig parses a config document and collects all errors rather than
// stopping at the first one.
func analyzeConfig(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		// Keep palette names so completion works while the file is broken.
		if body, ok := file.Body.(*hclsyntax.Body); ok {
			result.collectPalette(body)
		}
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	for _, attr := range body.Attributes {
		result.addError(attr.SrcRange, fmt.Sprintf("unexpected top-level attribute %q", attr.Name))
	}

	palette := make(map[string]string)
	for _, block := range body.Blocks {
		if block.Type == "palette" {
			result.analyzePalette(block.Body, palette)
		}
	}

	ctx := config.EvalContext(palette)
	seen := make(map[picker.Space]bool)
	for _, block := range body.Blocks {
		switch block.Type {
		case "palette":
		case "picker":
			result.analyzePicker(block.Body, ctx)
		case "channels":
			result.analyzeChannels(block, ctx, seen)
		case "log":
			result.checkAttributes(block.Body, "log")
		default:
			result.addError(block.DefRange(), fmt.Sprintf("unknown block %q", block.Type))
		}
	}

	return result
}

// analyzePalette records each palette entry as a symbol and a color.
func (r *AnalysisResult) analyzePalette(body *hclsyntax.Body, palette map[string]string) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), fmt.Sprintf("palette.%s: nested blocks are not allowed", block.Type))
	}

	for _, attr := range sortedAttributes(body) {
		name := "palette." + attr.Name
		r.Symbols[name] = hclRangeToLSP(attr.SrcRange)
		r.Palette = append(r.Palette, attr.Name)

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", name, diags.Error()))
			continue
		}
		if text, ok := r.colorValue(attr, val, name); ok {
			palette[attr.Name] = text
		}
	}
}

// collectPalette records palette symbols without evaluating them.
func (r *AnalysisResult) collectPalette(body *hclsyntax.Body) {
	for _, block := range body.Blocks {
		if block.Type != "palette" {
			continue
		}
		for _, attr := range sortedAttributes(block.Body) {
			r.Symbols["palette."+attr.Name] = hclRangeToLSP(attr.SrcRange)
			r.Palette = append(r.Palette, attr.Name)
		}
	}
}

// analyzePicker validates the picker block attributes.
func (r *AnalysisResult) analyzePicker(body *hclsyntax.Body, ctx *hcl.EvalContext) {
	r.checkAttributes(body, "picker")

	for _, attr := range sortedAttributes(body) {
		name := "picker." + attr.Name
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("%s: %s", name, diags.Error()))
			continue
		}

		switch attr.Name {
		case "color":
			r.colorValue(attr, val, name)
		case "space":
			text, ok := r.stringValue(attr, val, name)
			if !ok {
				continue
			}
			if _, err := picker.ParseSpace(text); err != nil {
				r.addError(attr.Expr.Range(), fmt.Sprintf("%s: %s", name, err))
			}
		case "gamut_map":
			text, ok := r.stringValue(attr, val, name)
			if !ok {
				continue
			}
			if _, err := config.ParseGamutMethod(text); err != nil {
				r.addError(attr.Expr.Range(), fmt.Sprintf("%s: %s", name, err))
			}
		}
	}
}

// analyzeChannels validates one channels block: a known space label, three
// values and no duplicate space.
func (r *AnalysisResult) analyzeChannels(block *hclsyntax.Block, ctx *hcl.EvalContext, seen map[picker.Space]bool) {
	r.checkAttributes(block.Body, "channels")

	if len(block.Labels) != 1 {
		r.addError(block.DefRange(), "channels block needs exactly one space label")
		return
	}

	label := block.Labels[0]
	labelRange := block.LabelRanges[0]
	s, err := picker.ParseSpace(label)
	if err != nil {
		r.addError(labelRange, fmt.Sprintf("channels %q: %s", label, err))
	} else if seen[s] {
		r.addError(labelRange, fmt.Sprintf("channels %q: duplicate block", label))
	} else {
		seen[s] = true
	}

	values, ok := block.Body.Attributes["values"]
	if !ok {
		r.addError(block.DefRange(), fmt.Sprintf("channels %q: missing values", label))
		return
	}
	val, diags := values.Expr.Value(ctx)
	if diags.HasErrors() {
		r.addError(values.SrcRange, fmt.Sprintf("channels %q: %s", label, diags.Error()))
		return
	}
	if !val.Type().IsTupleType() && !val.Type().IsListType() {
		r.addError(values.Expr.Range(), fmt.Sprintf("channels %q: values must be a list", label))
		return
	}
	if n := val.LengthInt(); n != 3 {
		r.addError(values.Expr.Range(), fmt.Sprintf("channels %q: expected 3 values, got %d", label, n))
	}
}

// checkAttributes warns about attributes the block does not define.
func (r *AnalysisResult) checkAttributes(body *hclsyntax.Body, blockName string) {
	known := configBlocks[blockName]
	for _, attr := range sortedAttributes(body) {
		found := false
		for _, name := range known {
			if attr.Name == name {
				found = true
				break
			}
		}
		if !found {
			r.addWarning(attr.SrcRange, fmt.Sprintf("%s: unknown attribute %q", blockName, attr.Name))
		}
	}
}

// stringValue checks that val is a string.
func (r *AnalysisResult) stringValue(attr *hclsyntax.Attribute, val cty.Value, name string) (string, bool) {
	if val.Type() != cty.String || val.IsNull() {
		r.addError(attr.SrcRange, fmt.Sprintf("%s: expected a string, got %s", name, val.Type().FriendlyName()))
		return "", false
	}
	return val.AsString(), true
}

// colorValue checks that val is a color string and records its location.
func (r *AnalysisResult) colorValue(attr *hclsyntax.Attribute, val cty.Value, name string) (string, bool) {
	text, ok := r.stringValue(attr, val, name)
	if !ok {
		return "", false
	}

	c, err := color.Parse(text)
	if err != nil {
		r.addError(attr.Expr.Range(), fmt.Sprintf("%s: %s", name, err))
		return "", false
	}

	r.Colors = append(r.Colors, ColorLocation{
		Range: hclRangeToLSP(attr.Expr.Range()),
		Text:  text,
		Color: c,
		IsRef: isReferenceExpr(attr.Expr),
	})
	return text, true
}

// isReferenceExpr reports whether expr is anything but a plain string literal.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	tmpl, ok := expr.(*hclsyntax.TemplateExpr)
	if !ok {
		return true
	}
	return !tmpl.IsStringLiteral()
}

// sortedAttributes returns body attributes in source order.
func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.add(hclRangeToLSP(rng), DiagError, msg)
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.add(hclRangeToLSP(rng), DiagWarning, msg)
}

func (r *AnalysisResult) add(rng protocol.Range, sev protocol.DiagnosticSeverity, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &sev,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
