package lsp

import (
	"fmt"
	"strings"

	"github.com/apparebit/pitty"
	"github.com/apparebit/pitty/internal/themefile"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagnosticSource = "pitty"

// metaAttributes are the attributes a meta block may carry.
var metaAttributes = map[string]bool{
	"name":       true,
	"author":     true,
	"appearance": true,
	"url":        true,
}

// AnalysisResult holds all information produced by analyzing a theme file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     map[string]pitty.Color
	Theme       pitty.Theme
	Symbols     map[string]protocol.Range // "palette.love" -> definition range
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color pitty.Color
	IsRef bool // true if this is a palette reference rather than a literal
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

// Analyze parses theme file content from memory and produces diagnostics, a
// symbol table, color locations, and the resolved theme. It collects ALL
// errors rather than short-circuiting on the first. Evaluation matches the
// theme file loader: palette entries may call color functions but cannot
// reference other palette entries, while the colors and ansi blocks see the
// full palette.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Palette: make(map[string]pitty.Color),
		Theme:   pitty.DefaultTheme(),
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		// Cannot proceed with semantic analysis if syntax is broken
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		start := hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}
		result.addError(start, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	var metaBody *hclsyntax.Body
	var paletteBody *hclsyntax.Body
	var colorsBody *hclsyntax.Body
	var ansiBody *hclsyntax.Body
	var ansiBlockRange hcl.Range

	for _, block := range body.Blocks {
		switch block.Type {
		case "meta":
			metaBody = block.Body
		case "palette":
			paletteBody = block.Body
		case "colors":
			colorsBody = block.Body
		case "ansi":
			ansiBody = block.Body
			ansiBlockRange = block.DefRange()
		default:
			result.addWarning(block.DefRange(), fmt.Sprintf("unknown block type %q", block.Type))
		}
	}
	for _, attr := range body.Attributes {
		result.addWarning(attr.SrcRange, fmt.Sprintf("unexpected top-level attribute %q", attr.Name))
	}

	if metaBody != nil {
		result.analyzeMeta(metaBody)
	}

	if paletteBody != nil {
		result.analyzePalette(paletteBody)
	}

	ctx := themefile.EvalContext(result.Palette)

	if colorsBody != nil {
		result.analyzeColors(colorsBody, ctx)
	}

	resolved := make(map[string]bool)
	if ansiBody != nil {
		resolved = result.analyzeAnsi(ansiBody, ctx)
	}
	result.validateANSICompleteness(resolved, ansiBlockRange, filename)

	return result
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
		Source:   strPtr(diagnosticSource),
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
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// analyzeMeta checks the meta block: only the known attributes, all strings,
// and an appearance of either "light" or "dark".
func (r *AnalysisResult) analyzeMeta(body *hclsyntax.Body) {
	for _, attr := range body.Attributes {
		if !metaAttributes[attr.Name] {
			r.addWarning(attr.SrcRange, fmt.Sprintf("meta.%s: unknown attribute", attr.Name))
			continue
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("meta.%s: %s", attr.Name, diags.Error()))
			continue
		}
		if val.Type() != cty.String {
			r.addError(attr.SrcRange, fmt.Sprintf("meta.%s: expected a string, got %s",
				attr.Name, val.Type().FriendlyName()))
			continue
		}

		if attr.Name == "appearance" {
			if a := val.AsString(); a != "light" && a != "dark" {
				r.addWarning(attr.SrcRange,
					fmt.Sprintf("meta.appearance: %q is neither \"light\" nor \"dark\"", a))
			}
		}
	}

	for _, block := range body.Blocks {
		r.addWarning(block.DefRange(), fmt.Sprintf("meta.%s: unexpected block", block.Type))
	}
}

// analyzePalette collects palette entries, recording symbols and color
// locations. Entries are evaluated without the palette variable in scope,
// so a palette entry referencing another is an error, just as it is when
// loading the file for real.
func (r *AnalysisResult) analyzePalette(body *hclsyntax.Body) {
	ctx := themefile.EvalContext(nil)

	for _, attr := range body.Attributes {
		symbol := "palette." + attr.Name
		r.Symbols[symbol] = hclRangeToLSP(attr.SrcRange)

		color, ok := r.evalColor(attr, ctx, symbol)
		if !ok {
			continue
		}
		r.Palette[attr.Name] = color
	}

	for _, block := range body.Blocks {
		r.addError(block.DefRange(),
			fmt.Sprintf("palette.%s: palette entries are attributes, not blocks", block.Type))
	}
}

// analyzeColors walks the colors block, which only knows foreground and
// background, and applies the values to the resolved theme.
func (r *AnalysisResult) analyzeColors(body *hclsyntax.Body, ctx *hcl.EvalContext) {
	for _, attr := range body.Attributes {
		var layer pitty.Layer
		switch attr.Name {
		case "foreground":
			layer = pitty.Foreground
		case "background":
			layer = pitty.Background
		default:
			r.addError(attr.SrcRange,
				fmt.Sprintf("colors.%s: unknown attribute (valid: foreground, background)", attr.Name))
			continue
		}

		color, ok := r.evalColor(attr, ctx, "colors."+attr.Name)
		if !ok {
			continue
		}
		r.Theme.SetDefault(layer, color)
	}
}

// analyzeAnsi walks the ansi block and applies the values to the resolved
// theme. It returns the set of successfully resolved color names.
func (r *AnalysisResult) analyzeAnsi(body *hclsyntax.Body, ctx *hcl.EvalContext) map[string]bool {
	resolved := make(map[string]bool)

	for _, attr := range body.Attributes {
		index, known := themefile.AnsiIndex(attr.Name)
		if !known {
			r.addError(attr.SrcRange, fmt.Sprintf("ansi.%s: unknown color name", attr.Name))
			continue
		}

		color, ok := r.evalColor(attr, ctx, "ansi."+attr.Name)
		if !ok {
			continue
		}
		r.Theme.SetAnsi(index, color)
		resolved[attr.Name] = true
	}

	return resolved
}

// evalColor evaluates an attribute expression to a color, recording a
// diagnostic on failure and a color location on success.
func (r *AnalysisResult) evalColor(attr *hclsyntax.Attribute, ctx *hcl.EvalContext, label string) (pitty.Color, bool) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", label, diags.Error()))
		return pitty.Color{}, false
	}

	if val.Type() != cty.String {
		r.addError(attr.SrcRange, fmt.Sprintf("%s: expected a color string, got %s",
			label, val.Type().FriendlyName()))
		return pitty.Color{}, false
	}

	color, err := pitty.Parse(val.AsString())
	if err != nil {
		r.addError(attr.SrcRange, fmt.Sprintf("%s: %s", label, err))
		return pitty.Color{}, false
	}

	r.Colors = append(r.Colors, ColorLocation{
		Range: hclRangeToLSP(attr.Expr.Range()),
		Color: color,
		IsRef: isReferenceExpr(attr.Expr),
	})

	return color, true
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.love) rather than a literal value.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}

// validateANSICompleteness checks that all 16 required ANSI colors are
// present and emits a warning diagnostic listing any missing ones.
func (r *AnalysisResult) validateANSICompleteness(resolved map[string]bool, blockRange hcl.Range, filename string) {
	var missing []string
	for _, name := range themefile.RequiredANSIColors {
		if !resolved[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		rng := blockRange
		if rng.Filename == "" {
			rng = hcl.Range{
				Filename: filename,
				Start:    hcl.Pos{Line: 1, Column: 1},
				End:      hcl.Pos{Line: 1, Column: 1},
			}
		}
		r.addWarning(rng, fmt.Sprintf("ansi block missing colors: %s", strings.Join(missing, ", ")))
	}
}
