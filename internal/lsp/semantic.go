package lsp

import (
	"sort"

	"github.com/apparebit/pitty"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

// Semantic token types (indices 0-6)
var semanticTokenTypes = []string{
	"keyword",   // 0: block names (meta, palette, colors, ansi)
	"property",  // 1: attribute names and palette keys
	"namespace", // 2: the "palette" namespace identifier
	"string",    // 3: color literals
	"function",  // 4: lighten(), darken(), mix()
	"number",    // 5: numeric literals
	"comment",   // 6: comments
}

// Semantic token modifiers (bit flags)
var semanticTokenModifiers = []string{
	"declaration", // bit 0: defining a new symbol
}

// tokenTypeIndices maps type names to their indices for fast lookup
var tokenTypeIndices map[string]uint32

func init() {
	tokenTypeIndices = make(map[string]uint32, len(semanticTokenTypes))
	for i, t := range semanticTokenTypes {
		tokenTypeIndices[t] = uint32(i)
	}
}

// SemanticToken represents a single token with its metadata
type SemanticToken struct {
	Line      uint32 // 0-based line number
	StartChar uint32 // 0-based character offset
	Length    uint32
	Type      uint32 // index into semanticTokenTypes
	Modifiers uint32 // bit flags
}

// encodeTokens converts tokens to LSP format (5 integers per token).
// Uses delta encoding for line numbers and character positions.
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine uint32 = 0
	var prevChar uint32 = 0

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		} else {
			deltaStart = tok.StartChar
		}

		data = append(data,
			deltaLine,
			deltaStart,
			tok.Length,
			tok.Type,
			tok.Modifiers,
		)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// semanticTokensFull generates semantic tokens for the entire document
// content. A document with syntax errors gets no tokens.
func semanticTokensFull(content string) []uint32 {
	file, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return []uint32{}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return []uint32{}
	}

	var tokens []SemanticToken
	tokens = extractTokensFromBody(body, tokens)

	return encodeTokens(tokens)
}

// extractTokensFromBody extracts tokens from an HCL body
func extractTokensFromBody(body *hclsyntax.Body, tokens []SemanticToken) []SemanticToken {
	for _, block := range body.Blocks {
		tokens = append(tokens, SemanticToken{
			Line:      uint32(block.DefRange().Start.Line - 1),
			StartChar: uint32(block.DefRange().Start.Column - 1),
			Length:    uint32(len(block.Type)),
			Type:      tokenTypeIndices["keyword"],
			Modifiers: 0,
		})

		tokens = extractTokensFromBody(block.Body, tokens)
	}

	for name, attr := range body.Attributes {
		// Attribute name (with declaration modifier)
		tokens = append(tokens, SemanticToken{
			Line:      uint32(attr.SrcRange.Start.Line - 1),
			StartChar: uint32(attr.SrcRange.Start.Column - 1),
			Length:    uint32(len(name)),
			Type:      tokenTypeIndices["property"],
			Modifiers: 1, // declaration bit
		})

		tokens = extractTokensFromExpr(attr.Expr, tokens)
	}

	return tokens
}

// extractTokensFromExpr extracts tokens from an HCL expression
func extractTokensFromExpr(expr hclsyntax.Expression, tokens []SemanticToken) []SemanticToken {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		tokens = extractTokensFromLiteral(e, tokens)
	case *hclsyntax.TemplateExpr:
		// Quoted strings parse as single-part templates
		for _, part := range e.Parts {
			tokens = extractTokensFromExpr(part, tokens)
		}
	case *hclsyntax.ScopeTraversalExpr:
		tokens = extractTokensFromTraversal(e, tokens)
	case *hclsyntax.FunctionCallExpr:
		tokens = extractTokensFromFunctionCall(e, tokens)
	case *hclsyntax.RelativeTraversalExpr:
		tokens = extractTokensFromExpr(e.Source, tokens)
	}
	return tokens
}

// extractTokensFromLiteral handles string and number literals. String
// literals only produce a token when they spell a recognizable color, in
// any of the notations the color parser accepts.
func extractTokensFromLiteral(expr *hclsyntax.LiteralValueExpr, tokens []SemanticToken) []SemanticToken {
	val := expr.Val
	switch val.Type() {
	case cty.String:
		if _, err := pitty.Parse(val.AsString()); err != nil {
			return tokens
		}
		tokens = append(tokens, SemanticToken{
			Line:      uint32(expr.SrcRange.Start.Line - 1),
			StartChar: uint32(expr.SrcRange.Start.Column - 1),
			Length:    uint32(expr.SrcRange.End.Column - expr.SrcRange.Start.Column),
			Type:      tokenTypeIndices["string"],
			Modifiers: 0,
		})
	case cty.Number:
		tokens = append(tokens, SemanticToken{
			Line:      uint32(expr.SrcRange.Start.Line - 1),
			StartChar: uint32(expr.SrcRange.Start.Column - 1),
			Length:    uint32(expr.SrcRange.End.Column - expr.SrcRange.Start.Column),
			Type:      tokenTypeIndices["number"],
			Modifiers: 0,
		})
	}
	return tokens
}

// extractTokensFromTraversal handles palette references like palette.love
func extractTokensFromTraversal(expr *hclsyntax.ScopeTraversalExpr, tokens []SemanticToken) []SemanticToken {
	if len(expr.Traversal) == 0 {
		return tokens
	}

	first, ok := expr.Traversal[0].(hcl.TraverseRoot)
	if !ok || first.Name != "palette" {
		return tokens
	}

	// Tokenize the palette root as a namespace
	tokens = append(tokens, SemanticToken{
		Line:      uint32(first.SrcRange.Start.Line - 1),
		StartChar: uint32(first.SrcRange.Start.Column - 1),
		Length:    uint32(len(first.Name)),
		Type:      tokenTypeIndices["namespace"],
		Modifiers: 0,
	})

	// Tokenize each subsequent segment as a property. The segment range
	// includes the leading dot, so anchor on the end of the range.
	for i := 1; i < len(expr.Traversal); i++ {
		if seg, ok := expr.Traversal[i].(hcl.TraverseAttr); ok {
			tokens = append(tokens, SemanticToken{
				Line:      uint32(seg.SrcRange.End.Line - 1),
				StartChar: uint32(seg.SrcRange.End.Column - 1 - len(seg.Name)),
				Length:    uint32(len(seg.Name)),
				Type:      tokenTypeIndices["property"],
				Modifiers: 0,
			})
		}
	}

	return tokens
}

// extractTokensFromFunctionCall handles function calls like lighten()
func extractTokensFromFunctionCall(expr *hclsyntax.FunctionCallExpr, tokens []SemanticToken) []SemanticToken {
	tokens = append(tokens, SemanticToken{
		Line:      uint32(expr.NameRange.Start.Line - 1),
		StartChar: uint32(expr.NameRange.Start.Column - 1),
		Length:    uint32(len(expr.Name)),
		Type:      tokenTypeIndices["function"],
		Modifiers: 0,
	})

	for _, arg := range expr.Args {
		tokens = extractTokensFromExpr(arg, tokens)
	}

	return tokens
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full requests.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokensFull(content)}, nil
}
