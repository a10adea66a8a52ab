package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// paletteRefAtCursor extracts the palette reference containing the cursor
// position. The palette is flat, so a reference is always exactly
// "palette.<key>"; the cursor may sit anywhere on it, including the
// "palette" part. Returns "" if the cursor is not on a palette reference.
func paletteRefAtCursor(line string, character uint32) string {
	col := int(character)
	if col > len(line) {
		return ""
	}

	// Expand to the word around the cursor (letters, digits, underscores,
	// and dots for the dotted path)
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}

	word := line[start:end]
	parts := strings.Split(word, ".")
	if len(parts) != 2 || parts[0] != "palette" || parts[1] == "" {
		return ""
	}

	return word
}

// isIdentChar returns true if the byte is a valid identifier character
// (letter, digit, underscore, or dot for dotted paths).
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '.'
}

// definition returns the definition location for the palette reference at
// the given cursor position, or nil if the cursor is not on one or the
// referenced entry does not exist.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := strings.Split(content, "\n")
	lineIdx := int(pos.Line)
	if lineIdx >= len(lines) {
		return nil
	}

	ref := paletteRefAtCursor(lines[lineIdx], pos.Character)
	if ref == "" {
		return nil
	}

	symRange, ok := result.Symbols[ref]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
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
