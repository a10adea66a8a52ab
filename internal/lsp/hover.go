package lsp

import (
	"fmt"
	"strings"

	"github.com/apparebit/pitty"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := min(int(r.Start.Character), len(line))
		endChar := min(int(r.End.Character), len(line))
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		switch i {
		case startLine:
			parts = append(parts, line[min(int(r.Start.Character), len(line)):])
		case endLine:
			parts = append(parts, line[:min(int(r.End.Character), len(line))])
		default:
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// hover produces a Hover response for the given cursor position. Palette
// references get their source text as a header. Every color shows its hex
// and decimal RGB forms, its Oklch rendition, and the closest ANSI color
// under the theme the document itself declares.
// Returns nil if no color is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		tc := cl.Color.TrueColor()
		matcher := pitty.NewMatcher(&result.Theme, pitty.OkRevised)

		var b strings.Builder
		if cl.IsRef {
			fmt.Fprintf(&b, "**%s**\n\n", extractText(content, cl.Range))
		}
		fmt.Fprintf(&b, "`%s` · `rgb(%d, %d, %d)` · `%s`\n\n",
			tc.Hex(), tc[0], tc[1], tc[2], cl.Color.To(pitty.Oklch))
		fmt.Fprintf(&b, "Closest ANSI color: %s", matcher.ToAnsi(cl.Color))

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: b.String(),
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
