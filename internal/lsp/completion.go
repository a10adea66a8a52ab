package lsp

import (
	"sort"
	"strings"

	"github.com/apparebit/pitty/internal/themefile"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextMeta                 // inside meta {}
	contextPalette              // inside palette {}
	contextColors               // inside colors {}
	contextAnsi                 // inside ansi {}
)

// topLevelBlocks are the valid top-level block names.
var topLevelBlocks = []string{"meta", "palette", "colors", "ansi"}

// metaAttributeNames are the valid attributes inside a meta block.
var metaAttributeNames = []string{"name", "author", "appearance", "url"}

// colorsAttributeNames are the valid attributes inside a colors block.
var colorsAttributeNames = []string{"foreground", "background"}

// complete produces completion items given an analysis result, document
// content, and cursor position. This is the core logic, decoupled from the
// LSP protocol handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// "palette." prefix takes precedence over everything else
	if items := tryPaletteCompletion(result, textBeforeCursor); items != nil {
		return items
	}

	// After "=" with nothing following, offer functions and the palette
	if isValuePosition(textBeforeCursor) {
		return valueCompletions()
	}

	switch determineBlockContext(lines, int(pos.Line)) {
	case contextMeta:
		return attributeCompletions(lines, int(pos.Line), metaAttributeNames, protocol.CompletionItemKindProperty)
	case contextColors:
		return attributeCompletions(lines, int(pos.Line), colorsAttributeNames, protocol.CompletionItemKindProperty)
	case contextAnsi:
		return attributeCompletions(lines, int(pos.Line), themefile.RequiredANSIColors, protocol.CompletionItemKindConstant)
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// tryPaletteCompletion offers the palette keys when the text before the
// cursor ends in a "palette." reference, possibly followed by a partial key
// that the client filters by.
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || len(result.Palette) == 0 {
		return nil
	}

	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}
	partial := textBeforeCursor[idx+len("palette."):]
	if strings.ContainsAny(partial, ". \t=\"()") {
		return nil
	}

	keys := make([]string, 0, len(result.Palette))
	for key := range result.Palette {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	kind := protocol.CompletionItemKindColor
	items := make([]protocol.CompletionItem, 0, len(keys))
	for _, key := range keys {
		detail := result.Palette[key].TrueColor().Hex()
		items = append(items, protocol.CompletionItem{
			Label:  key,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns completion items for a value position, including
// function snippets and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	lightenSnippet := "lighten(${1:color}, ${2:0.1})"
	darkenSnippet := "darken(${1:color}, ${2:0.1})"
	mixSnippet := "mix(${1:color}, ${2:color}, ${3:0.5})"
	paletteSnippet := "palette."

	return []protocol.CompletionItem{
		{
			Label:            "lighten",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("lighten(color, amount)"),
			InsertText:       &lightenSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:            "darken",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("darken(color, amount)"),
			InsertText:       &darkenSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:            "mix",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("mix(color, color, weight)"),
			InsertText:       &mixSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:      "palette",
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr("palette reference"),
			InsertText: &paletteSnippet,
		},
	}
}

// determineBlockContext scans from the top of the file down to the cursor
// line to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				for n := 0; n < opens; n++ {
					stack = append(stack, parts[0])
				}
			}
		}

		for n := 0; n < closes; n++ {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[len(stack)-1] {
	case "meta":
		return contextMeta
	case "palette":
		return contextPalette
	case "colors":
		return contextColors
	case "ansi":
		return contextAnsi
	default:
		return contextRoot
	}
}

// attributeCompletions offers the attribute names valid in the current
// block, minus those already defined above the cursor.
func attributeCompletions(lines []string, cursorLine int, names []string, kind protocol.CompletionItemKind) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)

	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening
// brace before cursorLine to cursorLine) and returns attribute names already
// defined (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
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

	// Scan forward from startLine to cursorLine, collecting attribute names
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

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	items := complete(result, content, params.Position)
	return items, nil
}
