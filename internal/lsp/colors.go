package lsp

import (
	"math"
	"strings"

	"github.com/apparebit/pitty"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color to the protocol's normalized RGBA form. Colors
// outside the sRGB gamut clamp to its boundary.
func colorToLSP(c pitty.Color) protocol.Color {
	srgb := c.To(pitty.SRGB).Coordinates()
	return protocol.Color{
		Red:   protocol.Decimal(clampUnit(srgb[0])),
		Green: protocol.Decimal(clampUnit(srgb[1])),
		Blue:  protocol.Decimal(clampUnit(srgb[2])),
		Alpha: 1.0,
	}
}

func clampUnit(value float64) float64 {
	switch {
	case math.IsNaN(value), value < 0:
		return 0
	case value > 1:
		return 1
	}
	return value
}

// documentColors converts the analysis result's color locations into LSP
// ColorInformation items.
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

// colorPresentation produces replacement texts for the client's color
// picker: once in hashed hexadecimal and once in Oklch. Palette references
// return no presentations, so picking a color never destroys a reference.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	color := pitty.New(pitty.SRGB,
		float64(params.Color.Red), float64(params.Color.Green), float64(params.Color.Blue))

	// An achromatic color has a not-a-number hue, which renders as "none"
	// and does not parse back. Zero converts identically at zero chroma.
	oklch := color.To(pitty.Oklch)
	if coords := oklch.Coordinates(); math.IsNaN(coords[2]) {
		oklch = pitty.New(pitty.Oklch, coords[0], coords[1], 0)
	}
	labels := []string{
		color.TrueColor().Hex(),
		oklch.String(),
	}

	// The text at the range tells apart literals from references.
	text := extractText(content, params.Range)

	if strings.HasPrefix(text, "palette.") {
		return []protocol.ColorPresentation{}
	}
	if !strings.HasPrefix(text, "\"") && !strings.HasPrefix(text, "#") {
		return []protocol.ColorPresentation{}
	}
	quoted := strings.HasPrefix(text, "\"")

	presentations := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		newText := label
		if quoted {
			newText = "\"" + label + "\""
		}
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: newText,
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
