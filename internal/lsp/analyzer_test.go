package lsp

import (
	"strings"
	"testing"

	"github.com/apparebit/pitty"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// sampleTheme is a complete, valid theme file.
const sampleTheme = `meta {
  name       = "Sample"
  appearance = "dark"
}

palette {
  love = "#eb6f92"
  gold = "oklch(0.86133 0.17601 89.441)"
}

colors {
  foreground = palette.love
  background = "#191724"
}

ansi {
  black   = "#000000"
  red     = palette.love
  green   = "#31748f"
  yellow  = palette.gold
  blue    = "#9ccfd8"
  magenta = "#c4a7e7"
  cyan    = "#ebbcba"
  white   = "#e0def4"
  bright_black   = "#6e6a86"
  bright_red     = lighten(palette.love, 0.1)
  bright_green   = "#31748f"
  bright_yellow  = "#f6c177"
  bright_blue    = "#9ccfd8"
  bright_magenta = "#c4a7e7"
  bright_cyan    = "#ebbcba"
  bright_white   = "#e0def4"
}
`

func diagnosticMessages(result *AnalysisResult) []string {
	messages := make([]string, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		messages[i] = d.Message
	}
	return messages
}

func hasDiagnostic(result *AnalysisResult, severity protocol.DiagnosticSeverity, substring string) bool {
	for _, d := range result.Diagnostics {
		if d.Severity != nil && *d.Severity == severity && strings.Contains(d.Message, substring) {
			return true
		}
	}
	return false
}

func TestAnalyzeValidTheme(t *testing.T) {
	result := Analyze("sample.hcl", sampleTheme)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %v, want none", diagnosticMessages(result))
	}

	if len(result.Palette) != 2 {
		t.Errorf("len(Palette) = %d, want 2", len(result.Palette))
	}
	if got := result.Palette["love"].TrueColor(); got != (pitty.TrueColor{0xeb, 0x6f, 0x92}) {
		t.Errorf("Palette[love] = %v, want #eb6f92", got)
	}

	if got := result.Theme.Ansi(pitty.Red).TrueColor(); got != (pitty.TrueColor{0xeb, 0x6f, 0x92}) {
		t.Errorf("Theme.Ansi(Red) = %v, want #eb6f92", got)
	}
	if got := result.Theme.Default(pitty.Background).TrueColor(); got != (pitty.TrueColor{0x19, 0x17, 0x24}) {
		t.Errorf("Theme background = %v, want #191724", got)
	}

	for _, symbol := range []string{"palette.love", "palette.gold"} {
		if _, ok := result.Symbols[symbol]; !ok {
			t.Errorf("Symbols missing %q", symbol)
		}
	}

	// 2 palette entries, 2 colors entries, 16 ansi entries
	if len(result.Colors) != 20 {
		t.Errorf("len(Colors) = %d, want 20", len(result.Colors))
	}
	refs := 0
	for _, cl := range result.Colors {
		if cl.IsRef {
			refs++
		}
	}
	// foreground, red, and yellow reference the palette
	if refs != 3 {
		t.Errorf("reference locations = %d, want 3", refs)
	}
}

func TestAnalyzeSyntaxError(t *testing.T) {
	result := Analyze("broken.hcl", "palette {\n  love = \"#eb6f92\"\n")

	if len(result.Diagnostics) == 0 {
		t.Fatal("expected diagnostics for unclosed block")
	}
	if result.Diagnostics[0].Severity == nil || *result.Diagnostics[0].Severity != DiagError {
		t.Error("expected error severity for syntax error")
	}
	if len(result.Colors) != 0 {
		t.Errorf("len(Colors) = %d, want 0 after syntax error", len(result.Colors))
	}
}

func TestAnalyzeMissingAnsiColors(t *testing.T) {
	content := `ansi {
  black = "#000000"
  red   = "#ff0000"
}
`
	result := Analyze("partial.hcl", content)

	if !hasDiagnostic(result, DiagWarning, "bright_white") {
		t.Errorf("expected warning naming bright_white, got %v", diagnosticMessages(result))
	}
	if hasDiagnostic(result, DiagWarning, "missing colors: black") {
		t.Errorf("warning should not list defined colors, got %v", diagnosticMessages(result))
	}
}

func TestAnalyzeMissingAnsiBlock(t *testing.T) {
	result := Analyze("bare.hcl", `palette {
  base = "#191724"
}
`)

	if !hasDiagnostic(result, DiagWarning, "ansi block missing colors") {
		t.Errorf("expected warning about the ansi block, got %v", diagnosticMessages(result))
	}
}

func TestAnalyzeUnknownNames(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		severity protocol.DiagnosticSeverity
		want     string
	}{
		{
			name:     "unknown ansi color",
			content:  "ansi {\n  orange = \"#ff9600\"\n}\n",
			severity: DiagError,
			want:     "ansi.orange: unknown color name",
		},
		{
			name:     "unknown colors attribute",
			content:  "colors {\n  cursor = \"#ffffff\"\n}\n",
			severity: DiagError,
			want:     "colors.cursor",
		},
		{
			name:     "unknown meta attribute",
			content:  "meta {\n  flavor = \"mocha\"\n}\n",
			severity: DiagWarning,
			want:     "meta.flavor",
		},
		{
			name:     "unknown block",
			content:  "syntax {\n  keyword = \"#ff0000\"\n}\n",
			severity: DiagWarning,
			want:     "unknown block type \"syntax\"",
		},
		{
			name:     "bad appearance",
			content:  "meta {\n  appearance = \"blue\"\n}\n",
			severity: DiagWarning,
			want:     "neither",
		},
		{
			name:     "malformed color",
			content:  "palette {\n  bad = \"#nope\"\n}\n",
			severity: DiagError,
			want:     "palette.bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze("test.hcl", tt.content)
			if !hasDiagnostic(result, tt.severity, tt.want) {
				t.Errorf("expected diagnostic containing %q, got %v", tt.want, diagnosticMessages(result))
			}
		})
	}
}

func TestAnalyzePaletteSelfReference(t *testing.T) {
	content := `palette {
  base    = "#191724"
  derived = lighten(palette.base, 0.1)
}
`
	result := Analyze("selfref.hcl", content)

	// Palette entries cannot see each other, matching the loader.
	if !hasDiagnostic(result, DiagError, "evaluating palette.derived") {
		t.Errorf("expected error for palette self-reference, got %v", diagnosticMessages(result))
	}
	if _, ok := result.Palette["base"]; !ok {
		t.Error("expected base to resolve despite the failing entry")
	}
}

func TestAnalyzeFunctionResult(t *testing.T) {
	content := `palette {
  love = "#eb6f92"
}

colors {
  foreground = mix(palette.love, "#ffffff", 0.5)
}
` + "ansi {\n" + ansiLines() + "}\n"

	result := Analyze("fn.hcl", content)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %v, want none", diagnosticMessages(result))
	}

	// The mixed color lands halfway between the inputs in Oklrab.
	fg := result.Theme.Default(pitty.Foreground)
	if fg.Space() != pitty.Oklrab {
		t.Errorf("foreground space = %v, want %v", fg.Space(), pitty.Oklrab)
	}
}

// ansiLines returns a complete ansi block body with VGA-ish placeholders.
func ansiLines() string {
	var b strings.Builder
	colors := map[string]string{
		"black": "#000000", "red": "#ff0000", "green": "#00ff00", "yellow": "#ffff00",
		"blue": "#0000ff", "magenta": "#ff00ff", "cyan": "#00ffff", "white": "#ffffff",
		"bright_black": "#808080", "bright_red": "#ff8080", "bright_green": "#80ff80",
		"bright_yellow": "#ffff80", "bright_blue": "#8080ff", "bright_magenta": "#ff80ff",
		"bright_cyan": "#80ffff", "bright_white": "#ffffff",
	}
	for name, value := range colors {
		b.WriteString("  " + name + " = \"" + value + "\"\n")
	}
	return b.String()
}
