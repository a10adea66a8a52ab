package themefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apparebit/pitty"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// RequiredANSIColors names the sixteen extended ANSI colors in code order.
// A theme file must define all of them.
var RequiredANSIColors = []string{
	"black", "red", "green", "yellow",
	"blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// AnsiIndex resolves an ANSI color name from a theme file to the color.
func AnsiIndex(name string) (pitty.AnsiColor, bool) {
	for index, candidate := range RequiredANSIColors {
		if candidate == name {
			return pitty.AnsiColor(index), true
		}
	}
	return 0, false
}

// Meta holds theme metadata.
type Meta struct {
	Name       string `hcl:"name,optional"`
	Author     string `hcl:"author,optional"`
	Appearance string `hcl:"appearance,optional"`
	URL        string `hcl:"url,optional"`
}

// File is a fully resolved theme file.
type File struct {
	Meta    Meta
	Palette map[string]pitty.Color
	Theme   pitty.Theme
}

// paletteBlock wraps a single palette block for gohcl decoding.
type paletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// rawConfig captures the palette block first, before an evaluation context
// exists.
type rawConfig struct {
	Palette *paletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// colorBlock wraps a block with color-valued attributes for gohcl decoding.
type colorBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// resolvedConfig decodes the blocks that may reference the palette.
type resolvedConfig struct {
	Meta   *Meta       `hcl:"meta,block"`
	Colors *colorBlock `hcl:"colors,block"`
	ANSI   *colorBlock `hcl:"ansi,block"`
	Remain hcl.Body    `hcl:",remain"`
}

// Loader handles two-pass HCL decoding with palette resolution. The first
// pass extracts the palette block, whose entries may use color functions but
// no variables. The second pass decodes the remaining blocks with the
// palette in scope.
type Loader struct {
	body    hcl.Body
	ctx     *hcl.EvalContext
	palette map[string]pitty.Color
}

// NewLoader parses an HCL theme file and builds the evaluation context from
// its palette block. Files without a palette block get an empty palette.
func NewLoader(path string) (*Loader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return NewLoaderBytes(src, path)
}

// NewLoaderBytes is NewLoader for in-memory sources. The path names the
// source in diagnostics.
func NewLoaderBytes(src []byte, path string) (*Loader, error) {
	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw rawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}

	palette := make(map[string]pitty.Color)
	if raw.Palette != nil {
		var err error
		palette, err = decodeColorAttributes(raw.Palette.Entries, functionContext(), "palette")
		if err != nil {
			return nil, err
		}
	}

	return &Loader{
		body:    file.Body,
		ctx:     buildEvalContext(palette),
		palette: palette,
	}, nil
}

// Decode decodes a value using the palette context. It is reusable for any
// blocks that reference palette values.
func (l *Loader) Decode(target any) error {
	if diags := gohcl.DecodeBody(l.body, l.ctx, target); diags.HasErrors() {
		return fmt.Errorf("decoding: %s", diags.Error())
	}
	return nil
}

// Palette returns the resolved palette colors.
func (l *Loader) Palette() map[string]pitty.Color {
	return l.palette
}

// Context returns the evaluation context for manual parsing.
func (l *Loader) Context() *hcl.EvalContext {
	return l.ctx
}

// decodeColorAttributes evaluates all attributes of the body and parses
// their string values as colors.
func decodeColorAttributes(body hcl.Body, ctx *hcl.EvalContext, blockName string) (map[string]pitty.Color, error) {
	result := make(map[string]pitty.Color)
	if body == nil {
		return result, nil
	}

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", blockName, diags.Error())
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s.%s: %s", blockName, name, diags.Error())
		}
		if val.Type() != cty.String {
			return nil, fmt.Errorf("%s.%s: expected a color string, got %s",
				blockName, name, val.Type().FriendlyName())
		}
		color, err := pitty.Parse(val.AsString())
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", blockName, name, err)
		}
		result[name] = color
	}

	return result, nil
}

// validateANSI checks that all sixteen ANSI colors are present.
func validateANSI(ansi map[string]pitty.Color) error {
	if len(ansi) == 0 {
		return fmt.Errorf("ansi block incomplete: no colors defined")
	}

	var missing []string
	for _, name := range RequiredANSIColors {
		if _, ok := ansi[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("ansi block incomplete\nMissing colors: %s\nRequired colors: %s",
			strings.Join(missing, ", "),
			strings.Join(RequiredANSIColors, ", "))
	}

	return nil
}

// LoadHCL parses an HCL theme file and returns the fully resolved result.
// The colors block with its foreground and background attributes is
// optional; the ansi block with all sixteen ANSI colors is not. Colors left
// undefined keep their values from the built-in default theme.
func LoadHCL(path string) (*File, error) {
	loader, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return resolve(loader)
}

// ParseHCL is LoadHCL for in-memory sources.
func ParseHCL(src []byte, path string) (*File, error) {
	loader, err := NewLoaderBytes(src, path)
	if err != nil {
		return nil, err
	}
	return resolve(loader)
}

func resolve(loader *Loader) (*File, error) {
	var resolved resolvedConfig
	if err := loader.Decode(&resolved); err != nil {
		return nil, err
	}

	theme := pitty.DefaultTheme()

	if resolved.Colors != nil {
		colors, err := decodeColorAttributes(resolved.Colors.Entries, loader.Context(), "colors")
		if err != nil {
			return nil, err
		}
		for name, color := range colors {
			switch name {
			case "foreground":
				theme.SetDefault(pitty.Foreground, color)
			case "background":
				theme.SetDefault(pitty.Background, color)
			default:
				return nil, fmt.Errorf("colors.%s: unknown attribute (valid: foreground, background)", name)
			}
		}
	}

	if resolved.ANSI == nil {
		return nil, fmt.Errorf("ansi block incomplete: no colors defined")
	}
	ansi, err := decodeColorAttributes(resolved.ANSI.Entries, loader.Context(), "ansi")
	if err != nil {
		return nil, err
	}
	if err := validateANSI(ansi); err != nil {
		return nil, err
	}
	for name, color := range ansi {
		index, ok := AnsiIndex(name)
		if !ok {
			return nil, fmt.Errorf("ansi.%s: unknown color name", name)
		}
		theme.SetAnsi(index, color)
	}

	meta := Meta{}
	if resolved.Meta != nil {
		meta = *resolved.Meta
	}

	return &File{
		Meta:    meta,
		Palette: loader.Palette(),
		Theme:   theme,
	}, nil
}

// Load parses a theme file, dispatching on the file extension: ".hcl" for
// the native format, ".yaml" or ".yml" for Alacritty color schemes.
func Load(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return LoadHCL(path)
	case ".yaml", ".yml":
		return LoadAlacritty(path)
	default:
		return nil, fmt.Errorf("unsupported theme file extension %q", filepath.Ext(path))
	}
}
