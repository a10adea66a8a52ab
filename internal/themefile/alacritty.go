package themefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apparebit/pitty"
	"gopkg.in/yaml.v3"
)

// alacrittyScheme mirrors the colors section of an Alacritty color scheme.
// Sections other than primary, normal, and bright have no counterpart in a
// terminal theme and are ignored.
type alacrittyScheme struct {
	Colors struct {
		Primary struct {
			Foreground string `yaml:"foreground"`
			Background string `yaml:"background"`
		} `yaml:"primary"`
		Normal map[string]string `yaml:"normal"`
		Bright map[string]string `yaml:"bright"`
	} `yaml:"colors"`
}

// parseAlacrittyColor parses a color value from an Alacritty scheme, which
// writes 24-bit colors as "0xrrggbb" or "#rrggbb".
func parseAlacrittyColor(value string) (pitty.Color, error) {
	value = strings.TrimSpace(value)
	if rest, ok := strings.CutPrefix(value, "0x"); ok {
		value = "#" + rest
	}
	return pitty.Parse(value)
}

// LoadAlacritty imports an Alacritty color scheme in YAML format. Colors
// the scheme does not define keep their values from the built-in default
// theme.
func LoadAlacritty(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseAlacritty(src, path)
}

// ParseAlacritty is LoadAlacritty for in-memory sources.
func ParseAlacritty(src []byte, path string) (*File, error) {
	var scheme alacrittyScheme
	if err := yaml.Unmarshal(src, &scheme); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	theme := pitty.DefaultTheme()

	if value := scheme.Colors.Primary.Foreground; value != "" {
		color, err := parseAlacrittyColor(value)
		if err != nil {
			return nil, fmt.Errorf("colors.primary.foreground: %w", err)
		}
		theme.SetDefault(pitty.Foreground, color)
	}
	if value := scheme.Colors.Primary.Background; value != "" {
		color, err := parseAlacrittyColor(value)
		if err != nil {
			return nil, fmt.Errorf("colors.primary.background: %w", err)
		}
		theme.SetDefault(pitty.Background, color)
	}

	for section, colors := range map[string]map[string]string{
		"normal": scheme.Colors.Normal,
		"bright": scheme.Colors.Bright,
	} {
		for name, value := range colors {
			index, ok := AnsiIndex(name)
			if !ok || index > pitty.White {
				return nil, fmt.Errorf("colors.%s.%s: unknown color name", section, name)
			}
			if section == "bright" {
				index += 8
			}
			color, err := parseAlacrittyColor(value)
			if err != nil {
				return nil, fmt.Errorf("colors.%s.%s: %w", section, name, err)
			}
			theme.SetAnsi(index, color)
		}
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &File{
		Meta:    Meta{Name: name},
		Palette: make(map[string]pitty.Color),
		Theme:   theme,
	}, nil
}
