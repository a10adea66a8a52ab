// Package export renders resolved themes through Go templates, turning one
// theme file into configuration snippets for other terminal programs.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/apparebit/pitty"
	"github.com/apparebit/pitty/internal/themefile"
)

// Engine loads and executes Go templates against a resolved theme file.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Only         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the theme data, and writes output files.
func (e *Engine) Run(file *themefile.File) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(file)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no names are specified, render all.
	if len(e.Only) == 0 {
		return true
	}

	return slices.Contains(e.Only, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates. The palette keeps the
// names the theme author chose; the ANSI colors go by their sixteen
// standard names with underscores, e.g. "bright_red".
type templateData struct {
	Meta       themefile.Meta
	Palette    map[string]pitty.Color
	Foreground pitty.Color
	Background pitty.Color
	Ansi       map[string]pitty.Color
	FuncMap    template.FuncMap
}

func buildTemplateData(file *themefile.File) templateData {
	theme := file.Theme
	matcher := pitty.NewMatcher(&theme, pitty.OkRevised)

	ansi := make(map[string]pitty.Color, len(themefile.RequiredANSIColors))
	for _, name := range themefile.RequiredANSIColors {
		index, _ := themefile.AnsiIndex(name)
		ansi[name] = theme.Ansi(index)
	}

	return templateData{
		Meta:       file.Meta,
		Palette:    file.Palette,
		Foreground: theme.Default(pitty.Foreground),
		Background: theme.Default(pitty.Background),
		Ansi:       ansi,
		FuncMap: template.FuncMap{
			"hex": func(c pitty.Color) string {
				return c.TrueColor().Hex()
			},
			"hexBare": func(c pitty.Color) string {
				return strings.TrimPrefix(c.TrueColor().Hex(), "#")
			},
			"rgb": func(c pitty.Color) string {
				t := c.TrueColor()
				return fmt.Sprintf("rgb(%d, %d, %d)", t[0], t[1], t[2])
			},
			"css": func(c pitty.Color) string {
				return c.String()
			},
			"oklch": func(c pitty.Color) string {
				return c.To(pitty.Oklch).String()
			},
			"eightBit": func(c pitty.Color) uint8 {
				return matcher.ToEightBit(c).EightBit()
			},
			"ansiName": func(c pitty.Color) string {
				return matcher.ToAnsi(c).String()
			},
		},
	}
}
