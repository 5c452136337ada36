// Package export renders Go templates against a picker state and palette.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/config"
	"github.com/jsvensson/chromapick/internal/picker"
)

// Engine loads and executes Go templates against a picker.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Only         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// against the picker state and palette, and writes output files.
func (e *Engine) Run(p *picker.Picker, palette map[string]string) error {
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

	data := buildTemplateData(p, palette)

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

// templateData is the data passed to templates.
type templateData struct {
	picker.State
	Palette map[string]string
	Spaces  map[string]string
	FuncMap template.FuncMap
}

func buildTemplateData(p *picker.Picker, palette map[string]string) templateData {
	state := p.State()

	// Every space's rendering of the canonical color.
	spaces := make(map[string]string)
	for _, s := range picker.Spaces() {
		if text, err := config.ConvertColor(state.Color, string(s), color.Clip); err == nil {
			spaces[string(s)] = text
		}
	}

	return templateData{
		State:   state,
		Palette: palette,
		Spaces:  spaces,
		FuncMap: template.FuncMap{
			"hex": color.Hex,
			"hexBare": func(text string) (string, error) {
				hex, err := color.Hex(text)
				return strings.TrimPrefix(hex, "#"), err
			},
			"convert": func(space, text string) (string, error) {
				return config.ConvertColor(text, space, color.Clip)
			},
			"contrast": color.ContrastColor,
			"gamut":    color.GamutOf,
			"palette": func(name string) (string, error) {
				text, ok := palette[name]
				if !ok {
					return "", fmt.Errorf("palette entry not found: %s", name)
				}
				return text, nil
			},
			"channels": func(space string) (picker.ChannelGroup, error) {
				s, err := picker.ParseSpace(space)
				if err != nil {
					return picker.ChannelGroup{}, err
				}
				return p.Group(s), nil
			},
		},
	}
}
