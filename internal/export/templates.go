package export

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"text/template"

	"github.com/jmylchreest/swatch/internal/colour"
)

//go:embed *.tmpl
var templates embed.FS

// templateColour is one palette entry as seen by the stylesheet templates.
type templateColour struct {
	Name       string
	Hex        string
	Percentage float64
	Contrast   string
}

type templateData struct {
	Name    string
	Source  string
	Colours []templateColour
}

func newTemplateData(p colour.Palette, meta Meta) templateData {
	data := templateData{Name: meta.name(), Source: meta.Source}
	for i, e := range p.Entries {
		data.Colours = append(data.Colours, templateColour{
			Name:       colourName(i),
			Hex:        e.Hex,
			Percentage: e.Percentage,
			Contrast:   colour.ContrastColour(e.RGB),
		})
	}
	return data
}

// templateFuncs returns the helpers available to the stylesheet templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"percent": percent,
	}
}

// percent prints a percentage with the shortest decimal form, so 50 stays "50" and 12.5 stays "12.5".
func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderTemplate(name string, p colour.Palette, meta Meta) ([]byte, error) {
	tmplContent, err := templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(p, meta)); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}
