// Package renderer turns dashboard views into markdown, colored text and charts.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/pricedash"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// funcs are the helpers available in templates.
var funcs = template.FuncMap{
	"marker": marker,
}

// marker returns the textual marker of a trend, for outputs without colors.
func marker(t pricedash.Trend) string {
	switch t {
	case pricedash.Positive:
		return "▲"
	case pricedash.Negative:
		return "▼"
	case pricedash.Undefined:
		return "?"
	default:
		return "="
	}
}

// RenderPerformance renders the performance report to a markdown string.
func RenderPerformance(r *pricedash.Report) string {
	partials := map[string]string{
		"performance_title":       "performance_title.md",
		"performance_instruments": "performance_instruments.md",
		"performance_portfolio":   "performance_portfolio.md",
	}
	return renderTemplate("performance", "performance.md", partials, r)
}

// RenderInstruments renders the per-instrument panel only.
func RenderInstruments(r *pricedash.Report) string {
	return renderTemplate("performance_instruments", "performance_instruments.md", nil, r)
}

// RenderPortfolio renders the aggregate portfolio panel only.
func RenderPortfolio(r *pricedash.Report) string {
	return renderTemplate("performance_portfolio", "performance_portfolio.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
