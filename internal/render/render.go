// Package render abstracts fragment rendering behind a small
// interface. Markup is a collaborator of the protocol core, not part
// of it; handlers only ever ask for a named view with some data.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

// Renderer renders a named view with the given data.
type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

//go:embed templates/*.gohtml
var templateFS embed.FS

// HTML renders views from the embedded template set.
type HTML struct {
	templates *template.Template
}

// NewHTML parses the embedded templates.
func NewHTML() (*HTML, error) {
	t := template.New("").Funcs(template.FuncMap{
		"day": func(t time.Time) string {
			return t.Format("Monday, January 2, 2006")
		},
		"timestamp": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"lower": strings.ToLower,
	})
	t, err := t.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTML{templates: t}, nil
}

// Render executes the named view.
func (h *HTML) Render(w io.Writer, view string, data any) error {
	if err := h.templates.ExecuteTemplate(w, view, data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}
	return nil
}
