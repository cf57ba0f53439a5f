// Package templates holds the three CV layouts. Each maps a profile onto a
// single A4 document tree; sections backed by empty data are left out.
package templates

import (
	"embed"
	"errors"
	"strings"

	"applica-cv/internal/cv/document"
	"applica-cv/internal/model"
)

//go:embed css/*.css
var stylesheets embed.FS

const (
	ModernID  = "modern"
	ClassicID = "classic"
	MinimalID = "minimal"
)

var errNilProfile = errors.New("nil profile")

// Template renders a profile into a document tree.
type Template interface {
	ID() string
	Render(p *model.Profile) (*document.Document, error)
}

// Option describes a template for selection screens.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var registry = []struct {
	opt Option
	tpl Template
}{
	{Option{ModernID, "Modern Professional", "Clean and contemporary design with color accents"}, modern{}},
	{Option{ClassicID, "Classic Traditional", "Timeless and formal layout for traditional industries"}, classic{}},
	{Option{MinimalID, "Minimal Clean", "Simple and elegant design with maximum readability"}, minimal{}},
}

// Lookup returns the template registered under id.
func Lookup(id string) (Template, bool) {
	for _, r := range registry {
		if r.opt.ID == id {
			return r.tpl, true
		}
	}
	return nil, false
}

// Available lists the registered templates in display order.
func Available() []Option {
	out := make([]Option, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.opt)
	}
	return out
}

// IDs returns the registered template ids.
func IDs() []string {
	out := make([]string, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.opt.ID)
	}
	return out
}

func stylesheet(id string) string {
	b, err := stylesheets.ReadFile("css/" + id + ".css")
	if err != nil {
		return ""
	}
	return string(b)
}

func newDocument(id, font, title string, layout string, body ...*document.Node) *document.Document {
	page := document.Page{Layout: layout}
	for _, n := range body {
		if n != nil {
			page.Body = append(page.Body, n)
		}
	}
	return &document.Document{
		Template:   id,
		Title:      title,
		Size:       document.A4,
		Font:       font,
		Stylesheet: stylesheet(id),
		Pages:      []document.Page{page},
	}
}

func items(style, bullet string, values []string) []*document.Node {
	out := make([]*document.Node, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, document.Item(style, bullet+v))
	}
	return out
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
