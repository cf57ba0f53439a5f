// Package document describes a paginated, print-ready CV as a tree of
// styled nodes. Templates build documents; the encoder turns them into HTML
// for the rendering engine.
package document

import "strings"

type Kind string

const (
	KindColumn  Kind = "column"
	KindHeader  Kind = "header"
	KindSection Kind = "section"
	KindHeading Kind = "heading"
	KindLabel   Kind = "label"
	KindText    Kind = "text"
	KindRow     Kind = "row"
	KindGroup   Kind = "group"
	KindList    Kind = "list"
	KindGrid    Kind = "grid"
	KindItem    Kind = "item"
	KindRule    Kind = "rule"
)

// Node is one element of the document tree. Style names a class in the
// template's stylesheet.
type Node struct {
	Kind     Kind    `json:"kind"`
	Style    string  `json:"style,omitempty"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

type PageSize struct {
	Name     string  `json:"name"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

var A4 = PageSize{Name: "A4", WidthMM: 210, HeightMM: 297}

const (
	LayoutSidebar = "sidebar"
	LayoutSingle  = "single"
)

type Page struct {
	Layout string  `json:"layout"`
	Body   []*Node `json:"body"`
}

type Document struct {
	Template   string   `json:"template"`
	Title      string   `json:"title"`
	Size       PageSize `json:"size"`
	Font       string   `json:"font"`
	Stylesheet string   `json:"-"`
	Pages      []Page   `json:"pages"`
}

// Walk visits every node depth-first in document order.
func (d *Document) Walk(fn func(n *Node)) {
	for _, p := range d.Pages {
		for _, n := range p.Body {
			walk(n, fn)
		}
	}
}

func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// Headings lists section headings in order.
func (d *Document) Headings() []string {
	var out []string
	d.Walk(func(n *Node) {
		if n.Kind == KindHeading {
			out = append(out, n.Text)
		}
	})
	return out
}

// Section returns the section whose heading matches title, or nil.
func (d *Document) Section(title string) *Node {
	var found *Node
	d.Walk(func(n *Node) {
		if found != nil || n.Kind != KindSection {
			return
		}
		for _, c := range n.Children {
			if c.Kind == KindHeading && c.Text == title {
				found = n
				return
			}
		}
	})
	return found
}

// Texts returns every text-bearing node's text in order.
func (n *Node) Texts() []string {
	var out []string
	walk(n, func(c *Node) {
		if c.Text != "" {
			out = append(out, c.Text)
		}
	})
	return out
}

// Texts returns all text in the document in order.
func (d *Document) Texts() []string {
	var out []string
	for _, p := range d.Pages {
		for _, n := range p.Body {
			out = append(out, n.Texts()...)
		}
	}
	return out
}

func (d *Document) Contains(s string) bool {
	for _, t := range d.Texts() {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}
