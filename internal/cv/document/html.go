package document

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed page.html.tmpl
var pageTemplate string

var pageTpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"mm":  func(v float64) string { return fmt.Sprintf("%gmm", v) },
	"css": func(s string) template.CSS { return template.CSS(s) },
}).Parse(pageTemplate))

// EncodeHTML writes the document as a standalone HTML page with its
// stylesheet inlined and an @page rule fixing the paper size.
func EncodeHTML(w io.Writer, d *Document) error {
	if d == nil {
		return fmt.Errorf("nil document")
	}
	return pageTpl.Execute(w, map[string]interface{}{
		"Doc": d,
		"CSS": template.CSS(d.Stylesheet),
	})
}

// HTML is EncodeHTML into a string.
func HTML(d *Document) (string, error) {
	var buf bytes.Buffer
	if err := EncodeHTML(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
