//go:build ignore

// render_profile writes the intermediate HTML of a CV for inspection in a
// browser, without going through Chrome.
//
//	go run tools/render_profile.go profile.json minimal preview.html
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"applica-cv/internal/cv/document"
	"applica-cv/internal/cv/templates"
	"applica-cv/internal/model"
)

func main() {
	in, tplID, out := "profile.json", templates.ModernID, "preview.html"
	args := os.Args[1:]
	if len(args) > 0 {
		in = args[0]
	}
	if len(args) > 1 {
		tplID = args[1]
	}
	if len(args) > 2 {
		out = args[2]
	}

	b, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read profile: %v\n", err)
		os.Exit(2)
	}
	var p model.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	tpl, ok := templates.Lookup(tplID)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown template %q, have %v\n", tplID, templates.IDs())
		os.Exit(2)
	}
	doc, err := tpl.Render(&p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}
	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create out: %v\n", err)
		os.Exit(2)
	}
	defer f.Close()
	if err := document.EncodeHTML(f, doc); err != nil {
		fmt.Fprintf(os.Stderr, "encode html: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", out)
}
