package markup

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// parseStyle decodes an inline style attribute. A malformed attribute
// yields no declarations.
func parseStyle(s string) []*css.Declaration {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// a trailing separator terminates the last declaration
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		return nil
	}
	for _, d := range decls {
		d.Property = strings.ToLower(d.Property)
	}
	return decls
}

func formatStyle(decls []*css.Declaration) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
	}
	return b.String()
}

// StyleValue returns the inline style value of prop on n, or "".
func StyleValue(n *html.Node, prop string) string {
	for _, d := range parseStyle(attr(n, "style")) {
		if d.Property == prop {
			return d.Value
		}
	}
	return ""
}

// setStyle replaces prop in the inline style of n, keeping the other
// declarations in place.
func setStyle(n *html.Node, prop, value string) {
	decls := parseStyle(attr(n, "style"))
	replaced := false
	for _, d := range decls {
		if d.Property == prop {
			d.Value = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, &css.Declaration{Property: prop, Value: value})
	}
	setAttr(n, "style", formatStyle(decls))
}
