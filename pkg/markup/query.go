package markup

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Query returns the first element under root, in document order, that
// matches the CSS selector s, such as "#wheel", ".pie" or
// "div.wrap > ul.pie". It returns nil when nothing matches or s does not
// compile.
func Query(root *html.Node, s string) *html.Node {
	if root == nil || strings.TrimSpace(s) == "" {
		return nil
	}
	sel, err := cascadia.Parse(s)
	if err != nil {
		return nil
	}
	return cascadia.Query(root, sel)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
