package markup

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const queryDoc = `<html><body>
<div id="app" class="wrap">
  <ul class="pie large"></ul>
  <ol class="pie"></ol>
  <div class="arrow"></div>
</div>
</body></html>`

func TestQuery(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(queryDoc))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		selector string
		wantTag  string
	}{
		{"#app", "div"},
		{".pie", "ul"},
		{"ol.pie", "ol"},
		{".pie.large", "ul"},
		{"UL", "ul"},
		{"div.arrow", "div"},
		{"div#app.wrap", "div"},
		{".missing", ""},
		{"ol.large", ""},
		{"div > ul", "ul"},
		{"#app > .pie + ol", "ol"},
		{"body > ul", ""},
		{"#", ""},
		{"ul[", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			n := Query(doc, tt.selector)
			if tt.wantTag == "" {
				if n != nil {
					t.Errorf("Query(%q) = <%s>, want nil", tt.selector, n.Data)
				}
				return
			}
			if n == nil || n.Data != tt.wantTag {
				t.Errorf("Query(%q) = %v, want <%s>", tt.selector, n, tt.wantTag)
			}
		})
	}
}

func TestSetStyle_PreservesDeclarations(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "ul"}
	setAttr(n, "style", "width: 300px;transform: rotate(1deg); color:red")

	setStyle(n, "transform", "rotate(90deg)")
	if got, want := attr(n, "style"), "width: 300px; transform: rotate(90deg); color: red"; got != want {
		t.Errorf("style = %q, want %q", got, want)
	}
	setStyle(n, "opacity", "0.5")
	if got := StyleValue(n, "opacity"); got != "0.5" {
		t.Errorf("opacity = %q", got)
	}
	if got := StyleValue(n, "margin"); got != "" {
		t.Errorf("margin = %q, want empty", got)
	}
}

func TestStyleValue_Functions(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "li"}
	setAttr(n, "style", "Transform: rotate(45deg) skewY(-45deg); background-color: #00A5EB;")
	if got, want := StyleValue(n, "transform"), "rotate(45deg) skewY(-45deg)"; got != want {
		t.Errorf("transform = %q, want %q", got, want)
	}
	if got := StyleValue(n, "background-color"); got != "#00A5EB" {
		t.Errorf("background-color = %q", got)
	}

	setAttr(n, "style", "")
	setStyle(n, "transform", "rotate(1deg)")
	if got := attr(n, "style"); got != "transform: rotate(1deg)" {
		t.Errorf("style = %q", got)
	}
}
