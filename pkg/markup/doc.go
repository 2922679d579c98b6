// Package markup paints a lucky wheel as styled HTML segments.
//
// A Pie lays out one skewed list item per segment inside a container
// element once, at mount. Each frame then rewrites a single rotation
// transform on the container; the browser does the rest. The document is
// an *html.Node tree from golang.org/x/net/html, so a host can embed the
// pie in its own page or serialize a standalone one with Render.
package markup
