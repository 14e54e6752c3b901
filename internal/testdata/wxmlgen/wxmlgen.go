// Package wxmlgen turns arbitrary HTML documents into WXML-flavored
// fixtures, for seeding the parser's fuzz corpus with structurally
// realistic nested-tag, attribute, and text shapes that would be
// tedious to hand-write.
//
// It leans on golang.org/x/net/html's lenient HTML5 tokenizer to supply
// the tree shape, then reinterprets that tree as WXML: attribute values
// and text runs are seeded with "{{ ... }}" expressions at deterministic
// positions so every emitted fixture also exercises the expression
// grammar, not just plain tags.
package wxmlgen

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML parses r as HTML and renders it back out as a WXML fixture.
// n controls how densely expressions are seeded into text and attribute
// values: an expression is inserted every n-th text/attribute node (n
// <= 0 disables seeding, producing plain markup with no expressions).
func FromHTML(r io.Reader, n int) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("wxmlgen: parsing html source: %w", err)
	}

	g := &generator{seedEvery: n}
	var b strings.Builder
	g.walk(&b, doc)
	return strings.TrimSpace(b.String()), nil
}

// generator tracks a running node count so expression seeding lands at
// deterministic, reproducible positions rather than depending on a
// random source.
type generator struct {
	seedEvery int
	count     int
}

// shouldSeed reports whether the node just visited should have an
// expression mixed into it, and advances the counter.
func (g *generator) shouldSeed() bool {
	if g.seedEvery <= 0 {
		return false
	}
	g.count++
	return g.count%g.seedEvery == 0
}

func (g *generator) expr() string {
	return fmt.Sprintf("{{item%d}}", g.count)
}

func (g *generator) walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			g.walk(b, c)
		}
	case html.ElementNode:
		g.writeElement(b, n)
	case html.TextNode:
		g.writeText(b, n)
	case html.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			g.walk(b, c)
		}
	}
}

func (g *generator) writeElement(b *strings.Builder, n *html.Node) {
	name := elementName(n)

	b.WriteString("<")
	b.WriteString(name)
	for _, a := range n.Attr {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString("=\"")
		b.WriteString(escapeAttr(a.Val))
		if g.shouldSeed() {
			b.WriteString(" ")
			b.WriteString(g.expr())
		}
		b.WriteString("\"")
	}

	if n.FirstChild == nil {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		g.walk(b, c)
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func (g *generator) writeText(b *strings.Builder, n *html.Node) {
	text := strings.TrimSpace(n.Data)
	if text == "" {
		return
	}
	b.WriteString(text)
	if g.shouldSeed() {
		b.WriteString(" ")
		b.WriteString(g.expr())
	}
}

// elementName maps HTML tag names onto the small set of element names a
// WXML fixture is expected to exercise, so the generated corpus reads
// like plausible template markup rather than a raw HTML dump.
func elementName(n *html.Node) string {
	switch n.Data {
	case "html", "body", "div", "section", "article":
		return "view"
	case "span", "p", "label":
		return "text"
	case "img":
		return "image"
	case "button":
		return "button"
	case "script":
		return "wxs"
	default:
		return "view"
	}
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
