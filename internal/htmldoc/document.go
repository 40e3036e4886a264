// Package htmldoc rewrites parsed HTML documents for a text direction.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gotrs-io/gotrs-rtl/internal/direction"
)

// Document is a parsed HTML document. It implements direction.Document.
type Document struct {
	root *html.Node
}

var _ direction.Document = (*Document)(nil)

// Parse reads a full HTML document. Fragments are wrapped in the implied
// html/head/body elements, so the result always has a root element.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// SetRootAttributes sets dir and lang on the <html> element.
func (d *Document) SetRootAttributes(dir, lang string) {
	el := d.htmlElement()
	if el == nil {
		return
	}
	setAttr(el, "dir", dir)
	setAttr(el, "lang", lang)
}

// RootAttribute returns the value of an attribute on the <html> element.
func (d *Document) RootAttribute(name string) (string, bool) {
	el := d.htmlElement()
	if el == nil {
		return "", false
	}
	return getAttr(el, name)
}

// MirrorClasses rewrites every class attribute with the adapter's rules and
// returns how many individual classes changed. No direction marker is added.
func (d *Document) MirrorClasses(adapter *direction.Adapter) int {
	changed := 0
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		for i, attr := range n.Attr {
			if attr.Namespace != "" || attr.Key != "class" {
				continue
			}
			tokens := strings.Fields(attr.Val)
			for j, token := range tokens {
				if adapted := adapter.AdaptClass(token); adapted != token {
					tokens[j] = adapted
					changed++
				}
			}
			n.Attr[i].Val = strings.Join(tokens, " ")
		}
	})
	return changed
}

func (d *Document) htmlElement() *html.Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return c
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
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
