// Package dom provides read-only helpers for navigating parsed HTML
// documents. The generator never mutates the tree; callers own it.
package dom

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Parse parses an HTML document from a reader.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// TagName returns the lowercase tag name of an element node, or "" for
// non-element nodes.
func TagName(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, name string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// ID returns the element's id attribute.
func ID(n *html.Node) string {
	return Attr(n, "id")
}

// Classes returns the element's class tokens.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// ParentElement returns the nearest ancestor element node, or nil when n is
// the document root or detached.
func ParentElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// PrevElementSibling returns the closest preceding sibling element, or nil.
func PrevElementSibling(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Root walks up to the document node containing n.
func Root(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// SameTagPosition returns the 1-based position of n among sibling elements
// sharing its tag, and the total count of such siblings (n included).
func SameTagPosition(n *html.Node) (position, count int) {
	if !IsElement(n) {
		return 0, 0
	}
	tag := TagName(n)
	parent := n.Parent
	if parent == nil {
		return 1, 1
	}
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || TagName(c) != tag {
			continue
		}
		count++
		if c == n {
			position = count
		}
	}
	return position, count
}

// Text returns the concatenated text content of n with whitespace collapsed.
func Text(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

// TruncateText shortens s to at most max bytes without splitting a rune.
func TruncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func collectText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
