// Package testutils provides HTML fixture helpers for tests.
package testutils

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/internal/dom"
)

// ParseHTML parses an HTML document, failing the test on error.
func ParseHTML(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

// MustFindCSS returns the first node matching a CSS selector, failing the
// test when the selector is invalid or nothing matches.
func MustFindCSS(t *testing.T, doc *html.Node, selector string) *html.Node {
	t.Helper()
	node, err := dom.FirstCSS(doc, selector)
	if err != nil {
		t.Fatalf("find %q: %v", selector, err)
	}
	if node == nil {
		t.Fatalf("no node matches %q", selector)
	}
	return node
}
