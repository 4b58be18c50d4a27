package dom

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// FindCSS returns all element nodes in doc matching a CSS selector, in
// document order.
func FindCSS(doc *html.Node, selector string) ([]*html.Node, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return goquery.NewDocumentFromNode(doc).FindMatcher(matcher).Nodes, nil
}

// FirstCSS returns the first element node matching a CSS selector, or nil
// when nothing matches.
func FirstCSS(doc *html.Node, selector string) (*html.Node, error) {
	nodes, err := FindCSS(doc, selector)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}
