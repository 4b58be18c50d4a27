// Package query wraps XPath evaluation over parsed HTML documents. It is the
// generator's only way of testing its own output.
package query

import (
	"fmt"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"
)

// DefaultCacheSize is the number of compiled expressions kept per evaluator.
const DefaultCacheSize = 256

// Evaluator executes a locator expression against a document subtree and
// returns the matching nodes in document order.
type Evaluator interface {
	Evaluate(expr string, scope *html.Node) ([]*html.Node, error)
}

// XPathEvaluator evaluates XPath expressions using htmlquery. Compiled
// expressions are cached; the validator re-evaluates the same candidate
// several times during simplification.
type XPathEvaluator struct {
	cache *lru.Cache[string, *xpath.Expr]
}

// NewXPathEvaluator creates an evaluator with a compiled-expression cache.
func NewXPathEvaluator() *XPathEvaluator {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, *xpath.Expr](DefaultCacheSize)
	return &XPathEvaluator{cache: cache}
}

// Evaluate compiles expr (or reuses a cached compilation) and returns every
// node under scope that matches it.
func (e *XPathEvaluator) Evaluate(expr string, scope *html.Node) ([]*html.Node, error) {
	if scope == nil {
		return nil, fmt.Errorf("evaluate %q: nil scope", expr)
	}
	compiled, err := e.compile(expr)
	if err != nil {
		return nil, err
	}
	return htmlquery.QuerySelectorAll(scope, compiled), nil
}

// compile returns a compiled expression, consulting the cache first.
func (e *XPathEvaluator) compile(expr string) (*xpath.Expr, error) {
	if compiled, ok := e.cache.Get(expr); ok {
		return compiled, nil
	}
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile xpath %q: %w", expr, err)
	}
	e.cache.Add(expr, compiled)
	return compiled, nil
}

// Locate evaluates expr against scope and returns the first match, or nil
// when nothing matches. Consumers use it to re-resolve a stored locator.
func Locate(e Evaluator, expr string, scope *html.Node) (*html.Node, error) {
	nodes, err := e.Evaluate(expr, scope)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}
