// Package locator synthesizes robust XPath locators for element nodes in a
// parsed HTML document. A generated locator re-finds the same logical node
// after the document reloads or re-renders with different generated
// identifiers.
//
// Generation runs an ordered chain of candidate strategies; every candidate
// is validated against the document before it is accepted, and long paths
// are greedily simplified. The whole call is synchronous and operates on one
// immutable snapshot of the tree: callers must not mutate the document while
// a call is in flight.
package locator

import (
	"errors"
	"time"

	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/internal/dom"
	"github.com/jonesrussell/golocator/internal/logger"
	"github.com/jonesrussell/golocator/internal/query"
	"github.com/jonesrussell/golocator/internal/stability"
)

// Default generation limits.
const (
	// DefaultMaxAncestorDepth bounds ancestor walks.
	DefaultMaxAncestorDepth = 10
	// DefaultTimeout bounds one generation call. The timeout is cooperative:
	// it is sampled once per ancestor-walk iteration, so a slow evaluation
	// can overrun the nominal budget.
	DefaultTimeout = 20 * time.Second
)

// ErrInvalidNode is returned when the target is nil or not an element node.
var ErrInvalidNode = errors.New("locator: target must be an element node")

// Strategy names the candidate generator that produced an expression.
type Strategy string

// Strategies in priority order.
const (
	StrategyMinimalTag      Strategy = "minimal-tag"
	StrategyStableAttribute Strategy = "stable-attribute"
	StrategyStableAnchor    Strategy = "stable-anchor"
	StrategySiblingLabel    Strategy = "sibling-label"
	StrategyIncremental     Strategy = "incremental"
	StrategyFallback        Strategy = "fallback-path"
)

// Options configures one generation call. The zero value selects defaults.
type Options struct {
	// MaxAncestorDepth bounds how far ancestor walks climb.
	MaxAncestorDepth int
	// Timeout bounds the whole call.
	Timeout time.Duration
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.MaxAncestorDepth <= 0 {
		o.MaxAncestorDepth = DefaultMaxAncestorDepth
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Result is a generated locator. Verified reports whether the expression was
// validated to resolve uniquely to the requested node; the fallback strategy
// may return a best-effort path that did not validate.
type Result struct {
	Expression string   `json:"expression"`
	Strategy   Strategy `json:"strategy"`
	Verified   bool     `json:"verified"`
}

// Params holds the dependencies for a Generator.
type Params struct {
	// Evaluator executes candidate expressions against the document.
	Evaluator query.Evaluator
	// Classifier decides which ids, classes, and values are safe to
	// hardcode. Defaults to the built-in rule table.
	Classifier *stability.Classifier
	// Logger receives generation diagnostics. Defaults to a no-op logger.
	Logger logger.Interface
	// Tracer, when non-nil, receives every candidate attempt.
	Tracer Tracer
}

// Generator produces locator expressions. It holds no per-call state and is
// safe for concurrent use.
type Generator struct {
	evaluator  query.Evaluator
	classifier *stability.Classifier
	logger     logger.Interface
	tracer     Tracer
}

// New creates a Generator.
func New(p Params) (*Generator, error) {
	if p.Evaluator == nil {
		return nil, errors.New("locator: evaluator is required")
	}
	if p.Classifier == nil {
		p.Classifier = stability.Default()
	}
	if p.Logger == nil {
		p.Logger = logger.NewNoOp()
	}
	return &Generator{
		evaluator:  p.Evaluator,
		classifier: p.Classifier,
		logger:     p.Logger,
		tracer:     p.Tracer,
	}, nil
}

// request carries the state of one generation call through the strategy
// chain. It is never shared across calls.
type request struct {
	doc      *html.Node
	target   *html.Node
	opts     Options
	deadline time.Time
}

// expired reports whether the call's time budget is spent.
func (r *request) expired() bool {
	return time.Now().After(r.deadline)
}

// Generate synthesizes a locator for target. Strategies are tried once each
// in fixed priority order; the first validated candidate wins. When every
// strategy fails, a best-effort minimal-semantic-path is returned with
// Verified set to false.
func (g *Generator) Generate(target *html.Node, opts Options) (*Result, error) {
	if !dom.IsElement(target) {
		return nil, ErrInvalidNode
	}

	o := opts.withDefaults()
	req := &request{
		doc:      dom.Root(target),
		target:   target,
		opts:     o,
		deadline: time.Now().Add(o.Timeout),
	}

	chain := []struct {
		name     Strategy
		generate func(*request) (string, bool)
	}{
		{StrategyMinimalTag, g.minimalTag},
		{StrategyStableAttribute, g.stableAttribute},
		{StrategyStableAnchor, g.stableAnchor},
		{StrategySiblingLabel, g.siblingLabel},
		{StrategyIncremental, g.incremental},
	}

	for _, s := range chain {
		expr, ok := s.generate(req)
		if !ok {
			continue
		}
		if s.name == StrategyIncremental {
			expr = g.simplify(req, s.name, expr)
		}
		g.logger.Debug("locator generated",
			"strategy", string(s.name), "expression", expr)
		return &Result{Expression: expr, Strategy: s.name, Verified: true}, nil
	}

	// Best-effort path; uniqueness is not guaranteed at this stage.
	expr := g.fallbackPath(req)
	verified := g.try(req, StrategyFallback, expr)
	if verified {
		expr = g.simplify(req, StrategyFallback, expr)
	}
	g.logger.Debug("locator fallback",
		"expression", expr, "verified", verified)
	return &Result{Expression: expr, Strategy: StrategyFallback, Verified: verified}, nil
}

// Locate re-resolves a previously generated locator against scope and
// returns the first match, or nil when nothing matches.
func (g *Generator) Locate(expression string, scope *html.Node) (*html.Node, error) {
	return query.Locate(g.evaluator, expression, scope)
}
