package locator

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/internal/dom"
	"github.com/jonesrussell/golocator/internal/query"
)

// newTestRequest parses a fixture and builds a request for the node matching
// the selector.
func newTestRequest(t *testing.T, g *Generator, fixture, selector string) *request {
	t.Helper()
	doc, err := dom.ParseString(fixture)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	target, err := dom.FirstCSS(doc, selector)
	if err != nil || target == nil {
		t.Fatalf("find %q: %v", selector, err)
	}
	return &request{
		doc:      doc,
		target:   target,
		opts:     Options{}.withDefaults(),
		deadline: time.Now().Add(time.Minute),
	}
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(Params{Evaluator: query.NewXPathEvaluator()})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	segs, ok := parsePath(`//div[@id="app"]/ul/li[2]`)
	if !ok {
		t.Fatal("expected parseable path")
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].expr != `div[@id="app"]` || segs[0].positional {
		t.Fatalf("unexpected first segment: %+v", segs[0])
	}
	if segs[1].expr != "ul" || segs[1].axis != "/" {
		t.Fatalf("unexpected second segment: %+v", segs[1])
	}
	if segs[2].expr != "li[2]" || !segs[2].positional {
		t.Fatalf("unexpected third segment: %+v", segs[2])
	}

	// Round trip.
	if got := joinPath(segs); got != `//div[@id="app"]/ul/li[2]` {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestParsePath_Rejects(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{
		"",
		"div/ul",
		"//",
		`//div[@id="unclosed]`,
	} {
		if _, ok := parsePath(expr); ok {
			t.Errorf("expected parse failure for %q", expr)
		}
	}
}

func TestParsePath_PredicateWithSlash(t *testing.T) {
	t.Parallel()

	segs, ok := parsePath(`//a[@href="/docs/index"]/span`)
	if !ok {
		t.Fatal("expected parseable path")
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].expr != `a[@href="/docs/index"]` {
		t.Fatalf("unexpected first segment: %q", segs[0].expr)
	}
}

func TestSimplify_DropsInteriorSegment(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	r := newTestRequest(t, g, `<html><body>
<div>
  <ul>
    <li>a</li>
    <li>b</li>
  </ul>
</div>
</body></html>`, "ul li:nth-child(2)")

	in := "//body/div/ul/li[2]"
	if !g.validate(r, in) {
		t.Fatalf("precondition: %q must validate", in)
	}

	out := g.simplify(r, StrategyIncremental, in)
	if out == in {
		t.Fatalf("expected a reduction of %q", in)
	}
	if !g.validate(r, out) {
		t.Fatalf("simplified expression %q no longer validates", out)
	}
	if segmentCount(out) >= segmentCount(in) {
		t.Fatalf("simplified expression %q is not shorter than %q", out, in)
	}
}

func TestSimplify_ReturnsInputWhenIrreducible(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	r := newTestRequest(t, g, `<html><body>
<ul>
  <li>a</li>
  <li>b</li>
</ul>
</body></html>`, "li:nth-child(2)")

	in := "//li[2]"
	if out := g.simplify(r, StrategyIncremental, in); out != in {
		t.Fatalf("expected %q unchanged, got %q", in, out)
	}
}

func TestSimplify_CollapseToAnchor(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	fixture := `<html><body>
<div id="app">
  <section>
    <div>
      <ul>
        <li>a</li>
        <li>b</li>
      </ul>
    </div>
  </section>
</div>
</body></html>`
	r := newTestRequest(t, g, fixture, "ul li:nth-child(2)")

	segs, ok := parsePath(`//div[@id="app"]/section/div/ul/li[2]`)
	if !ok {
		t.Fatal("expected parseable path")
	}
	out, reduced := g.collapseToAnchor(r, StrategyIncremental, segs)
	if !reduced {
		t.Fatal("expected anchor collapse to succeed")
	}
	if out != `//div[@id="app"]//ul/li[2]` {
		t.Fatalf("unexpected collapse result: %q", out)
	}
	if !g.validate(r, out) {
		t.Fatalf("collapsed expression %q no longer validates", out)
	}
}

func TestMinimalSegment(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	doc, err := dom.ParseString(`<html><body>
<div id="sidebar">
  <ul>
    <li>a</li>
    <li data-testid="pick">b</li>
  </ul>
</div>
</body></html>`)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	cases := []struct {
		selector   string
		expr       string
		positional bool
	}{
		{"div", `div[@id="sidebar"]`, false},
		{"ul", "ul", false},
		{"li:nth-child(1)", "li[1]", true},
		{`li[data-testid="pick"]`, `li[@data-testid="pick"]`, false},
	}
	for _, tc := range cases {
		node := mustCSS(t, doc, tc.selector)
		seg := g.minimalSegment(node)
		if seg.expr != tc.expr || seg.positional != tc.positional {
			t.Errorf("minimalSegment(%s) = %+v, want %q positional=%v",
				tc.selector, seg, tc.expr, tc.positional)
		}
	}
}

func TestXPathLiteral(t *testing.T) {
	t.Parallel()

	if lit, ok := xpathLiteral("plain"); !ok || lit != `"plain"` {
		t.Fatalf("unexpected literal: %q %v", lit, ok)
	}
	if lit, ok := xpathLiteral(`say "hi"`); !ok || lit != `'say "hi"'` {
		t.Fatalf("unexpected literal: %q %v", lit, ok)
	}
	if _, ok := xpathLiteral(`both " and '`); ok {
		t.Fatal("expected mixed-quote value to be unusable")
	}
}

func mustCSS(t *testing.T, doc *html.Node, selector string) *html.Node {
	t.Helper()
	node, err := dom.FirstCSS(doc, selector)
	if err != nil || node == nil {
		t.Fatalf("find %q: %v", selector, err)
	}
	return node
}

// segmentCount counts top-level path steps.
func segmentCount(expr string) int {
	segs, ok := parsePath(expr)
	if !ok {
		return strings.Count(expr, "/")
	}
	return len(segs)
}
