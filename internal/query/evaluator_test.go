package query_test

import (
	"testing"

	"github.com/jonesrussell/golocator/internal/query"
	"github.com/jonesrussell/golocator/testutils"
)

const fixture = `<html><body>
<ul>
  <li>one</li>
  <li>two</li>
  <li data-testid="last">three</li>
</ul>
</body></html>`

func TestEvaluate(t *testing.T) {
	t.Parallel()

	doc := testutils.ParseHTML(t, fixture)
	e := query.NewXPathEvaluator()

	nodes, err := e.Evaluate("//li", doc)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(nodes))
	}

	nodes, err = e.Evaluate(`//li[@data-testid="last"]`, doc)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 match, got %d", len(nodes))
	}
}

func TestEvaluate_MalformedExpression(t *testing.T) {
	t.Parallel()

	doc := testutils.ParseHTML(t, fixture)
	e := query.NewXPathEvaluator()

	if _, err := e.Evaluate("//li[@", doc); err == nil {
		t.Fatal("expected error for malformed expression")
	}
}

func TestEvaluate_CachedExpression(t *testing.T) {
	t.Parallel()

	doc := testutils.ParseHTML(t, fixture)
	e := query.NewXPathEvaluator()

	// Same expression twice exercises the compile cache.
	for i := 0; i < 2; i++ {
		nodes, err := e.Evaluate("//ul/li", doc)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if len(nodes) != 3 {
			t.Fatalf("expected 3 matches, got %d", len(nodes))
		}
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	doc := testutils.ParseHTML(t, fixture)
	e := query.NewXPathEvaluator()

	node, err := query.Locate(e, "//li", doc)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if node == nil {
		t.Fatal("expected a match")
	}

	missing, err := query.Locate(e, "//table", doc)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if missing != nil {
		t.Fatal("expected no match")
	}
}
