package locator

// try validates a candidate expression and reports the attempt to the
// tracer. A candidate is accepted only when it resolves to exactly one node
// and that node is the requested target. Evaluator failures (malformed
// expression, unsupported syntax) reject the candidate and are never
// propagated.
func (g *Generator) try(r *request, s Strategy, expr string) bool {
	ok := g.validate(r, expr)
	if g.tracer != nil {
		g.tracer.Candidate(s, expr, ok)
	}
	return ok
}

// validate checks uniqueness and target identity from a single evaluation
// of expr against the whole document.
func (g *Generator) validate(r *request, expr string) bool {
	if expr == "" {
		return false
	}
	nodes, err := g.evaluator.Evaluate(expr, r.doc)
	if err != nil {
		return false
	}
	return len(nodes) == 1 && nodes[0] == r.target
}
