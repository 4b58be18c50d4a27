package locator

import (
	"regexp"
	"strings"
)

// positionalRe matches segments carrying a 1-based positional index.
var positionalRe = regexp.MustCompile(`\[\d+\]$`)

// anchorPredicates mark a segment as a usable anchor during collapse.
var anchorPredicates = []string{`@id=`, `@data-testid=`, `@data-test=`}

// pathSegment is one step of a parsed path expression. axis is the separator
// preceding the segment; the first segment of a path is always reached via
// the descendant axis.
type pathSegment struct {
	axis       string
	expr       string
	positional bool
}

// simplify greedily shortens a validated path expression. Reduction passes
// run in order; every candidate is re-validated and the first success wins.
// When no pass yields a shorter valid expression the input is returned
// unchanged, so the result is never longer than its input.
func (g *Generator) simplify(r *request, s Strategy, expr string) string {
	segs, ok := parsePath(expr)
	if !ok || len(segs) < 3 {
		return expr
	}

	passes := []func(*request, Strategy, []pathSegment) (string, bool){
		g.dropInteriorNonPositional,
		g.dropTrailingNonPositional,
		g.dropInteriorPositional,
		g.truncateFront,
		g.collapseToAnchor,
	}
	for _, pass := range passes {
		if out, reduced := pass(r, s, segs); reduced {
			return out
		}
	}
	return expr
}

// dropInteriorNonPositional removes one non-positional interior segment.
// The first and last segments are never touched.
func (g *Generator) dropInteriorNonPositional(r *request, s Strategy, segs []pathSegment) (string, bool) {
	for i := 1; i < len(segs)-1; i++ {
		if segs[i].positional {
			continue
		}
		cand := joinPath(dropSegment(segs, i))
		if g.try(r, s, cand) {
			return cand, true
		}
	}
	return "", false
}

// dropTrailingNonPositional removes every non-positional segment after the
// first positional one, keeping all positional segments.
func (g *Generator) dropTrailingNonPositional(r *request, s Strategy, segs []pathSegment) (string, bool) {
	p := firstPositional(segs)
	if p < 0 {
		return "", false
	}

	kept := make([]pathSegment, 0, len(segs))
	kept = append(kept, segs[:p+1]...)
	dropped := false
	for i := p + 1; i < len(segs); i++ {
		if !segs[i].positional {
			dropped = true
			continue
		}
		seg := segs[i]
		if dropped {
			seg.axis = "//"
		}
		kept = append(kept, seg)
		dropped = false
	}
	if len(kept) == len(segs) {
		return "", false
	}

	cand := joinPath(kept)
	if g.try(r, s, cand) {
		return cand, true
	}
	return "", false
}

// dropInteriorPositional removes one positional interior segment. The first
// positional segment is assumed load-bearing for uniqueness and is kept.
func (g *Generator) dropInteriorPositional(r *request, s Strategy, segs []pathSegment) (string, bool) {
	p := firstPositional(segs)
	for i := 1; i < len(segs)-1; i++ {
		if !segs[i].positional || i == p {
			continue
		}
		cand := joinPath(dropSegment(segs, i))
		if g.try(r, s, cand) {
			return cand, true
		}
	}
	return "", false
}

// truncateFront removes leading segments up to, but not past, the first
// positional segment. The largest truncation is attempted first.
func (g *Generator) truncateFront(r *request, s Strategy, segs []pathSegment) (string, bool) {
	p := firstPositional(segs)
	if p <= 0 {
		return "", false
	}
	for k := p; k >= 1; k-- {
		cand := joinPath(segs[k:])
		if g.try(r, s, cand) {
			return cand, true
		}
	}
	return "", false
}

// collapseToAnchor reduces the path to the first id-like anchor segment plus
// the last two segments.
func (g *Generator) collapseToAnchor(r *request, s Strategy, segs []pathSegment) (string, bool) {
	anchor := -1
	for i, seg := range segs {
		if isAnchorSegment(seg.expr) {
			anchor = i
			break
		}
	}
	if anchor < 0 || anchor >= len(segs)-2 {
		return "", false
	}

	cand := make([]pathSegment, 0, 3)
	cand = append(cand, segs[anchor])
	penultimate := segs[len(segs)-2]
	if anchor < len(segs)-3 {
		penultimate.axis = "//"
	}
	cand = append(cand, penultimate, segs[len(segs)-1])
	if len(cand) >= len(segs) {
		return "", false
	}

	out := joinPath(cand)
	if g.try(r, s, out) {
		return out, true
	}
	return "", false
}

// isAnchorSegment reports whether a segment carries an id-like predicate.
func isAnchorSegment(expr string) bool {
	for _, p := range anchorPredicates {
		if strings.Contains(expr, p) {
			return true
		}
	}
	return false
}

// firstPositional returns the index of the first positional segment, or -1.
func firstPositional(segs []pathSegment) int {
	for i, seg := range segs {
		if seg.positional {
			return i
		}
	}
	return -1
}

// dropSegment returns a copy of segs without element i. The segment after
// the gap is reached via the descendant axis.
func dropSegment(segs []pathSegment, i int) []pathSegment {
	out := make([]pathSegment, 0, len(segs)-1)
	out = append(out, segs[:i]...)
	if i+1 < len(segs) {
		next := segs[i+1]
		next.axis = "//"
		out = append(out, next)
		out = append(out, segs[i+2:]...)
	}
	return out
}

// joinPath renders segments back into an expression. The first segment is
// always reached via the descendant axis.
func joinPath(segs []pathSegment) string {
	var b strings.Builder
	for i, seg := range segs {
		if i == 0 {
			b.WriteString("//")
		} else {
			b.WriteString(seg.axis)
		}
		b.WriteString(seg.expr)
	}
	return b.String()
}

// parsePath splits a path expression into segments, respecting predicates
// and quoted values. Only expressions of the shape produced by the
// incremental and fallback strategies are parseable.
func parsePath(expr string) ([]pathSegment, bool) {
	if !strings.HasPrefix(expr, "//") {
		return nil, false
	}

	var segs []pathSegment
	i := 0
	for i < len(expr) {
		axis := "/"
		if strings.HasPrefix(expr[i:], "//") {
			axis = "//"
			i += 2
		} else if expr[i] == '/' {
			i++
		} else {
			return nil, false
		}

		seg, next, ok := scanSegment(expr, i)
		if !ok {
			return nil, false
		}
		segs = append(segs, pathSegment{
			axis:       axis,
			expr:       seg,
			positional: positionalRe.MatchString(seg),
		})
		i = next
	}

	if len(segs) == 0 {
		return nil, false
	}
	return segs, true
}

// scanSegment reads one segment starting at i, stopping at the next
// top-level slash.
func scanSegment(expr string, i int) (string, int, bool) {
	start := i
	depth := 0
	var quote byte
	for i < len(expr) {
		c := expr[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
		case '/':
			if depth == 0 {
				if i == start {
					return "", i, false
				}
				return expr[start:i], i, true
			}
		}
		i++
	}
	if depth != 0 || quote != 0 || i == start {
		return "", i, false
	}
	return expr[start:i], i, true
}
