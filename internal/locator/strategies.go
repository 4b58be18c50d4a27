package locator

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/internal/dom"
)

// Sibling-label length bounds. Labels outside this range are either too
// generic or too likely to be record data.
const (
	minLabelLength = 4
	maxLabelLength = 29
)

// anchorAttrs mark an ancestor as a strong anchor even when its id is not
// usable.
var anchorAttrs = []string{"data-testid", "data-test", "role"}

// minimalTag proposes the bare tag-name query. It only survives validation
// when the target is the sole element of its tag in the document.
func (g *Generator) minimalTag(r *request) (string, bool) {
	expr := "//" + dom.TagName(r.target)
	if g.try(r, StrategyMinimalTag, expr) {
		return expr, true
	}
	return "", false
}

// stableAttribute proposes predicates on the target's own attributes, in
// preference order, then on a stable and distinctive class token.
func (g *Generator) stableAttribute(r *request) (string, bool) {
	tag := dom.TagName(r.target)

	for _, attr := range preferredAttrs {
		val := dom.Attr(r.target, attr)
		if val == "" || g.classifier.IsDataSpecificValue(attr, val) {
			continue
		}
		lit, ok := xpathLiteral(val)
		if !ok {
			continue
		}
		expr := fmt.Sprintf("//%s[@%s=%s]", tag, attr, lit)
		if g.try(r, StrategyStableAttribute, expr) {
			return expr, true
		}
	}

	for _, class := range dom.Classes(r.target) {
		if !g.classifier.IsStableClass(class) || !g.classifier.IsDistinctiveClass(class) {
			continue
		}
		lit, ok := xpathLiteral(class)
		if !ok {
			continue
		}
		expr := fmt.Sprintf("//%s[contains(@class, %s)]", tag, lit)
		if g.try(r, StrategyStableAttribute, expr) {
			return expr, true
		}
	}

	return "", false
}

// stableAnchor walks ancestors looking for a stable reference point (stable
// id, strong attribute, or semantic landmark) and hangs a minimal child path
// off it, shortest formulation first.
func (g *Generator) stableAnchor(r *request) (string, bool) {
	tag := dom.TagName(r.target)
	childSeg := g.minimalSegment(r.target)
	parent := dom.ParentElement(r.target)

	depth := 0
	for anc := parent; anc != nil && depth < r.opts.MaxAncestorDepth; anc = dom.ParentElement(anc) {
		depth++

		anchors := g.anchorSegments(anc)
		if len(anchors) == 0 {
			continue
		}

		for _, anchor := range anchors {
			candidates := []string{
				"//" + anchor + "//" + tag,
				"//" + anchor + "//" + childSeg.expr,
			}
			if parent != nil && parent != anc {
				parentSeg := g.minimalSegment(parent)
				candidates = append(candidates,
					"//"+anchor+"//"+parentSeg.expr+"/"+childSeg.expr)
			}
			sort.Slice(candidates, func(i, j int) bool {
				return len(candidates[i]) < len(candidates[j])
			})

			for _, expr := range candidates {
				if g.try(r, StrategyStableAnchor, expr) {
					return expr, true
				}
			}
		}
	}

	return "", false
}

// anchorSegments returns candidate anchor formulations for an ancestor, or
// nothing when the ancestor is not anchor-worthy.
func (g *Generator) anchorSegments(n *html.Node) []string {
	tag := dom.TagName(n)

	if id := dom.ID(n); id != "" && g.classifier.IsStableID(id) {
		if lit, ok := xpathLiteral(id); ok {
			return []string{
				fmt.Sprintf("*[@id=%s]", lit),
				fmt.Sprintf("%s[@id=%s]", tag, lit),
			}
		}
	}

	for _, attr := range anchorAttrs {
		val := dom.Attr(n, attr)
		if val == "" || g.classifier.IsDataSpecificValue(attr, val) {
			continue
		}
		if lit, ok := xpathLiteral(val); ok {
			return []string{fmt.Sprintf("%s[@%s=%s]", tag, attr, lit)}
		}
	}

	if isLandmark(tag) {
		return []string{tag}
	}

	return nil
}

// siblingLabel special-cases definition lists: a dd immediately preceded by
// a dt with a short, non-data label is located through that label.
func (g *Generator) siblingLabel(r *request) (string, bool) {
	if dom.TagName(r.target) != "dd" {
		return "", false
	}

	label := dom.PrevElementSibling(r.target)
	if dom.TagName(label) != "dt" {
		return "", false
	}

	text := dom.Text(label)
	if len(text) < minLabelLength || len(text) > maxLabelLength {
		return "", false
	}
	if g.classifier.LooksLikeUserData(text) {
		return "", false
	}

	lit, ok := xpathLiteral(text)
	if !ok {
		return "", false
	}
	expr := fmt.Sprintf("//dt[contains(., %s)]/following-sibling::dd[1]", lit)
	if g.try(r, StrategySiblingLabel, expr) {
		return expr, true
	}
	return "", false
}

// incremental composes a minimal step for the target, then climbs one
// ancestor at a time. At each level it tries the ancestor tag as a
// descendant anchor, the ancestor's own minimal step as an anchor, and the
// full accumulated path, returning the first candidate that validates. The
// walk is bounded by depth and the time budget and stops after one attempt
// at a semantic landmark level.
func (g *Generator) incremental(r *request) (string, bool) {
	acc := []string{g.minimalSegment(r.target).expr}
	if expr := "//" + acc[0]; g.try(r, StrategyIncremental, expr) {
		return expr, true
	}

	depth := 0
	for anc := dom.ParentElement(r.target); anc != nil; anc = dom.ParentElement(anc) {
		if depth >= r.opts.MaxAncestorDepth || r.expired() {
			break
		}
		depth++

		tag := dom.TagName(anc)
		joined := strings.Join(acc, "/")

		if expr := "//" + tag + "//" + joined; g.try(r, StrategyIncremental, expr) {
			return expr, true
		}

		ancSeg := g.minimalSegment(anc)
		if ancSeg.expr != tag {
			if expr := "//" + ancSeg.expr + "//" + joined; g.try(r, StrategyIncremental, expr) {
				return expr, true
			}
		}

		acc = append([]string{ancSeg.expr}, acc...)
		if expr := "//" + strings.Join(acc, "/"); g.try(r, StrategyIncremental, expr) {
			return expr, true
		}

		if isLandmark(tag) {
			break
		}
	}

	return "", false
}

// fallbackPath collects minimal steps upward until a semantic landmark or
// the depth/time budget runs out. Uniqueness is not guaranteed here; the
// caller validates and flags the result.
func (g *Generator) fallbackPath(r *request) string {
	segs := []string{g.minimalSegment(r.target).expr}

	depth := 0
	for anc := dom.ParentElement(r.target); anc != nil; anc = dom.ParentElement(anc) {
		if depth >= r.opts.MaxAncestorDepth || r.expired() {
			break
		}
		depth++

		segs = append([]string{g.minimalSegment(anc).expr}, segs...)
		if isLandmark(dom.TagName(anc)) {
			break
		}
	}

	return "//" + strings.Join(segs, "/")
}
