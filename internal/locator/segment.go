package locator

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/internal/dom"
)

// preferredAttrs are tried in order when building attribute predicates.
var preferredAttrs = []string{
	"data-testid",
	"data-test",
	"name",
	"role",
	"type",
	"aria-label",
	"aria-labelledby",
}

// landmarkTags appear once per page region by convention and make natural
// stopping points for ancestor walks.
var landmarkTags = map[string]bool{
	"main":    true,
	"nav":     true,
	"header":  true,
	"footer":  true,
	"aside":   true,
	"article": true,
	"section": true,
	"form":    true,
}

// isLandmark reports whether tag is a semantic landmark.
func isLandmark(tag string) bool {
	return landmarkTags[tag]
}

// segment is one step of a locator path.
type segment struct {
	expr       string
	positional bool
}

// minimalSegment builds the shortest reliable step for one element: a stable
// attribute predicate when available, the bare tag when it is the only
// same-tag sibling, else the tag with a 1-based position. Elements whose id
// is unstable still contribute a tag or position step.
func (g *Generator) minimalSegment(n *html.Node) segment {
	tag := dom.TagName(n)

	if id := dom.ID(n); id != "" && g.classifier.IsStableID(id) {
		if lit, ok := xpathLiteral(id); ok {
			return segment{expr: fmt.Sprintf("%s[@id=%s]", tag, lit)}
		}
	}

	for _, attr := range preferredAttrs {
		val := dom.Attr(n, attr)
		if val == "" || g.classifier.IsDataSpecificValue(attr, val) {
			continue
		}
		lit, ok := xpathLiteral(val)
		if !ok {
			continue
		}
		return segment{expr: fmt.Sprintf("%s[@%s=%s]", tag, attr, lit)}
	}

	pos, count := dom.SameTagPosition(n)
	if count <= 1 {
		return segment{expr: tag}
	}
	return segment{expr: fmt.Sprintf("%s[%d]", tag, pos), positional: true}
}

// xpathLiteral quotes a value for use in an XPath predicate. Values
// containing both quote characters cannot be expressed as a plain literal
// and are reported as unusable.
func xpathLiteral(value string) (string, bool) {
	if !strings.Contains(value, `"`) {
		return `"` + value + `"`, true
	}
	if !strings.Contains(value, "'") {
		return "'" + value + "'", true
	}
	return "", false
}
