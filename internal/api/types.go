// Package api implements the HTTP API for the locator service.
package api

// GenerateRequest asks for a locator for one node in an HTML document. The
// target is picked either by CSS selector or by an XPath expression; exactly
// one of the two must be set.
type GenerateRequest struct {
	// HTML is the document to operate on.
	HTML string `json:"html" binding:"required"`
	// Selector picks the target node by CSS selector.
	Selector string `json:"selector,omitempty"`
	// XPath picks the target node by XPath expression.
	XPath string `json:"xpath,omitempty"`
	// MaxAncestorDepth overrides the configured ancestor-walk bound.
	MaxAncestorDepth int `json:"max_ancestor_depth,omitempty"`
	// TimeoutMs overrides the configured generation timeout.
	TimeoutMs int `json:"timeout_ms,omitempty"`
}

// GenerateResponse carries a generated locator.
type GenerateResponse struct {
	Expression string `json:"expression"`
	Strategy   string `json:"strategy"`
	Verified   bool   `json:"verified"`
}

// ResolveRequest re-resolves a previously generated locator against a
// document.
type ResolveRequest struct {
	HTML       string `json:"html" binding:"required"`
	Expression string `json:"expression" binding:"required"`
}

// ResolveResponse describes the first node matching a locator, if any.
type ResolveResponse struct {
	Found bool   `json:"found"`
	Tag   string `json:"tag,omitempty"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
}
