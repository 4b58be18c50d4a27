package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/internal/api/middleware"
	"github.com/jonesrussell/golocator/internal/config"
	"github.com/jonesrussell/golocator/internal/dom"
	"github.com/jonesrussell/golocator/internal/locator"
	"github.com/jonesrussell/golocator/internal/logger"
	"github.com/jonesrussell/golocator/internal/query"
)

// maxTextPreview bounds the text snippet returned for resolved nodes.
const maxTextPreview = 120

// LocatorsHandler serves locator generation and resolution endpoints.
type LocatorsHandler struct {
	logger    logger.Interface
	generator *locator.Generator
	evaluator query.Evaluator
	defaults  *config.LocatorConfig
}

// NewLocatorsHandler creates a LocatorsHandler.
func NewLocatorsHandler(
	log logger.Interface,
	gen *locator.Generator,
	evaluator query.Evaluator,
	defaults *config.LocatorConfig,
) *LocatorsHandler {
	return &LocatorsHandler{
		logger:    log,
		generator: gen,
		evaluator: evaluator,
		defaults:  defaults,
	}
}

// RegisterRoutes registers the locator endpoints on a router group.
func (h *LocatorsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/locators/generate", h.HandleGenerate)
	group.POST("/locators/resolve", h.HandleResolve)
}

// HandleGenerate handles POST /api/v1/locators/generate.
func (h *LocatorsHandler) HandleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if (req.Selector == "") == (req.XPath == "") {
		respondBadRequest(c, "exactly one of selector or xpath must be set")
		return
	}

	doc, err := dom.ParseString(req.HTML)
	if err != nil {
		respondBadRequest(c, "invalid html: "+err.Error())
		return
	}

	target, err := h.findTarget(doc, &req)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if target == nil {
		respondNotFound(c, "target node")
		return
	}

	opts := locator.Options{
		MaxAncestorDepth: h.defaults.MaxAncestorDepth,
		Timeout:          h.defaults.Timeout(),
	}
	if req.MaxAncestorDepth > 0 {
		opts.MaxAncestorDepth = req.MaxAncestorDepth
	}
	if req.TimeoutMs > 0 {
		opts.Timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}

	result, err := h.generator.Generate(target, opts)
	if err != nil {
		if errors.Is(err, locator.ErrInvalidNode) {
			respondBadRequest(c, "target is not an element node")
			return
		}
		h.logger.WithRequestID(middleware.GetRequestID(c)).
			Error("generate failed", "error", err)
		respondInternalError(c, "locator generation failed")
		return
	}

	h.logger.WithRequestID(middleware.GetRequestID(c)).Info("locator generated",
		"strategy", string(result.Strategy), "verified", result.Verified)
	c.JSON(http.StatusOK, GenerateResponse{
		Expression: result.Expression,
		Strategy:   string(result.Strategy),
		Verified:   result.Verified,
	})
}

// HandleResolve handles POST /api/v1/locators/resolve.
func (h *LocatorsHandler) HandleResolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	doc, err := dom.ParseString(req.HTML)
	if err != nil {
		respondBadRequest(c, "invalid html: "+err.Error())
		return
	}

	node, err := query.Locate(h.evaluator, req.Expression, doc)
	if err != nil {
		respondBadRequest(c, "invalid expression: "+err.Error())
		return
	}
	if node == nil {
		c.JSON(http.StatusOK, ResolveResponse{Found: false})
		return
	}

	text := dom.TruncateText(dom.Text(node), maxTextPreview)
	c.JSON(http.StatusOK, ResolveResponse{
		Found: true,
		Tag:   dom.TagName(node),
		ID:    dom.ID(node),
		Text:  text,
	})
}

// findTarget resolves the requested target node by CSS selector or XPath.
func (h *LocatorsHandler) findTarget(doc *html.Node, req *GenerateRequest) (*html.Node, error) {
	if req.Selector != "" {
		return dom.FirstCSS(doc, req.Selector)
	}
	return query.Locate(h.evaluator, req.XPath, doc)
}
