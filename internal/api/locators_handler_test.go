package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/golocator/internal/api"
	"github.com/jonesrussell/golocator/internal/config"
	"github.com/jonesrussell/golocator/internal/locator"
	"github.com/jonesrussell/golocator/internal/logger"
	"github.com/jonesrussell/golocator/internal/query"
)

const fixture = `<html><body>
<ul id="list1234XX">
  <li>A</li>
  <li>B</li>
  <li data-testid="item-target">C</li>
</ul>
</body></html>`

// newTestRouter builds the full router over a real generator.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	evaluator := query.NewXPathEvaluator()
	gen, err := locator.New(locator.Params{Evaluator: evaluator})
	require.NoError(t, err)

	handler := api.NewLocatorsHandler(
		logger.NewNoOp(),
		gen,
		evaluator,
		&config.LocatorConfig{MaxAncestorDepth: 10, TimeoutMs: 5000},
	)
	return api.NewRouter(logger.NewNoOp(), handler)
}

// doJSON posts a JSON body and decodes the JSON response.
func doJSON(t *testing.T, router http.Handler, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestHandleGenerate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	var resp api.GenerateResponse
	rec := doJSON(t, router, "/api/v1/locators/generate", api.GenerateRequest{
		HTML:     fixture,
		Selector: `li[data-testid="item-target"]`,
	}, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `//li[@data-testid="item-target"]`, resp.Expression)
	assert.Equal(t, "stable-attribute", resp.Strategy)
	assert.True(t, resp.Verified)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleGenerate_XPathTarget(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	var resp api.GenerateResponse
	rec := doJSON(t, router, "/api/v1/locators/generate", api.GenerateRequest{
		HTML:  fixture,
		XPath: "//li[3]",
	}, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Verified)
}

func TestHandleGenerate_BadRequests(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	// Neither selector nor xpath.
	rec := doJSON(t, router, "/api/v1/locators/generate",
		api.GenerateRequest{HTML: fixture}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Both selector and xpath.
	rec = doJSON(t, router, "/api/v1/locators/generate",
		api.GenerateRequest{HTML: fixture, Selector: "li", XPath: "//li"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing HTML.
	rec = doJSON(t, router, "/api/v1/locators/generate",
		api.GenerateRequest{Selector: "li"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_TargetNotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, "/api/v1/locators/generate",
		api.GenerateRequest{HTML: fixture, Selector: "table"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleResolve(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	var resp api.ResolveResponse
	rec := doJSON(t, router, "/api/v1/locators/resolve", api.ResolveRequest{
		HTML:       fixture,
		Expression: `//li[@data-testid="item-target"]`,
	}, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Found)
	assert.Equal(t, "li", resp.Tag)
	assert.Equal(t, "C", resp.Text)
}

func TestHandleResolve_NoMatch(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	var resp api.ResolveResponse
	rec := doJSON(t, router, "/api/v1/locators/resolve", api.ResolveRequest{
		HTML:       fixture,
		Expression: "//table",
	}, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Found)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
