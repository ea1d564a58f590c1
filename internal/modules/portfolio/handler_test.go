package portfolio

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	allowAll := func(c *gin.Context) { c.Next() }
	NewHandler(NewService(db)).RegisterRoutes(r.Group("/api"), allowAll)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublishedEndpointEmpty(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/portfolio/published", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveDraftEndpointWithoutPublished(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/portfolio/save-draft", gin.H{"hero_title": "X"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSaveDraftEndpointRejectsMalformedPayload(t *testing.T) {
	db := newTestDB(t)
	seedPublished(t, db)
	r := newTestRouter(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/save-draft", bytes.NewBufferString(`{"hero_title": 42}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEditPublishFlowOverHTTP(t *testing.T) {
	db := newTestDB(t)
	seedPublished(t, db)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/portfolio/save-draft", gin.H{"hero_title": "Version B"})
	require.Equal(t, http.StatusOK, w.Code)

	var draft map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Equal(t, "Version B", draft["hero_title"])
	assert.Equal(t, true, draft["is_draft"])

	// the live site still serves the old title
	w = doJSON(t, r, http.MethodGet, "/api/portfolio/published", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var live map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &live))
	assert.Equal(t, "Hello", live["hero_title"])

	// the diff shows the pending edit
	w = doJSON(t, r, http.MethodGet, "/api/portfolio/diff", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, true, report["has_unpublished_changes"])
	assert.Equal(t, "modified", report["profile"])

	w = doJSON(t, r, http.MethodPost, "/api/portfolio/publish", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var promoted map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &promoted))
	assert.Equal(t, "Version B", promoted["hero_title"])

	// publishing again without a draft is a conflict
	w = doJSON(t, r, http.MethodPost, "/api/portfolio/publish", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDraftEndpointFallsBack(t *testing.T) {
	db := newTestDB(t)
	published := seedPublished(t, db)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/portfolio/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, published.ID, got["id"])
	assert.Equal(t, false, got["is_draft"])
}
