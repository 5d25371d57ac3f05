package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/ai"
	"wayfarer/internal/http/handlers"
	"wayfarer/internal/service"
)

type stubAnalyzer struct {
	got []string
	err error
}

func (s *stubAnalyzer) AnalyzeQueries(_ context.Context, texts []string) (*service.Analysis, error) {
	s.got = texts
	if s.err != nil {
		return nil, s.err
	}
	n := len(texts)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1
	}
	qs := make([]service.QueryAnalysis, n)
	for i, t := range texts {
		qs[i] = service.QueryAnalysis{Text: t}
	}
	return &service.Analysis{Queries: qs, Similarity: sim}, nil
}

func newPreferenceRouter(a handlers.QueryAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewPreferenceHandler(a)
	r := gin.New()
	r.GET("/api/categories", h.Categories)
	r.POST("/api/preferences/similarity", h.Similarity)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategories(t *testing.T) {
	r := newPreferenceRouter(&stubAnalyzer{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories []struct {
			Name     string   `json:"name"`
			Keywords []string `json:"keywords"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Categories, len(ai.Categories))
	for i, c := range body.Categories {
		assert.Equal(t, ai.Categories[i], c.Name)
		assert.NotEmpty(t, c.Keywords)
	}
}

func TestSimilarity(t *testing.T) {
	a := &stubAnalyzer{}
	r := newPreferenceRouter(a)
	w := postJSON(r, "/api/preferences/similarity", map[string]any{"queries": []string{"hiking trip", "museum weekend"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"hiking trip", "museum weekend"}, a.got)

	var out service.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out.Similarity, 2)
}

func TestSimilarity_Validation(t *testing.T) {
	a := &stubAnalyzer{}
	r := newPreferenceRouter(a)

	w := postJSON(r, "/api/preferences/similarity", map[string]any{"queries": []string{"only one"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	many := make([]string, 21)
	for i := range many {
		many[i] = "q"
	}
	w = postJSON(r, "/api/preferences/similarity", map[string]any{"queries": many})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, a.got)

	a.err = service.ErrInvalidInput
	w = postJSON(r, "/api/preferences/similarity", map[string]any{"queries": []string{"a", " "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
