// README: Preference lexicon and query-similarity handlers.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/ai"
	"wayfarer/internal/service"
)

const maxSimilarityQueries = 20

type QueryAnalyzer interface {
	AnalyzeQueries(ctx context.Context, texts []string) (*service.Analysis, error)
}

type PreferenceHandler struct {
	analyzer QueryAnalyzer
}

func NewPreferenceHandler(analyzer QueryAnalyzer) *PreferenceHandler {
	return &PreferenceHandler{analyzer: analyzer}
}

type category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Categories handles GET /api/categories.
func (h *PreferenceHandler) Categories(c *gin.Context) {
	out := make([]category, 0, len(ai.Categories))
	for _, name := range ai.Categories {
		out = append(out, category{Name: name, Keywords: ai.CategoryKeywords[name]})
	}
	writeJSON(c, http.StatusOK, gin.H{"categories": out})
}

type similarityReq struct {
	Queries []string `json:"queries"`
}

// Similarity handles POST /api/preferences/similarity.
func (h *PreferenceHandler) Similarity(c *gin.Context) {
	var req similarityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Queries) < 2 || len(req.Queries) > maxSimilarityQueries {
		writeError(c, http.StatusBadRequest, "queries must hold between 2 and "+itoa(maxSimilarityQueries)+" entries")
		return
	}
	analysis, err := h.analyzer.AnalyzeQueries(c.Request.Context(), req.Queries)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, analysis)
}

func itoa(n int) string { return strconv.Itoa(n) }
