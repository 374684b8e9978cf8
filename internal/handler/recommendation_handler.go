package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/service/savings"
)

type RecommendationHandler struct {
	items    domain.ItemRepository
	analyzer *savings.Analyzer
}

func NewRecommendationHandler(items domain.ItemRepository, analyzer *savings.Analyzer) *RecommendationHandler {
	return &RecommendationHandler{
		items:    items,
		analyzer: analyzer,
	}
}

type recommendationResponse struct {
	ID             string   `json:"id"`
	Kind           string   `json:"kind"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	MonthlySavings float64  `json:"monthly_savings"`
	Impact         string   `json:"impact"`
	ItemIDs        []string `json:"item_ids,omitempty"`
	Verified       bool     `json:"verified"`
}

func (h *RecommendationHandler) HandleList(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	items, err := h.items.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	recs := h.analyzer.Analyze(items)

	resp := make([]recommendationResponse, 0, len(recs))
	total := 0.0
	for _, rec := range recs {
		resp = append(resp, recommendationResponse{
			ID:             rec.ID,
			Kind:           string(rec.Kind),
			Title:          rec.Title,
			Description:    rec.Description,
			MonthlySavings: rec.MonthlySavings,
			Impact:         string(rec.Impact),
			ItemIDs:        rec.ItemIDs,
			Verified:       rec.Verified,
		})
		total += rec.MonthlySavings
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations":       resp,
		"total_monthly_savings": total,
	})
}
