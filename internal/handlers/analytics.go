// internal/handlers/analytics.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// AnalyticsHandler serves the operator dashboard numbers.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	feedbackService  *services.FeedbackService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, feedbackService *services.FeedbackService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, feedbackService: feedbackService}
}

// Summary handles GET /v1/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// ApprovalStats handles GET /v1/analytics/approval-stats
func (h *AnalyticsHandler) ApprovalStats(c *gin.Context) {
	report, err := h.feedbackService.Preferences()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}

// Series handles GET /v1/analytics/series?days=30
func (h *AnalyticsHandler) Series(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	series, err := h.analyticsService.Series(days)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, series)
}

// TopProducts handles GET /v1/analytics/top-products?limit=10
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.analyticsService.TopProducts(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// Rollup handles POST /v1/analytics/rollup, a manual re-run of the nightly
// aggregation for yesterday.
func (h *AnalyticsHandler) Rollup(c *gin.Context) {
	count, err := h.analyticsService.RollupYesterday()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products_rolled_up": count})
}
