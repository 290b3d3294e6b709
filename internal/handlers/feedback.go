// internal/handlers/feedback.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// FeedbackHandler is the review dashboard's write surface. The single
// feedback endpoint keeps a flat response shape because older dashboard
// builds parse it directly rather than through the standard envelope.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

type feedbackRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
	Reason    string `json:"reason"`
}

// RecordFeedback handles POST /feedback (and POST /v1/feedback).
func (h *FeedbackHandler) RecordFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "product_id and action are required",
		})
		return
	}

	result, err := h.feedbackService.RecordFeedback(req.ProductID, req.Action, req.Reason)
	if err != nil {
		h.respondFlatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"product_id": result.ProductID,
		"status":     result.Status,
	})
}

func (h *FeedbackHandler) respondFlatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAction), errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	default:
		logrus.WithError(err).Error("Feedback recording failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}

type bulkFeedbackRequest struct {
	Items []services.BulkFeedbackItem `json:"items" binding:"required,min=1,dive"`
}

// BulkFeedback handles POST /v1/feedback/bulk
func (h *FeedbackHandler) BulkFeedback(c *gin.Context) {
	var req bulkFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid bulk feedback payload", err.Error())
		return
	}

	result, err := h.feedbackService.BulkFeedback(req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// History handles GET /v1/feedback/:id/history
func (h *FeedbackHandler) History(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.feedbackService.History(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, history)
}

// Preferences handles GET /v1/feedback/preferences
func (h *FeedbackHandler) Preferences(c *gin.Context) {
	report, err := h.feedbackService.Preferences()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}
