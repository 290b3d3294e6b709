// internal/handlers/generation.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// GenerationHandler triggers artwork generation runs and reports pipeline
// status.
type GenerationHandler struct {
	generationService *services.GenerationService
}

func NewGenerationHandler(generationService *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

type generateRequest struct {
	KeywordID uint `json:"keyword_id" binding:"required"`
	Count     int  `json:"count" binding:"required,min=1,max=50"`
}

// Generate handles POST /v1/generation/generate
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid generation request", err.Error())
		return
	}

	outcomes, err := h.generationService.GenerateForKeyword(c.Request.Context(), req.KeywordID, req.Count)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"generated": len(outcomes),
		"outcomes":  outcomes,
	})
}

type batchRequest struct {
	BatchSize int `json:"batch_size" binding:"omitempty,min=1,max=200"`
}

// BatchGenerate handles POST /v1/generation/batch-generate
func (h *GenerationHandler) BatchGenerate(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.BadRequestResponse(c, "Invalid batch request", err.Error())
		return
	}

	result, err := h.generationService.BatchGenerate(c.Request.Context(), req.BatchSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// Status handles GET /v1/generation/status
func (h *GenerationHandler) Status(c *gin.Context) {
	status, err := h.generationService.Status()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, status)
}
