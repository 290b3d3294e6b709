// internal/handlers/trend.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// TrendHandler exposes the keyword store: imports, listing, budget tuning and
// the batch allocation planner.
type TrendHandler struct {
	keywordService *services.KeywordService
}

func NewTrendHandler(keywordService *services.KeywordService) *TrendHandler {
	return &TrendHandler{keywordService: keywordService}
}

// ManualAdd handles POST /v1/trends/manual-add. The text field may carry
// several keywords separated by commas or newlines.
func (h *TrendHandler) ManualAdd(c *gin.Context) {
	var req services.KeywordImport
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid keyword payload", err.Error())
		return
	}

	imports := make([]services.KeywordImport, 0, 1)
	for _, text := range strings.FieldsFunc(req.Text, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		if strings.TrimSpace(text) == "" {
			continue
		}
		item := req
		item.Text = text
		imports = append(imports, item)
	}

	if len(imports) == 0 {
		utils.BadRequestResponse(c, "text must contain at least one keyword", nil)
		return
	}

	result, err := h.keywordService.ImportKeywords(imports)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if result.Created == 0 {
		utils.ConflictResponse(c, "all keywords already exist")
		return
	}

	utils.CreatedResponse(c, result)
}

type batchImportRequest struct {
	Keywords []services.KeywordImport `json:"keywords" binding:"required,min=1,dive"`
}

// BatchImport handles POST /v1/trends/batch-import
func (h *TrendHandler) BatchImport(c *gin.Context) {
	var req batchImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid import payload", err.Error())
		return
	}

	result, err := h.keywordService.ImportKeywords(req.Keywords)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// ListKeywords handles GET /v1/trends
func (h *TrendHandler) ListKeywords(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.keywordService.ListKeywords(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GetKeyword handles GET /v1/trends/:id
func (h *TrendHandler) GetKeyword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	keyword, err := h.keywordService.GetKeyword(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, keyword)
}

type allocationRequest struct {
	DesignsAllocated *int `json:"designs_allocated" binding:"required"`
}

// UpdateAllocation handles PUT /v1/trends/:id/allocation
func (h *TrendHandler) UpdateAllocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "designs_allocated is required", err.Error())
		return
	}

	keyword, err := h.keywordService.UpdateAllocation(id, *req.DesignsAllocated)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, keyword)
}

// DeactivateKeyword handles POST /v1/trends/:id/deactivate
func (h *TrendHandler) DeactivateKeyword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	keyword, err := h.keywordService.Deactivate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, keyword)
}

type allocatePlanRequest struct {
	BatchSize int `json:"batch_size" binding:"required,min=1,max=500"`
}

// PlanAllocation handles POST /v1/trends/allocate. It previews how a batch
// budget would be split across current candidates without generating.
func (h *TrendHandler) PlanAllocation(c *gin.Context) {
	var req allocatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "batch_size is required", err.Error())
		return
	}

	candidates, err := h.keywordService.SelectCandidates(50)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	plan, err := h.keywordService.PlanAllocation(req.BatchSize, candidates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	type plannedKeyword struct {
		KeywordID uint   `json:"keyword_id"`
		Text      string `json:"text"`
		Count     int    `json:"count"`
	}
	planned := make([]plannedKeyword, 0, len(plan))
	total := 0
	for _, kw := range candidates {
		if count, ok := plan[kw.ID]; ok {
			planned = append(planned, plannedKeyword{KeywordID: kw.ID, Text: kw.Text, Count: count})
			total += count
		}
	}

	utils.SuccessResponse(c, gin.H{
		"batch_size": req.BatchSize,
		"planned":    total,
		"keywords":   planned,
	})
}

// Stats handles GET /v1/trends/stats
func (h *TrendHandler) Stats(c *gin.Context) {
	stats, err := h.keywordService.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}
