// internal/handlers/provider.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// ProviderHandler exposes the fulfillment provider registry.
type ProviderHandler struct {
	providerService *services.ProviderService
}

func NewProviderHandler(providerService *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// ListProviders handles GET /v1/providers
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	providers, err := h.providerService.ListProviders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, providers)
}

type providerUpdateRequest struct {
	IsActive *bool        `json:"is_active"`
	Settings models.JSONB `json:"settings"`
}

// UpdateProvider handles PUT /v1/providers/:id
func (h *ProviderHandler) UpdateProvider(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req providerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid provider payload", err.Error())
		return
	}

	var provider *models.PODProvider
	var err error

	if req.IsActive != nil {
		provider, err = h.providerService.SetActive(id, *req.IsActive)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.Settings != nil {
		provider, err = h.providerService.UpdateSettings(id, req.Settings)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	if provider == nil {
		utils.BadRequestResponse(c, "nothing to update", nil)
		return
	}

	utils.SuccessResponse(c, provider)
}
