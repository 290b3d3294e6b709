// internal/handlers/listing.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// ListingHandler publishes approved products to marketplaces.
type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

type publishRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Platform  string `json:"platform"`
}

// Publish handles POST /v1/listings/publish. Platform defaults to shopify.
func (h *ListingHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "product_id is required", err.Error())
		return
	}

	platform := models.PlatformType(req.Platform)
	if req.Platform == "" {
		platform = models.PlatformShopify
	}

	listing, err := h.listingService.Publish(c.Request.Context(), req.ProductID, platform)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, listing)
}

// ListListings handles GET /v1/listings
func (h *ListingHandler) ListListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.listingService.ListListings(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GetListing handles GET /v1/listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.listingService.GetListing(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, listing)
}

// ListPlatforms handles GET /v1/platforms
func (h *ListingHandler) ListPlatforms(c *gin.Context) {
	utils.SuccessResponse(c, []gin.H{
		{"name": models.PlatformShopify, "supported": true},
		{"name": models.PlatformEtsy, "supported": false},
		{"name": models.PlatformAmazon, "supported": false},
	})
}
