// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// ProductHandler exposes the product catalog and review queue. Status
// filtering happens server-side in SQL; the dashboard never decides what
// "pending" means.
type ProductHandler struct {
	productService *services.ProductService
	listingService *services.ListingService
}

func NewProductHandler(productService *services.ProductService, listingService *services.ListingService) *ProductHandler {
	return &ProductHandler{productService: productService, listingService: listingService}
}

// ListProducts handles GET /v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.productService.ListProducts(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// Pending handles GET /v1/products/pending, the operator review queue.
func (h *ProductHandler) Pending(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.productService.ReviewQueue(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// Approved handles GET /v1/products/approved
func (h *ProductHandler) Approved(c *gin.Context) {
	h.listByStatus(c, models.ProductStatusApproved)
}

// Rejected handles GET /v1/products/rejected
func (h *ProductHandler) Rejected(c *gin.Context) {
	h.listByStatus(c, models.ProductStatusRejected)
}

func (h *ProductHandler) listByStatus(c *gin.Context, status models.ProductStatus) {
	params := utils.GetPaginationParams(c)
	params.Status = string(status)

	result, err := h.productService.ListProducts(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// Pause handles POST /v1/products/:id/pause
func (h *ProductHandler) Pause(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.listingService.Pause(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// Archive handles POST /v1/products/:id/archive
func (h *ProductHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.listingService.Archive(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// Reactivate handles POST /v1/products/:id/reactivate
func (h *ProductHandler) Reactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.listingService.Reactivate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// Stats handles GET /v1/products/stats
func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.productService.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}
