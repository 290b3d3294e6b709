// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// OrderHandler exposes the ingested order stream.
type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders handles GET /v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.orderService.ListOrders(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// IngestOrder handles POST /v1/orders
func (h *OrderHandler) IngestOrder(c *gin.Context) {
	var req services.OrderIngest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid order payload", err.Error())
		return
	}

	order, err := h.orderService.IngestOrder(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "status is required", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(id, models.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
