// internal/services/order_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/utils"
)

// OrderService ingests marketplace orders for analytics. Fulfillment itself
// happens at the POD provider; this side only records outcomes.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderIngest struct {
	PlatformOrderID   string       `json:"platform_order_id" binding:"required"`
	Platform          string       `json:"platform" binding:"required"`
	ProductID         uint         `json:"product_id" binding:"required"`
	OrderValue        float64      `json:"order_value"`
	Profit            float64      `json:"profit"`
	Provider          string       `json:"fulfillment_provider"`
	CustomerData      models.JSONB `json:"customer_data"`
	FulfillmentStatus string       `json:"fulfillment_status"`
}

// IngestOrder records one marketplace order. Replays of the same platform
// order ID return the stored row unchanged.
func (s *OrderService) IngestOrder(ingest OrderIngest) (*models.Order, error) {
	if ingest.OrderValue < 0 {
		return nil, fmt.Errorf("%w: order value must be non-negative", ErrInvalidArgument)
	}

	var product models.Product
	if err := s.db.First(&product, ingest.ProductID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var existing models.Order
	err := s.db.Where("platform_order_id = ?", ingest.PlatformOrderID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	fulfillment := ingest.FulfillmentStatus
	if fulfillment == "" {
		fulfillment = "pending"
	}

	order := models.Order{
		PlatformOrderID:   ingest.PlatformOrderID,
		Platform:          models.PlatformType(ingest.Platform),
		ProductID:         ingest.ProductID,
		CustomerData:      ingest.CustomerData,
		OrderValue:        ingest.OrderValue,
		Profit:            ingest.Profit,
		Provider:          models.FulfillmentProvider(ingest.Provider),
		FulfillmentStatus: fulfillment,
		Status:            models.OrderStatusPending,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Product").First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) ListOrders(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var orders []models.Order
	var total int64

	query := s.db.Model(&models.Order{}).Preload("Product")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Platform != "" {
		query = query.Where("platform = ?", params.Platform)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	allowedSorts := []string{"created_at", "order_value", "status"}
	query = utils.ApplySort(query, params, allowedSorts)
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// UpdateStatus moves an order along its fulfillment lifecycle.
func (s *OrderService) UpdateStatus(id uint, status models.OrderStatus) (*models.Order, error) {
	switch status {
	case models.OrderStatusPending, models.OrderStatusProcessing, models.OrderStatusFulfilled,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidArgument, status)
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
