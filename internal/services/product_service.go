// internal/services/product_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/utils"
)

// ProductService is the read side of the product catalog plus the review
// queue. Status filtering is authoritative here, not in the dashboard.
type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Artwork").Preload("Artwork.Keyword").Preload("Listings").First(&product, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) GetBySKU(sku string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Artwork").Where("sku = ?", sku).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ListProducts filters and paginates the catalog. An invalid status filter is
// rejected rather than silently ignored.
func (s *ProductService) ListProducts(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var products []models.Product
	var total int64

	query := s.db.Model(&models.Product{}).Preload("Artwork")

	if params.Status != "" {
		if !models.ProductStatus(params.Status).IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, params.Status)
		}
		query = query.Where("status = ?", params.Status)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR sku ILIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	allowedSorts := []string{"created_at", "price", "title", "sku", "status"}
	query = utils.ApplySort(query, params, allowedSorts)
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

// ReviewQueue returns products awaiting operator decisions, oldest first so
// nothing starves.
func (s *ProductService) ReviewQueue(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var products []models.Product
	var total int64

	query := s.db.Model(&models.Product{}).
		Preload("Artwork").
		Preload("Artwork.Keyword").
		Where("status = ?", models.ProductStatusPendingApproval)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = query.Order("created_at ASC, id ASC")
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

type ProductStats struct {
	Total    int64                          `json:"total"`
	ByStatus map[models.ProductStatus]int64 `json:"by_status"`
}

func (s *ProductService) Stats() (*ProductStats, error) {
	stats := &ProductStats{ByStatus: map[models.ProductStatus]int64{}}

	if err := s.db.Model(&models.Product{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status models.ProductStatus
		Count  int64
	}
	err := s.db.Model(&models.Product{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}
	return stats, nil
}
