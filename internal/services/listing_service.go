// internal/services/listing_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/metrics"
	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/utils"
)

// ListingService publishes approved products to marketplaces and manages the
// post-listing lifecycle (pause, reactivate, archive). Publishers are keyed
// by platform so additional marketplaces slot in without touching the flow.
type ListingService struct {
	db         *gorm.DB
	publishers map[models.PlatformType]MarketplacePublisher
}

func NewListingService(db *gorm.DB, publishers ...MarketplacePublisher) *ListingService {
	byPlatform := make(map[models.PlatformType]MarketplacePublisher, len(publishers))
	for _, p := range publishers {
		byPlatform[p.Platform()] = p
	}
	return &ListingService{db: db, publishers: byPlatform}
}

// Publish lists an approved product on the given platform. Publishing an
// already-listed product returns the existing listing as an idempotent
// success. Only approved products may be published; upstream failures leave
// the product approved so the publish can be retried.
func (s *ListingService) Publish(ctx context.Context, productID uint, platform models.PlatformType) (*models.PlatformListing, error) {
	publisher, ok := s.publishers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported platform %q", ErrInvalidArgument, platform)
	}

	var product models.Product
	err := s.db.Preload("Artwork").First(&product, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var existing models.PlatformListing
	err = s.db.Where("product_id = ? AND platform = ?", productID, platform).First(&existing).Error
	if err == nil {
		logrus.WithFields(logrus.Fields{
			"product_id": productID,
			"platform":   platform,
		}).Info("Product already listed, returning existing listing")
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if product.Status != models.ProductStatusApproved {
		return nil, fmt.Errorf("%w: product %d is %s", ErrProductNotReady, productID, product.Status)
	}

	published, err := publisher.Publish(ctx, &product)
	if err != nil {
		metrics.ListingsFailedTotal.WithLabelValues(string(platform), "upstream").Inc()
		return nil, err
	}

	listing := models.PlatformListing{
		ProductID:         product.ID,
		Platform:          platform,
		PlatformProductID: published.PlatformProductID,
		URL:               published.URL,
		Status:            models.ListingStatusActive,
		ListedAt:          time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}
		return tx.Model(&product).Update("status", models.ProductStatusActive).Error
	})
	if err != nil {
		// The unique index on (product_id, platform) closes the race between
		// concurrent publishes; the loser lands here.
		var winner models.PlatformListing
		if lookupErr := s.db.Where("product_id = ? AND platform = ?", productID, platform).First(&winner).Error; lookupErr == nil {
			return &winner, nil
		}
		return nil, err
	}

	metrics.ListingsPublishedTotal.WithLabelValues(string(platform)).Inc()

	logrus.WithFields(logrus.Fields{
		"product_id":          product.ID,
		"platform":            platform,
		"platform_product_id": published.PlatformProductID,
	}).Info("Product listed")

	return &listing, nil
}

// Pause moves an active product to paused without touching its listings.
func (s *ListingService) Pause(productID uint) (*models.Product, error) {
	return s.transitionProduct(productID, models.ProductStatusPaused)
}

// Reactivate moves a paused product back to active.
func (s *ListingService) Reactivate(productID uint) (*models.Product, error) {
	return s.transitionProduct(productID, models.ProductStatusActive)
}

// Archive retires a product permanently and marks its listings removed.
func (s *ListingService) Archive(productID uint) (*models.Product, error) {
	product, err := s.transitionProduct(productID, models.ProductStatusArchived)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.PlatformListing{}).
		Where("product_id = ?", productID).
		Update("status", models.ListingStatusRemoved).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ListingService) transitionProduct(productID uint, target models.ProductStatus) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if product.Status == target {
		return &product, nil
	}
	if !product.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, product.Status, target)
	}

	if err := s.db.Model(&product).Update("status", target).Error; err != nil {
		return nil, err
	}
	product.Status = target
	return &product, nil
}

func (s *ListingService) ListListings(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var listings []models.PlatformListing
	var total int64

	query := s.db.Model(&models.PlatformListing{}).Preload("Product")
	if params.Platform != "" {
		query = query.Where("platform = ?", params.Platform)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	allowedSorts := []string{"created_at", "listed_at", "platform"}
	query = utils.ApplySort(query, params, allowedSorts)
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}

	result := utils.CreatePaginationResult(listings, total, params)
	return &result, nil
}

func (s *ListingService) GetListing(id uint) (*models.PlatformListing, error) {
	var listing models.PlatformListing
	if err := s.db.Preload("Product").First(&listing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("listing %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &listing, nil
}
