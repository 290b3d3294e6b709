// internal/services/listing_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podworks/pod-backend/internal/models"
)

type stubPublisher struct {
	platform models.PlatformType
	fail     bool
	calls    int
}

func (s *stubPublisher) Platform() models.PlatformType {
	return s.platform
}

func (s *stubPublisher) Publish(ctx context.Context, product *models.Product) (*PublishedListing, error) {
	s.calls++
	if s.fail {
		return nil, fmt.Errorf("%w: stub failure", ErrUpstream)
	}
	return &PublishedListing{
		PlatformProductID: fmt.Sprintf("ext-%d", product.ID),
		URL:               fmt.Sprintf("https://shop.example/products/%d", product.ID),
	}, nil
}

func TestPublishApprovedProduct(t *testing.T) {
	db := newTestDB(t)
	publisher := &stubPublisher{platform: models.PlatformShopify}
	svc := NewListingService(db, publisher)

	product := seedProduct(t, db, models.ProductStatusApproved)

	listing, err := svc.Publish(context.Background(), product.ID, models.PlatformShopify)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ext-%d", product.ID), listing.PlatformProductID)
	assert.Equal(t, models.ListingStatusActive, listing.Status)
	assert.False(t, listing.ListedAt.IsZero())

	// Publishing flips the product to active
	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Equal(t, models.ProductStatusActive, updated.Status)
}

func TestPublishIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	publisher := &stubPublisher{platform: models.PlatformShopify}
	svc := NewListingService(db, publisher)

	product := seedProduct(t, db, models.ProductStatusApproved)

	first, err := svc.Publish(context.Background(), product.ID, models.PlatformShopify)
	require.NoError(t, err)

	// Second publish returns the existing listing without another upstream call
	second, err := svc.Publish(context.Background(), product.ID, models.PlatformShopify)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, publisher.calls)

	var count int64
	db.Model(&models.PlatformListing{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPublishRequiresApproval(t *testing.T) {
	db := newTestDB(t)
	publisher := &stubPublisher{platform: models.PlatformShopify}
	svc := NewListingService(db, publisher)

	for _, status := range []models.ProductStatus{
		models.ProductStatusDraft,
		models.ProductStatusPendingApproval,
		models.ProductStatusRejected,
		models.ProductStatusPaused,
	} {
		product := seedProduct(t, db, status)
		_, err := svc.Publish(context.Background(), product.ID, models.PlatformShopify)
		assert.ErrorIs(t, err, ErrProductNotReady, "status=%s", status)
	}

	assert.Equal(t, 0, publisher.calls)
}

func TestPublishUpstreamFailure(t *testing.T) {
	db := newTestDB(t)
	publisher := &stubPublisher{platform: models.PlatformShopify, fail: true}
	svc := NewListingService(db, publisher)

	product := seedProduct(t, db, models.ProductStatusApproved)

	_, err := svc.Publish(context.Background(), product.ID, models.PlatformShopify)
	assert.ErrorIs(t, err, ErrUpstream)

	// Product stays approved so the publish can be retried
	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Equal(t, models.ProductStatusApproved, updated.Status)

	var count int64
	db.Model(&models.PlatformListing{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPublishUnknownPlatformAndProduct(t *testing.T) {
	db := newTestDB(t)
	publisher := &stubPublisher{platform: models.PlatformShopify}
	svc := NewListingService(db, publisher)

	_, err := svc.Publish(context.Background(), 1, models.PlatformEtsy)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Publish(context.Background(), 99999, models.PlatformShopify)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPauseReactivateArchive(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db, &stubPublisher{platform: models.PlatformShopify})

	product := seedProduct(t, db, models.ProductStatusActive)

	paused, err := svc.Pause(product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusPaused, paused.Status)

	// Pausing twice is a no-op
	paused, err = svc.Pause(product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusPaused, paused.Status)

	reactivated, err := svc.Reactivate(product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusActive, reactivated.Status)

	archived, err := svc.Archive(product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusArchived, archived.Status)

	// Archived is terminal
	_, err = svc.Reactivate(product.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestArchiveRemovesListings(t *testing.T) {
	db := newTestDB(t)
	publisher := &stubPublisher{platform: models.PlatformShopify}
	svc := NewListingService(db, publisher)

	product := seedProduct(t, db, models.ProductStatusApproved)
	_, err := svc.Publish(context.Background(), product.ID, models.PlatformShopify)
	require.NoError(t, err)

	_, err = svc.Archive(product.ID)
	require.NoError(t, err)

	var listing models.PlatformListing
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&listing).Error)
	assert.Equal(t, models.ListingStatusRemoved, listing.Status)
}

func TestPauseRequiresActiveProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db, &stubPublisher{platform: models.PlatformShopify})

	product := seedProduct(t, db, models.ProductStatusPendingApproval)
	_, err := svc.Pause(product.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Pause(99999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
