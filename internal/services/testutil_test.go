// internal/services/testutil_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Keyword{},
		&models.Artwork{},
		&models.Product{},
		&models.PlatformListing{},
		&models.ProductFeedback{},
		&models.Order{},
		&models.AnalyticsDaily{},
		&models.PODProvider{},
	)
	require.NoError(t, err)

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Generation: config.GenerationConfig{
			StylesPerKeyword: 8,
			BatchLimit:       10,
			MinTrendScore:    6.0,
		},
		Shopify: config.ShopifyConfig{
			APIVersion: "2024-01",
			Vendor:     "POD Platform",
		},
	}
}

func seedKeyword(t *testing.T, db *gorm.DB, text string, volume, allocated int) *models.Keyword {
	t.Helper()

	keyword := &models.Keyword{
		Text:             text,
		Region:           "GB",
		SearchVolume:     volume,
		TrendScore:       7.5,
		Category:         "wall-art",
		DesignsAllocated: allocated,
		Status:           models.KeywordStatusActive,
	}
	require.NoError(t, db.Create(keyword).Error)
	return keyword
}

func seedProduct(t *testing.T, db *gorm.DB, status models.ProductStatus) *models.Product {
	t.Helper()

	keyword := seedKeyword(t, db, "test keyword "+uuid.NewString(), 10000, 50)

	artwork := &models.Artwork{
		KeywordID:  keyword.ID,
		Prompt:     "test prompt",
		Provider:   "black-forest-labs/flux-dev",
		Style:      "minimalist",
		ImageURL:   "https://example.invalid/test.png",
		StorageKey: "artwork/test.png",
		Cost:       0.03,
		Status:     models.ArtworkStatusReady,
	}
	require.NoError(t, db.Create(artwork).Error)

	product := &models.Product{
		SKU:        GenerateSKU(),
		Title:      "Test Product",
		Price:      49.99,
		ArtworkID:  artwork.ID,
		Status:     status,
		Category:   "wall-art",
		Dimensions: "18x24",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
