// internal/database/seed.go
package database

import (
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/models"
)

// SeedInitialData loads the provider registry and a handful of sample
// keywords/products. Safe to re-run; skips anything already present.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	providers := []models.PODProvider{
		{Name: models.ProviderPrintful, APIBase: "https://api.printful.com", IsActive: true},
		{Name: models.ProviderPrintify, APIBase: "https://api.printify.com/v1", IsActive: true},
	}

	for _, provider := range providers {
		var count int64
		db.Model(&models.PODProvider{}).Where("name = ?", provider.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&provider).Error; err != nil {
				log.Printf("Warning: Failed to seed provider %s: %v", provider.Name, err)
			}
		}
	}

	var keywordCount int64
	db.Model(&models.Keyword{}).Count(&keywordCount)
	if keywordCount > 0 {
		log.Printf("Database already has %d keywords, skipping sample data", keywordCount)
		return nil
	}

	keywords := []models.Keyword{
		{Text: "vintage posters", Region: "GB", SearchVolume: 15000, TrendScore: 8.5, Category: "home-decor", DesignsAllocated: 50},
		{Text: "minimalist art", Region: "GB", SearchVolume: 12000, TrendScore: 7.8, Category: "wall-art", DesignsAllocated: 50},
		{Text: "nature photography", Region: "GB", SearchVolume: 18000, TrendScore: 9.2, Category: "photography", DesignsAllocated: 50},
		{Text: "abstract canvas", Region: "GB", SearchVolume: 9500, TrendScore: 6.5, Category: "wall-art", DesignsAllocated: 30},
		{Text: "motivational quotes", Region: "GB", SearchVolume: 22000, TrendScore: 8.9, Category: "typography", DesignsAllocated: 75},
	}

	if err := db.Create(&keywords).Error; err != nil {
		return err
	}

	artwork := models.Artwork{
		KeywordID:    keywords[0].ID,
		Prompt:       "Beautiful vintage style canvas wall art with the theme 'vintage posters', aged texture, muted tones, nostalgic feel",
		Provider:     "black-forest-labs/flux-1.1-pro",
		Style:        "vintage",
		ImageURL:     "https://example.invalid/artwork/sample.png",
		StorageKey:   "artwork/sample.png",
		Cost:         0.04,
		QualityScore: 8.0,
		Status:       models.ArtworkStatusReady,
	}
	if err := db.Create(&artwork).Error; err != nil {
		return err
	}

	product := models.Product{
		SKU:         "POD-2024-SAMPLE1",
		Title:       "Vintage London Travel Poster",
		Description: "Beautiful vintage-style travel poster",
		Price:       29.99,
		ArtworkID:   artwork.ID,
		Status:      models.ProductStatusPendingApproval,
		Category:    "posters",
		Tags:        pq.StringArray{"vintage", "travel", "london"},
		Dimensions:  "16x20",
	}
	if err := db.Create(&product).Error; err != nil {
		return err
	}

	log.Println("Initial data seeding completed")
	return nil
}
