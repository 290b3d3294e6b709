// internal/models/listing.go
package models

import "time"

// PlatformListing records a product's published representation on an external
// marketplace. The (product_id, platform) unique index is the correctness
// anchor for concurrent publish requests.
type PlatformListing struct {
	BaseModel
	ProductID         uint          `json:"product_id" gorm:"not null;uniqueIndex:idx_listings_product_platform"`
	Platform          PlatformType  `json:"platform" gorm:"type:varchar(20);not null;uniqueIndex:idx_listings_product_platform"`
	PlatformProductID string        `json:"platform_product_id" gorm:"size:128"`
	URL               string        `json:"url" gorm:"size:1024"`
	Status            ListingStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	ListedAt          time.Time     `json:"listed_at"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
