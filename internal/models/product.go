// internal/models/product.go
package models

import "github.com/lib/pq"

// Product is a sellable SKU built from one artwork plus pricing/metadata.
// Status is mutated only by the review step and the listing publisher.
type Product struct {
	BaseModel
	SKU          string         `json:"sku" gorm:"size:64;not null;uniqueIndex"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	ArtworkID    uint           `json:"artwork_id" gorm:"not null;uniqueIndex;constraint:OnDelete:RESTRICT"`
	Status       ProductStatus  `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Category     string         `json:"category" gorm:"size:100;index"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	CanvasFormat string         `json:"canvas_format" gorm:"size:20;default:'single'"`
	Dimensions   string         `json:"dimensions" gorm:"size:20"`
	DesignNumber int            `json:"design_number" gorm:"default:1"`

	Artwork  Artwork           `json:"artwork,omitempty" gorm:"foreignKey:ArtworkID"`
	Listings []PlatformListing `json:"listings,omitempty" gorm:"foreignKey:ProductID"`
	Feedback []ProductFeedback `json:"feedback,omitempty" gorm:"foreignKey:ProductID"`
}
