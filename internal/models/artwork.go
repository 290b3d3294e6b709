// internal/models/artwork.go
package models

// Artwork is one AI-generated image tied to a keyword and style. Each artwork
// is owned by exactly one keyword and referenced by at most one product; the
// product FK restricts artwork deletion.
type Artwork struct {
	BaseModel
	KeywordID    uint          `json:"keyword_id" gorm:"not null;index"`
	Prompt       string        `json:"prompt" gorm:"type:text;not null"`
	Provider     string        `json:"provider" gorm:"size:100;index"`
	Style        string        `json:"style" gorm:"size:50;index"`
	ImageURL     string        `json:"image_url" gorm:"size:1024"`
	StorageKey   string        `json:"storage_key" gorm:"size:512"`
	Cost         float64       `json:"cost" gorm:"type:decimal(8,4);default:0"`
	QualityScore float64       `json:"quality_score" gorm:"type:decimal(4,2);default:0"`
	Status       ArtworkStatus `json:"status" gorm:"type:varchar(20);default:'generating';index"`

	Keyword Keyword `json:"keyword,omitempty" gorm:"foreignKey:KeywordID"`
}
