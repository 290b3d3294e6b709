// internal/models/keyword.go
package models

import "time"

// Keyword is a candidate search term driving artwork generation. Keywords are
// never hard-deleted, only paused.
type Keyword struct {
	BaseModel
	Text             string        `json:"text" gorm:"size:255;not null;uniqueIndex:idx_keywords_text_region"`
	Region           string        `json:"region" gorm:"size:8;not null;default:'GB';uniqueIndex:idx_keywords_text_region"`
	SearchVolume     int           `json:"search_volume" gorm:"default:0"`
	TrendScore       float64       `json:"trend_score" gorm:"type:decimal(4,2);default:5.0"`
	Category         string        `json:"category" gorm:"size:100;index;default:'general'"`
	DesignsAllocated int           `json:"designs_allocated" gorm:"default:0"`
	DesignsGenerated int           `json:"designs_generated" gorm:"default:0"`
	Status           KeywordStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`
	LastGeneratedAt  *time.Time    `json:"last_generated_at,omitempty"`

	Artworks []Artwork `json:"artworks,omitempty" gorm:"foreignKey:KeywordID"`
}

// Remaining is the number of designs still owed to this keyword.
func (k *Keyword) Remaining() int {
	r := k.DesignsAllocated - k.DesignsGenerated
	if r < 0 {
		return 0
	}
	return r
}
