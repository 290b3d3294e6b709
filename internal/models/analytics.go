// internal/models/analytics.go
package models

import "time"

// AnalyticsDaily is a per-product per-day rollup written by the nightly
// aggregation job. Unique on (product_id, date) so re-running the rollup
// upserts instead of duplicating.
type AnalyticsDaily struct {
	BaseModel
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_analytics_product_date"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_analytics_product_date"`
	Views     int       `json:"views" gorm:"default:0"`
	Clicks    int       `json:"clicks" gorm:"default:0"`
	Orders    int       `json:"orders" gorm:"default:0"`
	Revenue   float64   `json:"revenue" gorm:"type:decimal(10,2);default:0"`
	Profit    float64   `json:"profit" gorm:"type:decimal(10,2);default:0"`
}
