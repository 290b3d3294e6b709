// internal/models/provider.go
package models

// PODProvider is a fulfillment provider registry entry.
type PODProvider struct {
	BaseModel
	Name     FulfillmentProvider `json:"name" gorm:"type:varchar(20);not null;uniqueIndex"`
	APIBase  string              `json:"api_base" gorm:"size:255"`
	IsActive bool                `json:"is_active" gorm:"default:true"`
	Settings JSONB               `json:"settings,omitempty" gorm:"type:jsonb"`
}
