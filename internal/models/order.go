// internal/models/order.go
package models

// Order is a marketplace order ingested from platform webhooks or polling.
// The pipeline only reads orders for analytics; fulfillment is driven by the
// external POD provider.
type Order struct {
	BaseModel
	PlatformOrderID   string              `json:"platform_order_id" gorm:"size:128;not null;uniqueIndex"`
	Platform          PlatformType        `json:"platform" gorm:"type:varchar(20);not null;index"`
	ProductID         uint                `json:"product_id" gorm:"not null;index"`
	CustomerData      JSONB               `json:"customer_data,omitempty" gorm:"type:jsonb"`
	OrderValue        float64             `json:"order_value" gorm:"type:decimal(10,2);default:0"`
	Profit            float64             `json:"profit" gorm:"type:decimal(10,2);default:0"`
	Provider          FulfillmentProvider `json:"fulfillment_provider" gorm:"type:varchar(20)"`
	FulfillmentStatus string              `json:"fulfillment_status" gorm:"size:20;default:'pending'"`
	Status            OrderStatus         `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
