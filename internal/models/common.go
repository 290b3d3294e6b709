// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type KeywordStatus string

const (
	KeywordStatusActive    KeywordStatus = "active"
	KeywordStatusPaused    KeywordStatus = "paused"
	KeywordStatusExhausted KeywordStatus = "exhausted"
)

type ArtworkStatus string

const (
	ArtworkStatusGenerating ArtworkStatus = "generating"
	ArtworkStatusReady      ArtworkStatus = "ready"
	ArtworkStatusFailed     ArtworkStatus = "failed"
	ArtworkStatusDeleted    ArtworkStatus = "deleted"
)

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusRemoved ListingStatus = "removed"
)

type PlatformType string

const (
	PlatformShopify PlatformType = "shopify"
	PlatformEtsy    PlatformType = "etsy"
	PlatformAmazon  PlatformType = "amazon"
)

type FulfillmentProvider string

const (
	ProviderPrintful FulfillmentProvider = "printful"
	ProviderPrintify FulfillmentProvider = "printify"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusFulfilled  OrderStatus = "fulfilled"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)
