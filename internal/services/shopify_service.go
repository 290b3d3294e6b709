// internal/services/shopify_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/models"
)

// MarketplacePublisher creates a remote listing for a product. Satisfied by
// ShopifyService; tests substitute a stub.
type MarketplacePublisher interface {
	Publish(ctx context.Context, product *models.Product) (*PublishedListing, error)
	Platform() models.PlatformType
}

type PublishedListing struct {
	PlatformProductID string `json:"platform_product_id"`
	URL               string `json:"url"`
}

// ShopifyService pushes approved products to the Shopify Admin API. Products
// are created as drafts so the merchant controls storefront visibility.
type ShopifyService struct {
	httpClient *http.Client
	config     *config.Config
}

func NewShopifyService(cfg *config.Config) *ShopifyService {
	return &ShopifyService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     cfg,
	}
}

func (s *ShopifyService) Platform() models.PlatformType {
	return models.PlatformShopify
}

type shopifyProductPayload struct {
	Product shopifyProduct `json:"product"`
}

type shopifyProduct struct {
	ID          int64            `json:"id,omitempty"`
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Status      string           `json:"status"`
	Variants    []shopifyVariant `json:"variants"`
	Images      []shopifyImage   `json:"images,omitempty"`
}

type shopifyVariant struct {
	Price               string  `json:"price"`
	SKU                 string  `json:"sku"`
	InventoryManagement *string `json:"inventory_management"`
}

type shopifyImage struct {
	Src string `json:"src"`
}

// BuildPayload assembles the Shopify product body from a product and its
// preloaded artwork.
func (s *ShopifyService) BuildPayload(product *models.Product) shopifyProductPayload {
	title := product.Title
	if title == "" {
		title = fmt.Sprintf("Design %s", product.SKU)
	}

	description := product.Description
	if description == "" {
		description = "Premium quality canvas wall art"
	}

	payload := shopifyProductPayload{
		Product: shopifyProduct{
			Title:       title,
			BodyHTML:    description,
			Vendor:      s.config.Shopify.Vendor,
			ProductType: "Canvas Wall Art",
			Status:      "draft",
			Variants: []shopifyVariant{{
				Price:               fmt.Sprintf("%.2f", product.Price),
				SKU:                 product.SKU,
				InventoryManagement: nil,
			}},
		},
	}

	if product.Artwork.ImageURL != "" {
		payload.Product.Images = []shopifyImage{{Src: product.Artwork.ImageURL}}
	}

	return payload
}

func (s *ShopifyService) Publish(ctx context.Context, product *models.Product) (*PublishedListing, error) {
	if s.config.Shopify.ShopURL == "" || s.config.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("%w: shopify credentials not configured", ErrUpstream)
	}

	body, err := json.Marshal(s.BuildPayload(product))
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/products.json",
		s.config.Shopify.ShopURL, s.config.Shopify.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", s.config.Shopify.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(raw),
		}).Error("Shopify upload failed")
		return nil, fmt.Errorf("%w: shopify returned HTTP %d", ErrUpstream, resp.StatusCode)
	}

	var created shopifyProductPayload
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: failed to decode shopify response: %v", ErrUpstream, err)
	}

	platformID := fmt.Sprintf("%d", created.Product.ID)

	return &PublishedListing{
		PlatformProductID: platformID,
		URL:               fmt.Sprintf("https://%s/admin/products/%s", s.config.Shopify.ShopURL, platformID),
	}, nil
}
