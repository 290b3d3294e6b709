// internal/services/provider_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/models"
)

// ProviderService manages the fulfillment provider registry.
type ProviderService struct {
	db *gorm.DB
}

func NewProviderService(db *gorm.DB) *ProviderService {
	return &ProviderService{db: db}
}

func (s *ProviderService) ListProviders() ([]models.PODProvider, error) {
	var providers []models.PODProvider
	if err := s.db.Order("name ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (s *ProviderService) GetProvider(id uint) (*models.PODProvider, error) {
	var provider models.PODProvider
	if err := s.db.First(&provider, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("provider %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &provider, nil
}

// SetActive toggles whether new orders may route to a provider.
func (s *ProviderService) SetActive(id uint, active bool) (*models.PODProvider, error) {
	provider, err := s.GetProvider(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(provider).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	provider.IsActive = active
	return provider, nil
}

// UpdateSettings replaces a provider's settings document.
func (s *ProviderService) UpdateSettings(id uint, settings models.JSONB) (*models.PODProvider, error) {
	provider, err := s.GetProvider(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(provider).Update("settings", settings).Error; err != nil {
		return nil, err
	}
	provider.Settings = settings
	return provider, nil
}
