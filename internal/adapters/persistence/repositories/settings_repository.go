package repositories

import (
	"context"
	"errors"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// settingsRepository implements SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the pricing settings singleton, creating it with defaults
// when absent.
func (r *settingsRepository) Get(ctx context.Context) (*models.PricingSettings, error) {
	var settings models.PricingSettings
	err := r.db.WithContext(ctx).First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultPricingSettings()
		if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update saves the pricing settings singleton
func (r *settingsRepository) Update(ctx context.Context, settings *models.PricingSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
