package repositories

import (
	"context"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// promoRepository implements PromoRepository interface
type promoRepository struct {
	db *gorm.DB
}

// NewPromoRepository creates a new promo repository
func NewPromoRepository(db *gorm.DB) PromoRepository {
	return &promoRepository{db: db}
}

// Create creates a new promo
func (r *promoRepository) Create(ctx context.Context, promo *models.Promo) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

// GetByID gets a promo by ID
func (r *promoRepository) GetByID(ctx context.Context, id uint) (*models.Promo, error) {
	var promo models.Promo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// Update saves a promo
func (r *promoRepository) Update(ctx context.Context, promo *models.Promo) error {
	return r.db.WithContext(ctx).Save(promo).Error
}

// Delete removes a promo
func (r *promoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Promo{}).Error
}

// List lists all promos
func (r *promoRepository) List(ctx context.Context) ([]*models.Promo, error) {
	var promos []*models.Promo
	err := r.db.WithContext(ctx).Order("min_months ASC").Find(&promos).Error
	if err != nil {
		return nil, err
	}
	return promos, nil
}

// ListActive lists active promos only
func (r *promoRepository) ListActive(ctx context.Context) ([]*models.Promo, error) {
	var promos []*models.Promo
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("min_months ASC").Find(&promos).Error
	if err != nil {
		return nil, err
	}
	return promos, nil
}
