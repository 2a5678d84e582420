package services

import (
	"context"
	"errors"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"

	"gorm.io/gorm"
)

// PromoService manages month-bonus promos and evaluates them at
// subscription time. The evaluator is read-only: bonuses already granted
// are never retroactively changed when promos are edited later.
type PromoService struct {
	promoRepo repositories.PromoRepository
}

// NewPromoService creates a new promo service
func NewPromoService(promoRepo repositories.PromoRepository) *PromoService {
	return &PromoService{promoRepo: promoRepo}
}

// BestPromo selects the promo that applies to a requested subscription
// length: active, minMonths <= requested, and among those the highest
// minMonths tier — a member booking 6 months gets the 6-month promo, not
// an arbitrary qualifying one. Ties on minMonths break toward the larger
// bonus, then the lower ID, so selection is deterministic.
func BestPromo(promos []*models.Promo, requestedMonths int) *models.Promo {
	var best *models.Promo
	for _, p := range promos {
		if !p.IsActive || p.MinMonths > requestedMonths {
			continue
		}
		if best == nil ||
			p.MinMonths > best.MinMonths ||
			(p.MinMonths == best.MinMonths && p.FreeMonths > best.FreeMonths) ||
			(p.MinMonths == best.MinMonths && p.FreeMonths == best.FreeMonths && p.ID < best.ID) {
			best = p
		}
	}
	return best
}

// EvaluateBonus applies the promo state as of this moment to a requested
// subscription length. Returns nil when no promo qualifies.
func (s *PromoService) EvaluateBonus(ctx context.Context, requestedMonths int) (*domain.SubscriptionBonus, error) {
	promos, err := s.promoRepo.ListActive(ctx)
	if err != nil {
		return nil, domain.Storage(err, "failed to load promos")
	}

	best := BestPromo(promos, requestedMonths)
	if best == nil {
		return nil, nil
	}

	return &domain.SubscriptionBonus{
		PaidMonths: requestedMonths,
		FreeMonths: best.FreeMonths,
		PromoName:  best.Name,
	}, nil
}

// PromoInput represents create/update promo input
type PromoInput struct {
	Name       string `json:"name" validate:"required"`
	MinMonths  int    `json:"min_months" validate:"required,min=1"`
	FreeMonths int    `json:"free_months" validate:"required,min=1"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// List lists all promos
func (s *PromoService) List(ctx context.Context) ([]*models.Promo, error) {
	promos, err := s.promoRepo.List(ctx)
	if err != nil {
		return nil, domain.Storage(err, "failed to list promos")
	}
	return promos, nil
}

// Get gets a promo by ID
func (s *PromoService) Get(ctx context.Context, id uint) (*models.Promo, error) {
	promo, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("promo not found")
		}
		return nil, domain.Storage(err, "failed to load promo")
	}
	return promo, nil
}

// Create creates a new promo
func (s *PromoService) Create(ctx context.Context, input *PromoInput) (*models.Promo, error) {
	if err := validatePromoInput(input); err != nil {
		return nil, err
	}

	promo := &models.Promo{
		Name:       input.Name,
		MinMonths:  input.MinMonths,
		FreeMonths: input.FreeMonths,
		IsActive:   true,
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, domain.Storage(err, "failed to create promo")
	}
	return promo, nil
}

// Update updates a promo
func (s *PromoService) Update(ctx context.Context, id uint, input *PromoInput) (*models.Promo, error) {
	if err := validatePromoInput(input); err != nil {
		return nil, err
	}

	promo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	promo.Name = input.Name
	promo.MinMonths = input.MinMonths
	promo.FreeMonths = input.FreeMonths
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}

	if err := s.promoRepo.Update(ctx, promo); err != nil {
		return nil, domain.Storage(err, "failed to update promo")
	}
	return promo, nil
}

// Delete removes a promo
func (s *PromoService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.promoRepo.Delete(ctx, id); err != nil {
		return domain.Storage(err, "failed to delete promo")
	}
	return nil
}

func validatePromoInput(input *PromoInput) error {
	if input.Name == "" {
		return domain.Validation("promo name is required")
	}
	if input.MinMonths < 1 {
		return domain.Validation("min_months must be at least 1")
	}
	if input.FreeMonths < 1 {
		return domain.Validation("free_months must be at least 1")
	}
	return nil
}
