package services

import (
	"context"
	"log"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
)

// SettingsService handles pricing settings business logic
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// UpdateSettingsInput represents pricing settings update input. Only
// supplied fields are changed.
type UpdateSettingsInput struct {
	MembershipFee                 *float64 `json:"membership_fee,omitempty"`
	MonthlySubscriptionFee        *float64 `json:"monthly_subscription_fee,omitempty"`
	StudentMonthlySubscriptionFee *float64 `json:"student_monthly_subscription_fee,omitempty"`
	PerSessionMemberFee           *float64 `json:"per_session_member_fee,omitempty"`
	PerSessionWalkInFee           *float64 `json:"per_session_walk_in_fee,omitempty"`
}

// Get returns the current pricing settings
func (s *SettingsService) Get(ctx context.Context) (*models.PricingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, domain.Storage(err, "failed to load settings")
	}
	return settings, nil
}

// Update applies fee changes. Fees already charged are not restated,
// new fees apply from the next charge onward.
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*models.PricingSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		value  *float64
		target *float64
	}{
		{input.MembershipFee, &settings.MembershipFee},
		{input.MonthlySubscriptionFee, &settings.MonthlySubscriptionFee},
		{input.StudentMonthlySubscriptionFee, &settings.StudentMonthlySubscriptionFee},
		{input.PerSessionMemberFee, &settings.PerSessionMemberFee},
		{input.PerSessionWalkInFee, &settings.PerSessionWalkInFee},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if *f.value < 0 {
			return nil, domain.Validation("fees cannot be negative")
		}
		*f.target = *f.value
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, domain.Storage(err, "failed to update settings")
	}

	log.Printf("✅ Pricing settings updated")
	return settings, nil
}
