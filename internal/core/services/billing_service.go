package services

import (
	"context"
	"errors"
	"fmt"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/pkg/calendar"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Monthly subscription length limits
const (
	MinSubscriptionMonths = 1
	MaxSubscriptionMonths = 12
	MaxRenewalMonths      = 120
)

// BillingService orchestrates every money-touching member transition.
// Each operation validates first, then applies the member mutation and
// the ledger insert inside one store transaction: if either fails,
// neither is visible.
type BillingService struct {
	db           *gorm.DB
	memberRepo   repositories.MemberRepository
	settingsRepo repositories.SettingsRepository
	promoService *PromoService
	clock        calendar.Clock
}

// NewBillingService creates a new billing service
func NewBillingService(
	db *gorm.DB,
	memberRepo repositories.MemberRepository,
	settingsRepo repositories.SettingsRepository,
	promoService *PromoService,
	clock calendar.Clock,
) *BillingService {
	return &BillingService{
		db:           db,
		memberRepo:   memberRepo,
		settingsRepo: settingsRepo,
		promoService: promoService,
		clock:        clock,
	}
}

// getMember loads a member or returns a typed not-found error.
func (s *BillingService) getMember(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("member not found")
		}
		return nil, domain.Storage(err, "failed to load member")
	}
	return member, nil
}

func (s *BillingService) pricing(ctx context.Context) (*models.PricingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, domain.Storage(err, "failed to load pricing settings")
	}
	return settings, nil
}

// currentStatus derives the member's lifecycle status as of today.
func (s *BillingService) currentStatus(member *models.Member) domain.MemberStatus {
	expiry, err := calendar.Parse(member.MembershipExpiryDate)
	if err != nil {
		return domain.MemberStatus(member.Status)
	}
	return domain.ResolveStatus(expiry, s.clock.Today())
}

// newPayment builds a ledger row dated today.
func (s *BillingService) newPayment(memberID string, amount float64, method domain.PaymentMethod, category domain.PaymentCategory, description string) *models.PaymentRecord {
	return &models.PaymentRecord{
		ID:          uuid.NewString(),
		Date:        calendar.Format(s.clock.Today()),
		Amount:      amount,
		Method:      string(method),
		Category:    string(category),
		Description: description,
		MemberID:    memberID,
	}
}

// commit applies a member mutation and a ledger insert atomically.
func (s *BillingService) commit(ctx context.Context, member *models.Member, payment *models.PaymentRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if member != nil {
			if err := tx.Save(member).Error; err != nil {
				return err
			}
		}
		if payment != nil {
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Storage(err, "failed to commit billing operation")
	}
	return nil
}

// ============================================================
// Lifetime membership fee
// ============================================================

// PayLifetimeFee records the one-time lifetime registration fee.
// Re-paying is rejected, not silently duplicated.
func (s *BillingService) PayLifetimeFee(ctx context.Context, memberID string, method domain.PaymentMethod) (*models.PaymentRecord, error) {
	if !domain.ValidPaymentMethod(method) {
		return nil, domain.Validation("invalid payment method %q", method)
	}

	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.MembershipFeePaid {
		return nil, domain.Conflict("lifetime membership fee already paid")
	}

	settings, err := s.pricing(ctx)
	if err != nil {
		return nil, err
	}

	member.MembershipFeePaid = true
	payment := s.newPayment(member.ID, settings.MembershipFee, method,
		domain.CategoryMembershipFee, "Lifetime membership registration fee")

	if err := s.commit(ctx, member, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ============================================================
// Monthly subscription
// ============================================================

// SubscriptionResult is the outcome of a subscription start or renewal.
type SubscriptionResult struct {
	Member  *models.Member            `json:"member"`
	Payment *models.PaymentRecord     `json:"payment"`
	Bonus   *domain.SubscriptionBonus `json:"bonus,omitempty"`
}

// StartOrRenewMonthlySubscription starts, renews or converts a member to
// a monthly subscription. The clock restarts from today when the member
// is expired or archived; an unexpired monthly subscription extends from
// its current expiry. Promo bonus months extend the expiry but are never
// charged: the payment covers the requested months only.
func (s *BillingService) StartOrRenewMonthlySubscription(ctx context.Context, memberID string, months int, method domain.PaymentMethod) (*SubscriptionResult, error) {
	if months < MinSubscriptionMonths || months > MaxSubscriptionMonths {
		return nil, domain.Validation("months must be between %d and %d", MinSubscriptionMonths, MaxSubscriptionMonths)
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, domain.Validation("invalid payment method %q", method)
	}

	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	settings, err := s.pricing(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	base := today
	status := s.currentStatus(member)
	if status != domain.StatusExpired && status != domain.StatusArchived &&
		member.PaymentType == string(domain.PaymentTypeMonthly) &&
		member.SubscriptionExpiryDate != nil {
		if expiry, err := calendar.Parse(*member.SubscriptionExpiryDate); err == nil && expiry.After(today) {
			base = expiry
		}
	}

	bonus, err := s.promoService.EvaluateBonus(ctx, months)
	if err != nil {
		return nil, err
	}

	freeMonths := 0
	description := fmt.Sprintf("Monthly subscription: %d month(s)", months)
	if bonus != nil {
		freeMonths = bonus.FreeMonths
		description = fmt.Sprintf("Monthly subscription: %d month(s) + %d free (%s)", months, freeMonths, bonus.PromoName)
	}

	newExpiry := calendar.Format(calendar.AddMonths(base, months+freeMonths))

	fee := settings.MonthlySubscriptionFee
	if member.IsStudent {
		fee = settings.StudentMonthlySubscriptionFee
	}

	member.PaymentType = string(domain.PaymentTypeMonthly)
	member.SubscriptionExpiryDate = &newExpiry
	member.PaidMonths = months
	member.FreeMonths = freeMonths
	member.Status = string(domain.StatusActive)
	member.IsActive = true

	// Free months are not charged.
	payment := s.newPayment(member.ID, fee*float64(months), method,
		domain.CategoryMonthlySubscription, description)

	if err := s.commit(ctx, member, payment); err != nil {
		return nil, err
	}

	return &SubscriptionResult{Member: member, Payment: payment, Bonus: bonus}, nil
}

// CancelMonthlySubscription switches a monthly member back to
// per-session. No refund; membership-level status is untouched.
func (s *BillingService) CancelMonthlySubscription(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.PaymentType != string(domain.PaymentTypeMonthly) {
		return nil, domain.Conflict("member has no monthly subscription to cancel")
	}

	member.PaymentType = string(domain.PaymentTypePerSession)
	member.SubscriptionExpiryDate = nil
	member.PaidMonths = 0
	member.FreeMonths = 0

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, domain.Storage(err, "failed to cancel subscription")
	}
	return member, nil
}

// ============================================================
// Per-session charges
// ============================================================

// RecordMemberSession charges a member's single session and bumps the
// per-session counters.
func (s *BillingService) RecordMemberSession(ctx context.Context, memberID string, sessionType domain.SessionType, method domain.PaymentMethod) (*models.PaymentRecord, error) {
	if !domain.ValidSessionType(sessionType) {
		return nil, domain.Validation("invalid session type %q", sessionType)
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, domain.Validation("invalid payment method %q", method)
	}

	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	settings, err := s.pricing(ctx)
	if err != nil {
		return nil, err
	}

	today := calendar.Format(s.clock.Today())
	member.SessionCount++
	member.LastSessionDate = &today

	payment := s.newPayment(member.ID, settings.PerSessionMemberFee, method,
		domain.CategoryMemberSessionFee, fmt.Sprintf("Member session (%s)", sessionType))

	if err := s.commit(ctx, member, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// RecordWalkInSession charges a non-member session. Only a ledger row is
// written; there is no member to mutate.
func (s *BillingService) RecordWalkInSession(ctx context.Context, name string, sessionType domain.SessionType, method domain.PaymentMethod) (*models.PaymentRecord, error) {
	if name == "" {
		return nil, domain.Validation("walk-in name is required")
	}
	if !domain.ValidSessionType(sessionType) {
		return nil, domain.Validation("invalid session type %q", sessionType)
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, domain.Validation("invalid payment method %q", method)
	}

	settings, err := s.pricing(ctx)
	if err != nil {
		return nil, err
	}

	payment := s.newPayment(domain.WalkInLedgerID(name), settings.PerSessionWalkInFee, method,
		domain.CategoryWalkInSessionFee, fmt.Sprintf("Walk-in session (%s)", sessionType))

	if err := s.commit(ctx, nil, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ============================================================
// Lifetime membership window
// ============================================================

// RenewLifetimeMembership extends the lifetime membership window,
// distinct from the monthly subscription. Expired and archived members
// restart from today; everyone else extends from the current expiry.
func (s *BillingService) RenewLifetimeMembership(ctx context.Context, memberID string, months int) (*models.Member, error) {
	if months < 1 || months > MaxRenewalMonths {
		return nil, domain.Validation("months must be between 1 and %d", MaxRenewalMonths)
	}

	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	base := today
	status := s.currentStatus(member)
	if status == domain.StatusExpired || status == domain.StatusArchived {
		member.MembershipStartDate = calendar.Format(today)
	} else if expiry, err := calendar.Parse(member.MembershipExpiryDate); err == nil {
		base = expiry
	}

	member.MembershipExpiryDate = calendar.Format(calendar.AddMonths(base, months))
	member.MembershipDurationMonths = months
	member.Status = string(domain.StatusActive)
	member.IsActive = true

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, domain.Storage(err, "failed to renew membership")
	}
	return member, nil
}

// ============================================================
// Archive / delete
// ============================================================

// ArchiveResult carries the remaining-validity warning for the caller to
// surface before or after an explicit archive.
type ArchiveResult struct {
	Member        *models.Member `json:"member"`
	RemainingDays int            `json:"remaining_days"`
}

// ArchiveMember is the explicit operator archive: allowed even with time
// remaining, which is why the remaining days are reported back.
func (s *BillingService) ArchiveMember(ctx context.Context, memberID string) (*ArchiveResult, error) {
	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	remaining := 0
	if expiry, err := calendar.Parse(member.MembershipExpiryDate); err == nil {
		if d := calendar.DaysUntil(expiry, s.clock.Today()); d > 0 {
			remaining = d
		}
	}

	member.Status = string(domain.StatusArchived)
	member.IsActive = false

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, domain.Storage(err, "failed to archive member")
	}
	return &ArchiveResult{Member: member, RemainingDays: remaining}, nil
}

// DeleteMember permanently removes the member row. Payment and
// attendance history referencing the ID are deliberately preserved: the
// ledger must never lose entries to a member deletion.
func (s *BillingService) DeleteMember(ctx context.Context, memberID string) error {
	if _, err := s.getMember(ctx, memberID); err != nil {
		return err
	}
	if err := s.memberRepo.Delete(ctx, memberID); err != nil {
		return domain.Storage(err, "failed to delete member")
	}
	return nil
}
