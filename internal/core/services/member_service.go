package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/pkg/calendar"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// memberIDPrefix is the fixed prefix of member IDs. The full ID doubles
// as the QR/barcode payload and the default invite code, so the format
// must stay stable.
const memberIDPrefix = "GM"

// MemberService handles member registration, lookup, status
// reconciliation and the referral tracker.
type MemberService struct {
	db         *gorm.DB
	memberRepo repositories.MemberRepository
	clock      calendar.Clock
	notify     *NotifyService
	validate   *validator.Validate
}

// NewMemberService creates a new member service
func NewMemberService(db *gorm.DB, memberRepo repositories.MemberRepository, clock calendar.Clock, notify *NotifyService) *MemberService {
	return &MemberService{
		db:         db,
		memberRepo: memberRepo,
		clock:      clock,
		notify:     notify,
		validate:   validator.New(),
	}
}

// CreateMemberInput represents member registration input
type CreateMemberInput struct {
	FullName           string `json:"full_name" validate:"required"`
	Email              string `json:"email" validate:"omitempty,email"`
	Phone              string `json:"phone"`
	IsStudent          bool   `json:"is_student"`
	MembershipDuration string `json:"membership_duration" validate:"required"`
	PaymentType        string `json:"payment_type"`
	ReferredBy         string `json:"referred_by,omitempty"`
	PhotoDataURL       string `json:"photo_data_url,omitempty"`
}

// Create registers a new member. The membership window starts today; the
// referral counter of the inviter is incremented in the same transaction
// as the member insert.
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.Validation("invalid member input: %v", err)
	}

	duration := domain.MembershipDuration(input.MembershipDuration)
	months, ok := duration.Months()
	if !ok {
		return nil, domain.Validation("invalid membership duration %q", input.MembershipDuration)
	}

	paymentType := domain.PaymentType(input.PaymentType)
	if input.PaymentType == "" {
		paymentType = domain.PaymentTypePerSession
	}
	if paymentType != domain.PaymentTypeMonthly && paymentType != domain.PaymentTypePerSession {
		return nil, domain.Validation("payment type must be monthly or per_session")
	}

	id, err := s.nextMemberID(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	member := &models.Member{
		ID:                       id,
		FullName:                 input.FullName,
		Email:                    input.Email,
		Phone:                    input.Phone,
		IsStudent:                input.IsStudent,
		MembershipStartDate:      calendar.Format(today),
		MembershipExpiryDate:     calendar.Format(calendar.AddMonths(today, months)),
		MembershipDurationMonths: months,
		MembershipDuration:       string(duration),
		PaymentType:              string(paymentType),
		Status:                   string(domain.StatusActive),
		IsActive:                 true,
		InviteCode:               id,
		PhotoDataURL:             input.PhotoDataURL,
	}

	// Resolve inviter outside the transaction; an unknown code means no
	// referral is registered, not a failure.
	var inviter *models.Member
	if input.ReferredBy != "" {
		inviter, err = s.memberRepo.GetByInviteCode(ctx, input.ReferredBy)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Storage(err, "failed to resolve invite code")
		}
		if inviter != nil {
			member.ReferredBy = &inviter.InviteCode
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		if inviter != nil {
			return tx.Model(&models.Member{}).
				Where("id = ?", inviter.ID).
				UpdateColumn("invite_count", gorm.Expr("invite_count + 1")).Error
		}
		return nil
	})
	if err != nil {
		return nil, domain.Storage(err, "failed to create member")
	}

	return member, nil
}

// nextMemberID derives a unique ID from the creation timestamp.
func (s *MemberService) nextMemberID(ctx context.Context) (string, error) {
	suffix := s.clock.Now().UnixMilli()
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("%s%d", memberIDPrefix, suffix)
		exists, err := s.memberRepo.ExistsByID(ctx, id)
		if err != nil {
			return "", domain.Storage(err, "failed to check member ID")
		}
		if !exists {
			return id, nil
		}
		suffix++
	}
	return "", domain.Storage(nil, "could not allocate a member ID")
}

// Get gets a member by ID with its status reconciled
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("member not found")
		}
		return nil, domain.Storage(err, "failed to load member")
	}
	s.reconcileOne(ctx, member)
	return member, nil
}

// ListOutput represents a reconciled member page
type ListOutput struct {
	Members []*models.Member `json:"members"`
	Total   int64            `json:"total"`
}

// List lists members with their statuses reconciled. Reconciliation
// write failures are logged but never block the read: a dashboard should
// not hard-fail because one background status write failed.
func (s *MemberService) List(ctx context.Context, offset, limit int, search string) (*ListOutput, error) {
	members, total, err := s.memberRepo.List(ctx, offset, limit, search)
	if err != nil {
		return nil, domain.Storage(err, "failed to list members")
	}

	for _, member := range members {
		s.reconcileOne(ctx, member)
	}

	return &ListOutput{Members: members, Total: total}, nil
}

// UpdateMemberInput represents member profile update input
type UpdateMemberInput struct {
	FullName       *string `json:"full_name,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty"`
	IsStudent      *bool   `json:"is_student,omitempty"`
	PhotoDataURL   *string `json:"photo_data_url,omitempty"`
	QRCodeDataURL  *string `json:"qr_code_data_url,omitempty"`
	BarcodeDataURL *string `json:"barcode_data_url,omitempty"`
}

// Update updates profile fields and the opaque visual assets cached back
// by the QR/barcode generator. Billing state is not touched here.
func (s *MemberService) Update(ctx context.Context, id string, input *UpdateMemberInput) (*models.Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.Validation("invalid member input: %v", err)
	}

	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, domain.Validation("full name cannot be empty")
		}
		member.FullName = *input.FullName
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.IsStudent != nil {
		member.IsStudent = *input.IsStudent
	}
	if input.PhotoDataURL != nil {
		member.PhotoDataURL = *input.PhotoDataURL
	}
	if input.QRCodeDataURL != nil {
		member.QRCodeDataURL = *input.QRCodeDataURL
	}
	if input.BarcodeDataURL != nil {
		member.BarcodeDataURL = *input.BarcodeDataURL
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, domain.Storage(err, "failed to update member")
	}
	return member, nil
}

// RedeemReferralBonus consumes four un-redeemed invites for one free
// subscription month. Never applied automatically: this is the explicit
// redemption hook behind the invite counter.
func (s *MemberService) RedeemReferralBonus(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if member.RedeemableInvites() < domain.ReferralRedemptionSize {
		return nil, domain.Conflict("not enough referrals to redeem: need %d, have %d",
			domain.ReferralRedemptionSize, member.RedeemableInvites())
	}
	if member.PaymentType != string(domain.PaymentTypeMonthly) {
		return nil, domain.Conflict("referral bonus applies to monthly subscribers only")
	}

	today := s.clock.Today()
	base := today
	if member.SubscriptionExpiryDate != nil {
		if expiry, err := calendar.Parse(*member.SubscriptionExpiryDate); err == nil && expiry.After(today) {
			base = expiry
		}
	}
	newExpiry := calendar.Format(calendar.AddMonths(base, 1))

	member.RedeemedInvites += domain.ReferralRedemptionSize
	member.SubscriptionExpiryDate = &newExpiry
	member.FreeMonths++

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, domain.Storage(err, "failed to redeem referral bonus")
	}
	return member, nil
}

// ReconcileAll recomputes every member's status, persisting transitions.
// Shared by the list read path and the daily sweep.
func (s *MemberService) ReconcileAll(ctx context.Context) (int, error) {
	members, err := s.memberRepo.ListAll(ctx)
	if err != nil {
		return 0, domain.Storage(err, "failed to load members")
	}

	changed := 0
	for _, member := range members {
		if s.reconcileOne(ctx, member) {
			changed++
		}
	}
	return changed, nil
}

// reconcileOne refreshes one member's cached status from its expiry date
// and today. The stored status is never authoritative; transitions into
// expired and archived emit notification events, and archival forces
// isActive off. Returns whether a transition was persisted.
func (s *MemberService) reconcileOne(ctx context.Context, member *models.Member) bool {
	expiry, err := calendar.Parse(member.MembershipExpiryDate)
	if err != nil {
		log.Printf("⚠️ Member %s has unparseable expiry date %q", member.ID, member.MembershipExpiryDate)
		return false
	}

	derived := domain.ResolveStatus(expiry, s.clock.Today())
	if string(derived) == member.Status {
		return false
	}

	isActive := member.IsActive
	if derived == domain.StatusArchived {
		isActive = false
	}

	if err := s.memberRepo.UpdateStatus(ctx, member.ID, string(derived), isActive); err != nil {
		// Best effort: return the stale row rather than failing the read.
		log.Printf("⚠️ Failed to persist status for member %s: %v", member.ID, err)
		return false
	}

	member.Status = string(derived)
	member.IsActive = isActive

	switch derived {
	case domain.StatusExpired:
		s.notify.NotifyMembershipExpired(member)
	case domain.StatusArchived:
		s.notify.NotifyMemberArchived(member)
	}
	return true
}
