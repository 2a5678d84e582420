package services

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPayLifetimeFeeRejectsDoublePayment(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	ctx := context.Background()

	payment, err := f.billing.PayLifetimeFee(ctx, "GM1", domain.MethodCash)
	require.NoError(t, err)
	assert.Equal(t, 500.0, payment.Amount)
	assert.Equal(t, string(domain.CategoryMembershipFee), payment.Category)
	assert.Equal(t, "2024-06-10", payment.Date)

	_, err = f.billing.PayLifetimeFee(ctx, "GM1", domain.MethodCash)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	// The rejected retry must not have written a second ledger row.
	assert.EqualValues(t, 1, f.paymentCount(t))
	assert.True(t, f.reload(t, "GM1").MembershipFeePaid)
}

func TestPayLifetimeFeeValidatesMethod(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")

	_, err := f.billing.PayLifetimeFee(context.Background(), "GM1", "Cheque")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualValues(t, 0, f.paymentCount(t))
}

func TestSubscriptionChargesPaidMonthsOnly(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	f.seedPromo(t, "3+1", 3, 1)
	ctx := context.Background()

	result, err := f.billing.StartOrRenewMonthlySubscription(ctx, "GM1", 3, domain.MethodGCash)
	require.NoError(t, err)

	// Three paid months at 950, the promo month is free.
	assert.Equal(t, 3*950.0, result.Payment.Amount)
	require.NotNil(t, result.Bonus)
	assert.Equal(t, 1, result.Bonus.FreeMonths)

	// Expiry covers paid plus free months.
	require.NotNil(t, result.Member.SubscriptionExpiryDate)
	assert.Equal(t, "2024-10-10", *result.Member.SubscriptionExpiryDate)
	assert.Equal(t, string(domain.PaymentTypeMonthly), result.Member.PaymentType)
}

func TestSubscriptionWithoutQualifyingPromo(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	f.seedPromo(t, "6+2", 6, 2)

	result, err := f.billing.StartOrRenewMonthlySubscription(context.Background(), "GM1", 2, domain.MethodCash)
	require.NoError(t, err)

	assert.Nil(t, result.Bonus)
	assert.Equal(t, 2*950.0, result.Payment.Amount)
	assert.Equal(t, "2024-08-10", *result.Member.SubscriptionExpiryDate)
}

func TestSubscriptionExtendsFromCurrentExpiry(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	member := f.seedMember(t, "GM1", "2024-06-01")
	ctx := context.Background()

	// Active monthly subscriber with time left.
	expiry := "2024-07-01"
	member.PaymentType = string(domain.PaymentTypeMonthly)
	member.SubscriptionExpiryDate = &expiry
	require.NoError(t, f.memberRepo.Update(ctx, member))

	result, err := f.billing.StartOrRenewMonthlySubscription(ctx, "GM1", 1, domain.MethodCash)
	require.NoError(t, err)

	// Renewal extends from July 1st, not from today.
	assert.Equal(t, "2024-08-01", *result.Member.SubscriptionExpiryDate)
}

func TestSubscriptionRestartsAfterMembershipExpiry(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	member := f.seedMember(t, "GM1", "2024-06-01")
	ctx := context.Background()

	// Lifetime window long past, with a stale future subscription date.
	member.MembershipExpiryDate = "2024-05-01"
	stale := "2024-07-01"
	member.PaymentType = string(domain.PaymentTypeMonthly)
	member.SubscriptionExpiryDate = &stale
	require.NoError(t, f.memberRepo.Update(ctx, member))

	result, err := f.billing.StartOrRenewMonthlySubscription(ctx, "GM1", 1, domain.MethodCash)
	require.NoError(t, err)

	// Expired members restart from today.
	assert.Equal(t, "2024-07-10", *result.Member.SubscriptionExpiryDate)
}

func TestSubscriptionStudentRate(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	member := f.seedMember(t, "GM1", "2024-06-10")
	ctx := context.Background()

	member.IsStudent = true
	require.NoError(t, f.memberRepo.Update(ctx, member))

	result, err := f.billing.StartOrRenewMonthlySubscription(ctx, "GM1", 2, domain.MethodCard)
	require.NoError(t, err)
	assert.Equal(t, 2*850.0, result.Payment.Amount)
}

func TestSubscriptionMonthsBounds(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	ctx := context.Background()

	for _, months := range []int{0, -1, 13} {
		_, err := f.billing.StartOrRenewMonthlySubscription(ctx, "GM1", months, domain.MethodCash)
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	}
	assert.EqualValues(t, 0, f.paymentCount(t))
}

func TestCancelSubscription(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	ctx := context.Background()

	_, err := f.billing.StartOrRenewMonthlySubscription(ctx, "GM1", 3, domain.MethodCash)
	require.NoError(t, err)

	member, err := f.billing.CancelMonthlySubscription(ctx, "GM1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentTypePerSession), member.PaymentType)
	assert.Nil(t, member.SubscriptionExpiryDate)

	// No refund row: the original charge is still the only ledger entry.
	assert.EqualValues(t, 1, f.paymentCount(t))

	_, err = f.billing.CancelMonthlySubscription(ctx, "GM1")
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestRecordMemberSession(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	ctx := context.Background()

	payment, err := f.billing.RecordMemberSession(ctx, "GM1", domain.Session1Hour, domain.MethodCash)
	require.NoError(t, err)
	assert.Equal(t, 60.0, payment.Amount)
	assert.Equal(t, string(domain.CategoryMemberSessionFee), payment.Category)

	member := f.reload(t, "GM1")
	assert.Equal(t, 1, member.SessionCount)
	require.NotNil(t, member.LastSessionDate)
	assert.Equal(t, "2024-06-10", *member.LastSessionDate)
}

func TestRecordWalkInSession(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	ctx := context.Background()

	payment, err := f.billing.RecordWalkInSession(ctx, "Juan Dela Cruz", domain.SessionWholeDay, domain.MethodCash)
	require.NoError(t, err)
	assert.Equal(t, 80.0, payment.Amount)
	assert.Equal(t, "WALK-IN:Juan Dela Cruz", payment.MemberID)
	assert.Equal(t, string(domain.CategoryWalkInSessionFee), payment.Category)

	// Ledger only: no member rows exist.
	var members int64
	require.NoError(t, f.db.Model(&models.Member{}).Count(&members).Error)
	assert.EqualValues(t, 0, members)

	_, err = f.billing.RecordWalkInSession(ctx, "", domain.Session1Hour, domain.MethodCash)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRenewLifetimeMembership(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	member := f.seedMember(t, "GM1", "2023-01-15")
	ctx := context.Background()

	// Active member extends from the current expiry (2024-01-15 + 12 = ...).
	member.MembershipExpiryDate = "2024-08-01"
	require.NoError(t, f.memberRepo.Update(ctx, member))

	renewed, err := f.billing.RenewLifetimeMembership(ctx, "GM1", 6)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", renewed.MembershipExpiryDate)
	assert.Equal(t, "2023-01-15", renewed.MembershipStartDate)

	// Expired member restarts from today.
	renewed.MembershipExpiryDate = "2024-01-01"
	require.NoError(t, f.memberRepo.Update(ctx, renewed))

	renewed, err = f.billing.RenewLifetimeMembership(ctx, "GM1", 12)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", renewed.MembershipStartDate)
	assert.Equal(t, "2025-06-10", renewed.MembershipExpiryDate)
	assert.Equal(t, string(domain.StatusActive), renewed.Status)
	assert.True(t, renewed.IsActive)
}

func TestArchiveMemberReportsRemainingDays(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	member := f.seedMember(t, "GM1", "2024-06-01")
	ctx := context.Background()

	member.MembershipExpiryDate = "2024-06-20"
	require.NoError(t, f.memberRepo.Update(ctx, member))

	result, err := f.billing.ArchiveMember(ctx, "GM1")
	require.NoError(t, err)
	assert.Equal(t, 10, result.RemainingDays)
	assert.Equal(t, string(domain.StatusArchived), result.Member.Status)
	assert.False(t, result.Member.IsActive)
}

func TestDeleteMemberPreservesLedger(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	ctx := context.Background()

	_, err := f.billing.PayLifetimeFee(ctx, "GM1", domain.MethodCash)
	require.NoError(t, err)
	_, err = f.billing.RecordMemberSession(ctx, "GM1", domain.Session1Hour, domain.MethodCash)
	require.NoError(t, err)

	require.NoError(t, f.billing.DeleteMember(ctx, "GM1"))

	_, err = f.memberRepo.GetByID(ctx, "GM1")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// The ledger keeps referencing the deleted ID.
	assert.EqualValues(t, 2, f.paymentCount(t))
	var orphaned int64
	require.NoError(t, f.db.Model(&models.PaymentRecord{}).
		Where("member_id = ?", "GM1").Count(&orphaned).Error)
	assert.EqualValues(t, 2, orphaned)

	err = f.billing.DeleteMember(ctx, "GM1")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestBillingCommitIsAtomic(t *testing.T) {
	f := newBillingFixture(t, "2024-06-10")
	f.seedMember(t, "GM1", "2024-06-10")
	ctx := context.Background()

	// Force every payment insert to fail; the member mutation in the same
	// transaction must roll back with it.
	err := f.db.Callback().Create().Before("gorm:create").Register("fail_payment_inserts", func(tx *gorm.DB) {
		if tx.Statement.Table == "payment_records" {
			tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)
	defer f.db.Callback().Create().Remove("fail_payment_inserts")

	_, err = f.billing.PayLifetimeFee(ctx, "GM1", domain.MethodCash)
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))

	member := f.reload(t, "GM1")
	assert.False(t, member.MembershipFeePaid)
	assert.EqualValues(t, 0, f.paymentCount(t))
}
