package services

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/pkg/calendar"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store. MaxOpenConns must stay at 1,
// every pooled connection would otherwise see its own empty :memory: db.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db
}

// fixedClock pins every "today" in a test to one date.
func fixedClock(t *testing.T, date string) calendar.Clock {
	t.Helper()
	day, err := calendar.Parse(date)
	require.NoError(t, err)
	return calendar.Fixed(day.Add(10 * time.Hour))
}

// billingFixture wires a billing service over a fresh store with default
// pricing already seeded.
type billingFixture struct {
	db         *gorm.DB
	memberRepo repositories.MemberRepository
	billing    *BillingService
	promos     *PromoService
}

func newBillingFixture(t *testing.T, today string) *billingFixture {
	t.Helper()

	db := newTestDB(t)
	memberRepo := repositories.NewMemberRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	promoRepo := repositories.NewPromoRepository(db)
	promoService := NewPromoService(promoRepo)
	clock := fixedClock(t, today)

	return &billingFixture{
		db:         db,
		memberRepo: memberRepo,
		billing:    NewBillingService(db, memberRepo, settingsRepo, promoService, clock),
		promos:     promoService,
	}
}

// seedMember inserts a member with a one-year window starting at start.
func (f *billingFixture) seedMember(t *testing.T, id, start string) *models.Member {
	t.Helper()

	startDay, err := calendar.Parse(start)
	require.NoError(t, err)

	member := &models.Member{
		ID:                   id,
		FullName:             "Test Member",
		MembershipStartDate:  start,
		MembershipExpiryDate: calendar.Format(calendar.AddMonths(startDay, 12)),
		MembershipDuration:   "1_year",
		PaymentType:          "per_session",
		Status:               "active",
		IsActive:             true,
		InviteCode:           id,
	}
	require.NoError(t, f.memberRepo.Create(context.Background(), member))
	return member
}

func (f *billingFixture) seedPromo(t *testing.T, name string, minMonths, freeMonths int) {
	t.Helper()
	require.NoError(t, repositories.NewPromoRepository(f.db).Create(context.Background(), &models.Promo{
		Name:       name,
		MinMonths:  minMonths,
		FreeMonths: freeMonths,
		IsActive:   true,
	}))
}

func (f *billingFixture) paymentCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.PaymentRecord{}).Count(&n).Error)
	return n
}

func (f *billingFixture) reload(t *testing.T, id string) *models.Member {
	t.Helper()
	member, err := f.memberRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return member
}
