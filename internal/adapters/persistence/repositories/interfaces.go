package repositories

import (
	"context"

	"gymdesk/internal/adapters/persistence/models"
)

// MemberRepository defines member persistence. The billing engine is the
// only writer of member mutations that touch money; it goes through the
// store's transaction boundary and uses these reads for lookups.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id string) (*models.Member, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	UpdateStatus(ctx context.Context, id string, status string, isActive bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int, search string) ([]*models.Member, int64, error)
	ListAll(ctx context.Context) ([]*models.Member, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// PaymentRepository defines access to the append-only payment ledger.
// There is deliberately no Update or Delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.PaymentRecord) error
	ListByRange(ctx context.Context, start, end string) ([]*models.PaymentRecord, error)
	ListByMember(ctx context.Context, memberID string) ([]*models.PaymentRecord, error)
	CountByMember(ctx context.Context, memberID string) (int64, error)
	SumByCategory(ctx context.Context, start, end string) (map[string]float64, error)
	SumByRange(ctx context.Context, start, end string) (float64, error)
}

// AttendanceRepository defines attendance persistence. Records are created
// on check-in and mutated once on check-out, never deleted by normal flow.
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	Update(ctx context.Context, record *models.AttendanceRecord) error
	ListByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error)
	ListByRange(ctx context.Context, start, end string) ([]*models.AttendanceRecord, error)
	ListByMember(ctx context.Context, memberID string) ([]*models.AttendanceRecord, error)
	CountByDate(ctx context.Context, date string, walkIn bool) (int64, error)
	CountByMember(ctx context.Context, memberID string) (int64, error)
}

// PromoRepository defines promo persistence.
type PromoRepository interface {
	Create(ctx context.Context, promo *models.Promo) error
	GetByID(ctx context.Context, id uint) (*models.Promo, error)
	Update(ctx context.Context, promo *models.Promo) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Promo, error)
	ListActive(ctx context.Context) ([]*models.Promo, error)
}

// SettingsRepository defines access to the pricing settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.PricingSettings, error)
	Update(ctx context.Context, settings *models.PricingSettings) error
}

// StaffUserRepository defines staff account persistence.
type StaffUserRepository interface {
	Create(ctx context.Context, user *models.StaffUser) error
	GetByID(ctx context.Context, id uint) (*models.StaffUser, error)
	GetByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
}
