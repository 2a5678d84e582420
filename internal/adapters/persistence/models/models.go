package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Members
// ============================================================

// Member represents the members table. Deletion is permanent (no soft
// delete): the payment ledger and attendance history deliberately survive
// it, so a tombstone row would add nothing.
type Member struct {
	ID       string `gorm:"primaryKey;size:24" json:"id"`
	FullName string `gorm:"size:100;not null" json:"full_name"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:30" json:"phone"`

	// Lifetime membership window
	MembershipStartDate      string `gorm:"size:10;not null" json:"membership_start_date"`
	MembershipExpiryDate     string `gorm:"size:10;not null;index" json:"membership_expiry_date"`
	MembershipDurationMonths int    `json:"membership_duration_months"` // legacy field, kept for exports
	MembershipDuration       string `gorm:"size:10" json:"membership_duration"`
	MembershipFeePaid        bool   `gorm:"default:false" json:"membership_fee_paid"`

	// Payment mode and monthly subscription sub-state
	PaymentType            string  `gorm:"size:20;not null;default:'per_session'" json:"payment_type"`
	IsStudent              bool    `gorm:"default:false" json:"is_student"`
	SubscriptionExpiryDate *string `gorm:"size:10" json:"subscription_expiry_date"`
	PaidMonths             int     `json:"paid_months"`
	FreeMonths             int     `json:"free_months"`

	// Per-session sub-state
	SessionCount    int     `json:"session_count"`
	LastSessionDate *string `gorm:"size:10" json:"last_session_date"`

	// Status cache, refreshed on read (see member service reconciliation)
	Status   string `gorm:"size:20;not null;default:'active';index" json:"status"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Referral
	InviteCode      string  `gorm:"uniqueIndex;size:30;not null" json:"invite_code"`
	ReferredBy      *string `gorm:"size:30" json:"referred_by"`
	InviteCount     int     `gorm:"default:0" json:"invite_count"`
	RedeemedInvites int     `gorm:"default:0" json:"redeemed_invites"`

	// Opaque visual assets generated and cached back by external components
	PhotoDataURL   string `gorm:"type:text" json:"photo_data_url,omitempty"`
	QRCodeDataURL  string `gorm:"type:text" json:"qr_code_data_url,omitempty"`
	BarcodeDataURL string `gorm:"type:text" json:"barcode_data_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// RedeemableInvites returns how many successful invites have not been
// consumed by a bonus redemption yet.
func (m *Member) RedeemableInvites() int {
	return m.InviteCount - m.RedeemedInvites
}

// ============================================================
// Attendance
// ============================================================

// AttendanceRecord represents one check-in, optionally closed later by a
// check-out. Rows are never deleted by normal flow.
type AttendanceRecord struct {
	ID            string  `gorm:"primaryKey;size:40" json:"id"`
	MemberID      string  `gorm:"size:24;not null;index" json:"member_id"` // WALK-IN sentinel for walk-ins
	MemberName    string  `gorm:"size:100;not null" json:"member_name"`
	Date          string  `gorm:"size:10;not null;index" json:"date"`
	CheckInTime   string  `gorm:"size:20;not null" json:"check_in_time"`
	CheckOutTime  *string `gorm:"size:20" json:"check_out_time"`
	IsWalkIn      bool    `gorm:"default:false" json:"is_walk_in"`
	SessionType   string  `gorm:"size:20" json:"session_type"`
	PaymentMethod string  `gorm:"size:20" json:"payment_method"`
	Price         float64 `json:"price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// ============================================================
// Payments
// ============================================================

// PaymentRecord is an append-only ledger entry. The repository exposes no
// update or delete for it; it is the sole source of all income reporting.
type PaymentRecord struct {
	ID          string    `gorm:"primaryKey;size:40" json:"id"`
	Date        string    `gorm:"size:10;not null;index" json:"date"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Method      string    `gorm:"size:20;not null" json:"method"`
	Category    string    `gorm:"size:40;not null;index" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	MemberID    string    `gorm:"size:130;not null;index" json:"member_id"` // member ID or WALK-IN:<name>
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}

// ============================================================
// Promos & Pricing
// ============================================================

// Promo is a month-bonus promotion for monthly subscriptions.
type Promo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	MinMonths  int       `gorm:"not null" json:"min_months"`
	FreeMonths int       `gorm:"not null" json:"free_months"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Promo) TableName() string {
	return "promos"
}

// PricingSettings is the singleton fee table.
type PricingSettings struct {
	ID                            uint      `gorm:"primaryKey" json:"id"`
	MembershipFee                 float64   `json:"membership_fee"`
	MonthlySubscriptionFee        float64   `json:"monthly_subscription_fee"`
	StudentMonthlySubscriptionFee float64   `json:"student_monthly_subscription_fee"`
	PerSessionMemberFee           float64   `json:"per_session_member_fee"`
	PerSessionWalkInFee           float64   `json:"per_session_walk_in_fee"`
	UpdatedAt                     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PricingSettings) TableName() string {
	return "pricing_settings"
}

// DefaultPricingSettings returns the fee defaults applied when absent.
func DefaultPricingSettings() *PricingSettings {
	return &PricingSettings{
		ID:                            1,
		MembershipFee:                 500,
		MonthlySubscriptionFee:        950,
		StudentMonthlySubscriptionFee: 850,
		PerSessionMemberFee:           60,
		PerSessionWalkInFee:           80,
	}
}

// ============================================================
// Staff accounts
// ============================================================

// StaffUser represents the staff_users table.
type StaffUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'STAFF'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StaffUser) TableName() string {
	return "staff_users"
}

// StaffUserResponse DTO
type StaffUserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *StaffUser) ToResponse() *StaffUserResponse {
	return &StaffUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// Staff roles
const (
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

// ============================================================
// Schema versioning
// ============================================================

// SchemaVersion is the schema version this binary writes. Migrations are
// forward-only: fields and collections are added, never dropped.
const SchemaVersion = 1

// SchemaMeta tracks the schema version of the store.
type SchemaMeta struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	Version int  `gorm:"not null" json:"version"`
}

func (SchemaMeta) TableName() string {
	return "schema_meta"
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&SchemaMeta{},
		&StaffUser{},
		&Member{},
		&AttendanceRecord{},
		&PaymentRecord{},
		&Promo{},
		&PricingSettings{},
	}
}

// Migrate runs the additive auto migration and bumps the stored schema
// version. A store written by a newer binary is refused rather than
// silently rewritten.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return err
	}

	var meta SchemaMeta
	err := db.First(&meta).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&SchemaMeta{ID: 1, Version: SchemaVersion}).Error
	case err != nil:
		return err
	}

	if meta.Version > SchemaVersion {
		return fmt.Errorf("store schema version %d is newer than supported version %d", meta.Version, SchemaVersion)
	}
	if meta.Version < SchemaVersion {
		meta.Version = SchemaVersion
		return db.Save(&meta).Error
	}
	return nil
}
