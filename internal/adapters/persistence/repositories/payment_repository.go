package repositories

import (
	"context"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface.
// The ledger is append-only: no update or delete methods exist here.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create appends a ledger entry
func (r *paymentRepository) Create(ctx context.Context, payment *models.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// ListByRange lists payments with date in [start, end]
func (r *paymentRepository) ListByRange(ctx context.Context, start, end string) ([]*models.PaymentRecord, error) {
	var payments []*models.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date DESC, created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByMember lists payments for a member ID (or walk-in marker)
func (r *paymentRepository) ListByMember(ctx context.Context, memberID string) ([]*models.PaymentRecord, error) {
	var payments []*models.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("date DESC, created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// CountByMember counts ledger entries for a member ID
func (r *paymentRepository) CountByMember(ctx context.Context, memberID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}

// SumByCategory aggregates income per category over [start, end]
func (r *paymentRepository) SumByCategory(ctx context.Context, start, end string) (map[string]float64, error) {
	type row struct {
		Category string
		Total    float64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("date BETWEEN ? AND ?", start, end).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.Category] = r.Total
	}
	return totals, nil
}

// SumByRange returns total income over [start, end]
func (r *paymentRepository) SumByRange(ctx context.Context, start, end string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	return total, err
}
