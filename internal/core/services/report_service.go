package services

import (
	"context"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/pkg/calendar"

	"gorm.io/gorm"
)

// ReportService provides the read-only row sets and pre-aggregated
// totals the export/report layer consumes.
type ReportService struct {
	db             *gorm.DB
	paymentRepo    repositories.PaymentRepository
	attendanceRepo repositories.AttendanceRepository
	clock          calendar.Clock
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB, paymentRepo repositories.PaymentRepository, attendanceRepo repositories.AttendanceRepository, clock calendar.Clock) *ReportService {
	return &ReportService{
		db:             db,
		paymentRepo:    paymentRepo,
		attendanceRepo: attendanceRepo,
		clock:          clock,
	}
}

// IncomeReport represents income totals by ledger category for a range
type IncomeReport struct {
	Start      string             `json:"start"`
	End        string             `json:"end"`
	ByCategory map[string]float64 `json:"by_category"`
	Total      float64            `json:"total"`
}

// IncomeByCategory aggregates ledger income per category over [start,
// end]. Every category is present in the result, zero-filled when no
// rows match, so report columns stay stable.
func (s *ReportService) IncomeByCategory(ctx context.Context, start, end string) (*IncomeReport, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	sums, err := s.paymentRepo.SumByCategory(ctx, start, end)
	if err != nil {
		return nil, domain.Storage(err, "failed to aggregate income")
	}

	report := &IncomeReport{
		Start:      start,
		End:        end,
		ByCategory: make(map[string]float64, len(domain.PaymentCategories)),
	}
	for _, category := range domain.PaymentCategories {
		amount := sums[string(category)]
		report.ByCategory[string(category)] = amount
		report.Total += amount
	}
	return report, nil
}

// PaymentsInRange returns the raw ledger rows for a range
func (s *ReportService) PaymentsInRange(ctx context.Context, start, end string) ([]*models.PaymentRecord, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, domain.Storage(err, "failed to list payments")
	}
	return payments, nil
}

// PaymentsForMember returns the ledger rows for one member ID
func (s *ReportService) PaymentsForMember(ctx context.Context, memberID string) ([]*models.PaymentRecord, error) {
	payments, err := s.paymentRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, domain.Storage(err, "failed to list payments")
	}
	return payments, nil
}

// DashboardData represents front-desk dashboard data
type DashboardData struct {
	// Member statistics (from the reconciled status cache)
	TotalMembers        int64 `json:"total_members"`
	ActiveMembers       int64 `json:"active_members"`
	SoonToExpireMembers int64 `json:"soon_to_expire_members"`
	ExpiredMembers      int64 `json:"expired_members"`
	ArchivedMembers     int64 `json:"archived_members"`

	// Today
	MemberCheckInsToday int64   `json:"member_check_ins_today"`
	WalkInsToday        int64   `json:"walk_ins_today"`
	IncomeToday         float64 `json:"income_today"`

	// This month
	IncomeThisMonth float64 `json:"income_this_month"`
}

// GetDashboard returns front-desk dashboard data
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}

	memberCounts := []struct {
		status string
		target *int64
	}{
		{string(domain.StatusActive), &data.ActiveMembers},
		{string(domain.StatusSoonToExpire), &data.SoonToExpireMembers},
		{string(domain.StatusExpired), &data.ExpiredMembers},
		{string(domain.StatusArchived), &data.ArchivedMembers},
	}

	if err := s.db.WithContext(ctx).Model(&models.Member{}).Count(&data.TotalMembers).Error; err != nil {
		return nil, domain.Storage(err, "failed to count members")
	}
	for _, c := range memberCounts {
		if err := s.db.WithContext(ctx).Model(&models.Member{}).
			Where("status = ?", c.status).Count(c.target).Error; err != nil {
			return nil, domain.Storage(err, "failed to count members")
		}
	}

	today := s.clock.Today()
	todayStr := calendar.Format(today)

	var err error
	if data.MemberCheckInsToday, err = s.attendanceRepo.CountByDate(ctx, todayStr, false); err != nil {
		return nil, domain.Storage(err, "failed to count check-ins")
	}
	if data.WalkInsToday, err = s.attendanceRepo.CountByDate(ctx, todayStr, true); err != nil {
		return nil, domain.Storage(err, "failed to count walk-ins")
	}
	if data.IncomeToday, err = s.paymentRepo.SumByRange(ctx, todayStr, todayStr); err != nil {
		return nil, domain.Storage(err, "failed to sum income")
	}

	monthStart := calendar.Format(calendar.Midnight(today.AddDate(0, 0, -today.Day()+1)))
	if data.IncomeThisMonth, err = s.paymentRepo.SumByRange(ctx, monthStart, todayStr); err != nil {
		return nil, domain.Storage(err, "failed to sum income")
	}

	return data, nil
}

func validateRange(start, end string) error {
	startDate, err := calendar.Parse(start)
	if err != nil {
		return domain.Validation("%v", err)
	}
	endDate, err := calendar.Parse(end)
	if err != nil {
		return domain.Validation("%v", err)
	}
	if endDate.Before(startDate) {
		return domain.Validation("end date is before start date")
	}
	return nil
}
