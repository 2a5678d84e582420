package services

import (
	"context"
	"errors"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/pkg/calendar"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// checkInTimeLayout is the front-desk display format for check-in and
// check-out times.
const checkInTimeLayout = "3:04 PM"

// AttendanceService records check-ins and check-outs, including walk-in
// sessions. It is the only writer of attendance rows.
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	memberRepo     repositories.MemberRepository
	clock          calendar.Clock
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendanceRepo repositories.AttendanceRepository, memberRepo repositories.MemberRepository, clock calendar.Clock) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		clock:          clock,
	}
}

// CheckInInput represents check-in input
type CheckInInput struct {
	MemberID      string  `json:"member_id,omitempty"`
	WalkInName    string  `json:"walk_in_name,omitempty"`
	IsWalkIn      bool    `json:"is_walk_in"`
	SessionType   string  `json:"session_type,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Price         float64 `json:"price,omitempty"`
}

// CheckIn records an attendance row dated today. Members are never
// rejected for an expired membership: attendance is independent of
// billing status and the front desk can always let someone in.
func (s *AttendanceService) CheckIn(ctx context.Context, input *CheckInInput) (*models.AttendanceRecord, error) {
	if input.Price < 0 {
		return nil, domain.Validation("price cannot be negative")
	}
	if input.SessionType != "" && !domain.ValidSessionType(domain.SessionType(input.SessionType)) {
		return nil, domain.Validation("invalid session type %q", input.SessionType)
	}

	record := &models.AttendanceRecord{
		ID:            uuid.NewString(),
		Date:          calendar.Format(s.clock.Today()),
		CheckInTime:   s.clock.Now().Format(checkInTimeLayout),
		IsWalkIn:      input.IsWalkIn,
		SessionType:   input.SessionType,
		PaymentMethod: input.PaymentMethod,
		Price:         input.Price,
	}

	if input.IsWalkIn {
		if input.WalkInName == "" {
			return nil, domain.Validation("walk-in name is required")
		}
		record.MemberID = domain.WalkInID
		record.MemberName = input.WalkInName
	} else {
		if input.MemberID == "" {
			return nil, domain.Validation("member ID is required")
		}
		member, err := s.memberRepo.GetByID(ctx, input.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NotFound("member not found")
			}
			return nil, domain.Storage(err, "failed to load member")
		}
		record.MemberID = member.ID
		record.MemberName = member.FullName
	}

	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, domain.Storage(err, "failed to record check-in")
	}
	return record, nil
}

// CheckOut closes an open attendance record. Closing twice is rejected.
func (s *AttendanceService) CheckOut(ctx context.Context, recordID string) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("attendance record not found")
		}
		return nil, domain.Storage(err, "failed to load attendance record")
	}

	if record.CheckOutTime != nil {
		return nil, domain.Conflict("attendance record is already checked out")
	}

	checkOut := s.clock.Now().Format(checkInTimeLayout)
	record.CheckOutTime = &checkOut

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, domain.Storage(err, "failed to record check-out")
	}
	return record, nil
}

// ListByDate lists attendance for exactly one date. An empty date means
// today.
func (s *AttendanceService) ListByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	if date == "" {
		date = calendar.Format(s.clock.Today())
	}
	if _, err := calendar.Parse(date); err != nil {
		return nil, domain.Validation("%v", err)
	}
	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, domain.Storage(err, "failed to list attendance")
	}
	return records, nil
}

// ListByRange lists attendance with date in [start, end]
func (s *AttendanceService) ListByRange(ctx context.Context, start, end string) ([]*models.AttendanceRecord, error) {
	startDate, err := calendar.Parse(start)
	if err != nil {
		return nil, domain.Validation("%v", err)
	}
	endDate, err := calendar.Parse(end)
	if err != nil {
		return nil, domain.Validation("%v", err)
	}
	if endDate.Before(startDate) {
		return nil, domain.Validation("end date is before start date")
	}

	records, err := s.attendanceRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, domain.Storage(err, "failed to list attendance")
	}
	return records, nil
}

// ListByMember lists attendance for a member ID
func (s *AttendanceService) ListByMember(ctx context.Context, memberID string) ([]*models.AttendanceRecord, error) {
	records, err := s.attendanceRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, domain.Storage(err, "failed to list attendance")
	}
	return records, nil
}
