package services

import (
	"context"
	"testing"

	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendanceFixture(t *testing.T, today string) (*AttendanceService, *memberFixture) {
	t.Helper()
	members := newMemberFixture(t, today)
	attendance := NewAttendanceService(
		repositories.NewAttendanceRepository(members.db),
		members.memberRepo,
		fixedClock(t, today),
	)
	return attendance, members
}

func TestCheckInMember(t *testing.T) {
	attendance, members := newAttendanceFixture(t, "2024-06-10")
	members.seed(t, "GM1", "2025-06-10")
	ctx := context.Background()

	record, err := attendance.CheckIn(ctx, &CheckInInput{MemberID: "GM1"})
	require.NoError(t, err)
	assert.Equal(t, "GM1", record.MemberID)
	assert.Equal(t, "Seeded Member", record.MemberName)
	assert.Equal(t, "2024-06-10", record.Date)
	assert.False(t, record.IsWalkIn)
	assert.Nil(t, record.CheckOutTime)
}

func TestCheckInExpiredMemberIsAllowed(t *testing.T) {
	attendance, members := newAttendanceFixture(t, "2024-06-10")
	members.seed(t, "GM1", "2024-01-01")

	record, err := attendance.CheckIn(context.Background(), &CheckInInput{MemberID: "GM1"})
	require.NoError(t, err)
	assert.Equal(t, "GM1", record.MemberID)
}

func TestCheckInWalkIn(t *testing.T) {
	attendance, _ := newAttendanceFixture(t, "2024-06-10")
	ctx := context.Background()

	record, err := attendance.CheckIn(ctx, &CheckInInput{
		IsWalkIn:      true,
		WalkInName:    "Juan Dela Cruz",
		SessionType:   string(domain.Session2Hours),
		PaymentMethod: string(domain.MethodCash),
		Price:         80,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WalkInID, record.MemberID)
	assert.Equal(t, "Juan Dela Cruz", record.MemberName)
	assert.True(t, record.IsWalkIn)

	_, err = attendance.CheckIn(ctx, &CheckInInput{IsWalkIn: true})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCheckInValidation(t *testing.T) {
	attendance, _ := newAttendanceFixture(t, "2024-06-10")
	ctx := context.Background()

	_, err := attendance.CheckIn(ctx, &CheckInInput{MemberID: "GM404"})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = attendance.CheckIn(ctx, &CheckInInput{MemberID: "GM1", Price: -5})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = attendance.CheckIn(ctx, &CheckInInput{MemberID: "GM1", SessionType: "3_hours"})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCheckOutTwiceIsRejected(t *testing.T) {
	attendance, members := newAttendanceFixture(t, "2024-06-10")
	members.seed(t, "GM1", "2025-06-10")
	ctx := context.Background()

	record, err := attendance.CheckIn(ctx, &CheckInInput{MemberID: "GM1"})
	require.NoError(t, err)

	closed, err := attendance.CheckOut(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.CheckOutTime)

	_, err = attendance.CheckOut(ctx, record.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = attendance.CheckOut(ctx, "no-such-record")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestAttendanceListing(t *testing.T) {
	attendance, members := newAttendanceFixture(t, "2024-06-10")
	members.seed(t, "GM1", "2025-06-10")
	ctx := context.Background()

	_, err := attendance.CheckIn(ctx, &CheckInInput{MemberID: "GM1"})
	require.NoError(t, err)
	_, err = attendance.CheckIn(ctx, &CheckInInput{IsWalkIn: true, WalkInName: "Guest"})
	require.NoError(t, err)

	today, err := attendance.ListByDate(ctx, "")
	require.NoError(t, err)
	assert.Len(t, today, 2)

	byMember, err := attendance.ListByMember(ctx, "GM1")
	require.NoError(t, err)
	assert.Len(t, byMember, 1)

	_, err = attendance.ListByRange(ctx, "2024-06-10", "2024-06-01")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
