package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolveStatusBoundaries(t *testing.T) {
	today := day("2024-06-10")

	tests := []struct {
		name   string
		expiry string
		want   MemberStatus
	}{
		{"far in the future", "2024-12-31", StatusActive},
		{"eight days out is still active", "2024-06-18", StatusActive},
		{"exactly seven days out", "2024-06-17", StatusSoonToExpire},
		{"expires today", "2024-06-10", StatusSoonToExpire},
		{"expired yesterday", "2024-06-09", StatusExpired},
		{"twenty nine days past", "2024-05-12", StatusExpired},
		{"exactly thirty days past", "2024-05-11", StatusArchived},
		{"long past", "2023-01-01", StatusArchived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(day(tt.expiry), today))
		})
	}
}

func TestResolveStatusIgnoresTimeOfDay(t *testing.T) {
	expiry := day("2024-06-10")
	lateToday := time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, StatusSoonToExpire, ResolveStatus(expiry, lateToday))
}
