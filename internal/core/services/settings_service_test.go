package services

import (
	"context"
	"testing"

	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaultsOnFirstRead(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsService(repositories.NewSettingsRepository(db))

	got, err := settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.MembershipFee)
	assert.Equal(t, 950.0, got.MonthlySubscriptionFee)
}

func TestSettingsPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsService(repositories.NewSettingsRepository(db))
	ctx := context.Background()

	fee := 1100.0
	updated, err := settings.Update(ctx, &UpdateSettingsInput{MonthlySubscriptionFee: &fee})
	require.NoError(t, err)
	assert.Equal(t, 1100.0, updated.MonthlySubscriptionFee)

	// Untouched fields keep their values.
	assert.Equal(t, 500.0, updated.MembershipFee)
	assert.Equal(t, 80.0, updated.PerSessionWalkInFee)

	negative := -1.0
	_, err = settings.Update(ctx, &UpdateSettingsInput{MembershipFee: &negative})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
