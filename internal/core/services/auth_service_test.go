package services

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/config"
	"gymdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		AppMode:  "test",
		Timezone: "Asia/Manila",
		Location: time.UTC,
	}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenMins = 15

	return NewAuthService(repositories.NewStaffUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, &RegisterInput{
		Username: "frontdesk",
		Email:    "desk@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "STAFF", user.Role)

	result, err := auth.Login(ctx, &LoginInput{Username: "frontdesk", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)

	claims, err := auth.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", claims.Username)
	assert.Equal(t, "STAFF", claims.Role)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, &RegisterInput{
		Username: "frontdesk",
		Email:    "desk@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = auth.Register(ctx, &RegisterInput{
		Username: "frontdesk",
		Email:    "other@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = auth.Register(ctx, &RegisterInput{
		Username: "other",
		Email:    "desk@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = auth.Register(ctx, &RegisterInput{
		Username: "short",
		Email:    "short@example.com",
		Password: "tiny",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, &RegisterInput{
		Username: "frontdesk",
		Email:    "desk@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &LoginInput{Username: "frontdesk", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, &LoginInput{Username: "nobody", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
