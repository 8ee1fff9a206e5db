package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesadeayuda/helpdesk/internal/config"
	"github.com/mesadeayuda/helpdesk/internal/domain"
	apperrors "github.com/mesadeayuda/helpdesk/pkg/errorutil"
)

func newAuthServiceFixture(users ...domain.User) (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, repo), repo
}

func TestRegisterCreatesRequester(t *testing.T) {
	svc, repo := newAuthServiceFixture()

	user, token, exp, err := svc.Register(context.Background(), "Ana Torres", "  Ana@Example.COM ", "555-0100", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, domain.UserRoleRequester, user.Role)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	stored, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "", "secret123")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "Otra Ana", "ana@example.com", "", "different")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	_, _, _, err := svc.Register(context.Background(), "Ana", "", "", "secret123")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Register(context.Background(), "Ana", "ana@example.com", "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "", "secret123")
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "ANA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)
	assert.Equal(t, domain.UserRoleRequester, claims.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	_, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "", "secret123")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestLoginSuspendedAccount(t *testing.T) {
	svc, repo := newAuthServiceFixture()

	user, _, _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "", "secret123")
	require.NoError(t, err)

	user.Status = domain.UserStatusSuspended
	require.NoError(t, repo.Update(context.Background(), user))

	_, _, _, err = svc.Login(context.Background(), "ana@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}
