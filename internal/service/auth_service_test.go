package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taskboard/internal/config"
	"github.com/spec-kit/taskboard/internal/domain"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, users)
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "Ada", "ada@x.com", "secret", domain.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleUser, user.Role)
	// the stored hash is never the plaintext
	assert.NotEqual(t, "secret", users.users[user.ID].PasswordHash)

	loggedIn, token, _, err := svc.Login(ctx, "ada@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Ada", "ada@x.com", "secret", domain.RoleUser)
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Imposter", "ada@x.com", "other", domain.RoleUser)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Ada", "ada@x.com", "secret", domain.RoleUser)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "ada@x.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)

	_, _, _, err = svc.Login(ctx, "nobody@x.com", "secret")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
}
