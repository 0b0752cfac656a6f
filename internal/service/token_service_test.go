package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveboxhq/drivebox/internal/config"
	"github.com/driveboxhq/drivebox/internal/domain"
)

const tokenTestSecret = "test-secret-key-123"

func setupTokenTest(t *testing.T, refreshExpiry time.Duration) (*TokenService, *fakeRefreshTokenRepo, *domain.User) {
	t.Helper()

	userRepo := newFakeUserRepo()
	user := &domain.User{FirebaseUID: "uid-a", Email: "a@example.com", Name: "Alice"}
	require.NoError(t, userRepo.Create(context.Background(), user))

	refreshRepo := newFakeRefreshTokenRepo()
	svc := NewTokenService(config.JWTConfig{
		Secret:             tokenTestSecret,
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: refreshExpiry,
	}, refreshRepo, userRepo)

	return svc, refreshRepo, user
}

func TestGenerateTokenPairSignsUserClaims(t *testing.T) {
	svc, refreshRepo, user := setupTokenTest(t, 7*24*time.Hour)

	pair, err := svc.GenerateTokenPair(context.Background(), user, "test-agent", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 1, refreshRepo.activeCount())

	claims := &domain.DriveboxClaims{}
	_, err = jwt.ParseWithClaims(pair.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(tokenTestSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, refreshRepo, user := setupTokenTest(t, 7*24*time.Hour)

	pair, err := svc.GenerateTokenPair(context.Background(), user, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	rotated, err := svc.RefreshAccessToken(context.Background(), pair.RefreshToken, "test-agent", "127.0.0.1")

	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, 1, refreshRepo.activeCount(), "the presented token must be revoked on rotation")

	// The presented token is single-use
	_, err = svc.RefreshAccessToken(context.Background(), pair.RefreshToken, "test-agent", "127.0.0.1")
	assert.Error(t, err)

	// The rotated token still works
	_, err = svc.RefreshAccessToken(context.Background(), rotated.RefreshToken, "test-agent", "127.0.0.1")
	assert.NoError(t, err)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc, _, _ := setupTokenTest(t, 7*24*time.Hour)

	_, err := svc.RefreshAccessToken(context.Background(), "never-issued", "test-agent", "127.0.0.1")

	assert.Error(t, err)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	svc, _, user := setupTokenTest(t, 7*24*time.Hour)

	pair, err := svc.GenerateTokenPair(context.Background(), user, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefreshToken(context.Background(), pair.RefreshToken))

	_, err = svc.RefreshAccessToken(context.Background(), pair.RefreshToken, "test-agent", "127.0.0.1")
	assert.Error(t, err)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	svc, _, user := setupTokenTest(t, -time.Hour)

	pair, err := svc.GenerateTokenPair(context.Background(), user, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(context.Background(), pair.RefreshToken, "test-agent", "127.0.0.1")
	assert.Error(t, err)
}

func TestRevokeAllUserTokens(t *testing.T) {
	svc, refreshRepo, user := setupTokenTest(t, 7*24*time.Hour)

	first, err := svc.GenerateTokenPair(context.Background(), user, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	second, err := svc.GenerateTokenPair(context.Background(), user, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllUserTokens(context.Background(), user.ID))

	assert.Equal(t, 0, refreshRepo.activeCount())
	_, err = svc.RefreshAccessToken(context.Background(), first.RefreshToken, "test-agent", "127.0.0.1")
	assert.Error(t, err)
	_, err = svc.RefreshAccessToken(context.Background(), second.RefreshToken, "test-agent", "127.0.0.1")
	assert.Error(t, err)
}
