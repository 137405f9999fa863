package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		Auth: config.Auth{
			ClientID:         "dashboard",
			ClientSecretHash: string(hash),
			JWTSecret:        "test-jwt-secret",
			TokenTTLMinutes:  60,
		},
	}
}

func TestLoginAndValidateToken(t *testing.T) {
	svc := NewService(newTestConfig(t))

	token, err := svc.Login("dashboard", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.ClientID)
}

func TestLoginRejectsWrongSecret(t *testing.T) {
	svc := NewService(newTestConfig(t))

	_, err := svc.Login("dashboard", "wrong")

	assert.True(t, IsCredentialsError(err))
}

func TestLoginRejectsUnknownClient(t *testing.T) {
	svc := NewService(newTestConfig(t))

	_, err := svc.Login("intruso", "s3cret")

	assert.True(t, IsCredentialsError(err))
}

func TestLoginRejectsMissingData(t *testing.T) {
	svc := NewService(newTestConfig(t))

	_, err := svc.Login("", "")

	assert.True(t, IsCredentialsError(err))
}

func TestLoginFailsWhenNotConfigured(t *testing.T) {
	svc := NewService(&config.Config{})

	_, err := svc.Login("dashboard", "s3cret")

	assert.ErrorIs(t, err, ErrAuthNotConfigured)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(newTestConfig(t))

	_, err := svc.ValidateToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewService(cfg)

	token, err := svc.Login("dashboard", "s3cret")
	require.NoError(t, err)

	other := newTestConfig(t)
	other.Auth.JWTSecret = "another-secret"

	_, err = NewService(other).ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
