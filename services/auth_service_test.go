package services

import (
	"testing"
	"time"

	"rentalsite/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("admin", string(hash), "jwt-secret")
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	auth := newTestAuth(t)

	token, expiresAt, err := auth.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	username, err := auth.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	auth := newTestAuth(t)

	_, _, err := auth.Login("admin", "wrong")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPassword))

	_, _, err = auth.Login("root", "s3cret")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}

func TestAuthService_Disabled(t *testing.T) {
	auth := NewAuthService("admin", "", "secret")
	assert.False(t, auth.Enabled())

	_, _, err := auth.Login("admin", "x")
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureDisabled))
	_, err = auth.Verify("anything")
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureDisabled))
}

func TestGetAdminFromToken(t *testing.T) {
	secret := []byte("jwt-secret")

	token, _, err := GenerateAdminToken(secret, "admin", time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = GetAdminFromToken([]byte("other"), token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))

	expired, _, err := GenerateAdminToken(secret, "admin", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = GetAdminFromToken(secret, expired)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))

	_, err = GetAdminFromToken(secret, "Bearer ")
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingToken))
}

func TestAuthService_VerifyRejectsOtherUser(t *testing.T) {
	auth := newTestAuth(t)
	token, _, err := GenerateAdminToken([]byte("jwt-secret"), "intruder", time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = auth.Verify(token)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}
