package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/pkg/utils"
)

func newTestAuthService(t *testing.T, password string) AuthServiceInterface {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return NewAuthService(&utils.Config{AdminUser: "admin", AdminPasswordHash: hash})
}

func TestLoginWithValidCredentials(t *testing.T) {
	svc := newTestAuthService(t, "correct horse")

	token, err := svc.Login("admin", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t, "correct horse")

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = svc.Login("root", "correct horse")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	svc := NewAuthService(&utils.Config{AdminUser: "admin"})

	_, err := svc.Login("admin", "anything")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestAPIKeyLifecycle(t *testing.T) {
	svc := newTestAuthService(t, "pw")

	key, err := svc.IssueAPIKey()
	require.NoError(t, err)
	assert.Len(t, key, 48) // 24 random bytes hex-encoded

	assert.True(t, svc.ValidAPIKey(key))
	assert.False(t, svc.ValidAPIKey("never-issued"))
}
