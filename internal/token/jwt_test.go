package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflora/server/internal/model"
)

func TestJWT_RoundTrip(t *testing.T) {
	manager := NewJWT("test-secret")

	tokenString, err := manager.GenerateAccessToken(42, model.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, role, err := manager.ParseAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, model.RoleManager, role)
}

func TestJWT_WrongSecret(t *testing.T) {
	manager := NewJWT("test-secret")
	other := NewJWT("other-secret")

	tokenString, err := manager.GenerateAccessToken(42, model.RoleAdmin)
	require.NoError(t, err)

	_, _, err = other.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	manager := NewJWT("test-secret")
	manager.accessTTL = -time.Minute

	tokenString, err := manager.GenerateAccessToken(42, model.RoleAdmin)
	require.NoError(t, err)

	_, _, err = manager.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	manager := NewJWT("test-secret")

	_, _, err := manager.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}
