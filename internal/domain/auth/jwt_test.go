package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "larder",
		AccessTokenTTL: time.Hour,
	})

	user := NewUser("chef@example.com", "hash", "Chef", RoleAdmin)

	tokenString, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "chef@example.com", uc.Email)
	assert.Equal(t, "Chef", uc.Name)
	assert.Equal(t, RoleAdmin, uc.Role)
	assert.True(t, uc.IsAdmin())
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	user := NewUser("chef@example.com", "hash", "Chef", RoleStaff)
	tokenString, _, err := issuer.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "larder",
		AccessTokenTTL: -time.Minute,
	})

	user := NewUser("chef@example.com", "hash", "Chef", RoleStaff)
	tokenString, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
