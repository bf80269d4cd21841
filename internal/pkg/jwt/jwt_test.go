package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", RoleHROfficer)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "user-1", Role: RoleHROfficer}, claims)
	assert.True(t, claims.IsAny(RoleAdmin, RoleHROfficer))
	assert.False(t, claims.IsAny(RolePayrollOfficer))
}

func TestClaimsFromContext_MissingRole(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	token, _, err := svc.JWTAuth().Encode(map[string]interface{}{"user_id": "user-1"})
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	_, err = ClaimsFromContext(ctx)
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestClaimsFromContext_NoToken(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)
}
