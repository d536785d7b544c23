package jwt

import (
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestJWT()
	roomID := 7

	token, expiresAt, err := svc.GenerateAccessToken(studio.Account{ID: "model-acc-7", Username: "berlinm7", Role: studio.RoleModel, RoomID: &roomID})
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "model-acc-7", claims["user_id"])
	assert.Equal(t, "berlinm7", claims["username"])
	assert.Equal(t, "model", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
	assert.EqualValues(t, 7, claims["room_id"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("secret", "soon", "24h")

	_, _, err := svc.GenerateAccessToken(studio.Account{ID: "admin-1", Role: studio.RoleAdmin})
	assert.Error(t, err)
}

func TestParseRefreshToken(t *testing.T) {
	svc := newTestJWT()

	refresh, _, err := svc.GenerateRefreshToken("admin-1")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", userID)

	access, _, err := svc.GenerateAccessToken(studio.Account{ID: "admin-1", Role: studio.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.Error(t, err)

	_, err = svc.ParseRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := newTestJWT()

	token, expiresIn, err := svc.GenerateSSEToken("mgr-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "mgr-1", userID)

	refresh, _, _ := svc.GenerateRefreshToken("mgr-1")
	_, err = svc.ValidateSSEToken(refresh)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestJWT()

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}

func TestRefreshTokenCookie(t *testing.T) {
	cookie := newTestJWT().RefreshTokenCookie("tok", 1700000000)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}
