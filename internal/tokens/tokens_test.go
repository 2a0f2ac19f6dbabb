package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := NewSessionToken(&SessionClaims{
		Name:             "Test User",
		Email:            "test.user@example.com",
		Role:             "user",
		RegisteredClaims: RegisteredClaimsFor("user-123", time.Hour),
	}, secret)
	require.NoError(t, err)

	claims, err := SessionClaimsFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "test.user@example.com", claims.Email)
	require.Equal(t, "user", claims.Role)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := NewSessionToken(&SessionClaims{
		RegisteredClaims: RegisteredClaimsFor("user-123", time.Hour),
	}, []byte("right"))
	require.NoError(t, err)

	_, err = SessionClaimsFromToken(token, []byte("wrong"))
	require.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := NewSessionToken(&SessionClaims{
		RegisteredClaims: RegisteredClaimsFor("user-123", -time.Minute),
	}, []byte("secret"))
	require.NoError(t, err)

	_, err = SessionClaimsFromToken(token, []byte("secret"))
	require.Error(t, err)
}
