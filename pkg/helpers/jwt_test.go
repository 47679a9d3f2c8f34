package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, exp, err := m.GenerateAccessToken("acct-1", true, "sess-1")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.True(t, claims.Admin)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, _, err := m.GenerateRefreshToken("acct-2", false, "sess-2")
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-2", claims.AccountID)
	assert.False(t, claims.Admin)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := testManager()

	access, _, err := m.GenerateAccessToken("acct-3", false, "s")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("acct-3", false, "s")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)
	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	token, _, err := testManager().GenerateAccessToken("acct-4", false, "s")
	require.NoError(t, err)

	other := NewJWTManager("different", "different", time.Hour, time.Hour)
	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("a", "r", -time.Minute, -time.Minute)
	token, _, err := m.GenerateAccessToken("acct-5", false, "s")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := testManager().ParseAccessToken("not.a.token")
	assert.Error(t, err)
}
