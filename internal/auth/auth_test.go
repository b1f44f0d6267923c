package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *Authenticator {
	return NewAuthenticator([]byte("test-secret"), "admin", "hunter2")
}

func TestIssueToken_ValidCredentials(t *testing.T) {
	a := newTestAuthenticator()

	token, err := a.IssueToken("admin", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, clearCookie := a.Verify(token)
	require.NotNil(t, identity)
	assert.Equal(t, "admin", identity.Username)
	assert.False(t, clearCookie)
}

func TestIssueToken_Rejected(t *testing.T) {
	a := newTestAuthenticator()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "letmein"},
		{"wrong username", "root", "hunter2"},
		{"both wrong", "root", "letmein"},
		{"empty credentials", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := a.IssueToken(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}
}

func TestVerify_NoToken(t *testing.T) {
	a := newTestAuthenticator()

	identity, clearCookie := a.Verify("")
	assert.Nil(t, identity)
	assert.False(t, clearCookie, "a missing token is not a stored token to clear")
}

func TestVerify_Garbage(t *testing.T) {
	a := newTestAuthenticator()

	identity, clearCookie := a.Verify("not.a.jwt")
	assert.Nil(t, identity)
	assert.True(t, clearCookie)
}

func TestVerify_WrongSecret(t *testing.T) {
	other := NewAuthenticator([]byte("other-secret"), "admin", "hunter2")
	token, err := other.IssueToken("admin", "hunter2")
	require.NoError(t, err)

	identity, clearCookie := newTestAuthenticator().Verify(token)
	assert.Nil(t, identity)
	assert.True(t, clearCookie)
}

func TestVerify_Expired(t *testing.T) {
	a := newTestAuthenticator()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Username: "admin",
	})
	token, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	identity, clearCookie := a.Verify(token)
	assert.Nil(t, identity)
	assert.True(t, clearCookie)
}

func TestVerify_RejectsUnexpectedSigningMethod(t *testing.T) {
	a := newTestAuthenticator()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "admin"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	identity, clearCookie := a.Verify(token)
	assert.Nil(t, identity)
	assert.True(t, clearCookie)
}
