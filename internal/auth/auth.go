// Package auth implements the session authenticator: issuing signed session
// tokens on a successful credential check and resolving an identity from a
// token carried in the session cookie. The signing secret never leaves this
// package.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials indicates the presented username/password pair does
// not match the configured admin credential.
var ErrInvalidCredentials = errors.New("invalid credentials")

// sessionTTL is the absolute lifetime of an issued token.
const sessionTTL = time.Hour

// Identity is the authenticated identity embedded in a valid session token.
// It is transient: reconstructed from the token on every request, never
// persisted.
type Identity struct {
	Username string
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Authenticator checks credentials and signs/verifies session tokens.
type Authenticator struct {
	secret        []byte
	adminUsername string
	adminPassword string
}

// NewAuthenticator returns an Authenticator signing with secret and accepting
// exactly the given admin credential.
func NewAuthenticator(secret []byte, adminUsername, adminPassword string) *Authenticator {
	return &Authenticator{
		secret:        secret,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// IssueToken checks the presented credentials against the configured admin
// credential and, on success, returns a signed HS256 token embedding the
// username with a one hour expiry. The comparison is constant-time so a
// rejection leaks nothing about how close the guess was.
func (a *Authenticator) IssueToken(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.adminUsername))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.adminPassword))
	if userOK&passOK != 1 {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		Username: username,
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Verify resolves the identity embedded in token. A missing token yields
// nil identity and no clear signal: the request simply proceeds
// unauthenticated. A present but malformed, forged, or expired token also
// yields nil identity, and clearCookie is true so the caller can discard the
// stored token.
func (a *Authenticator) Verify(token string) (identity *Identity, clearCookie bool) {
	if token == "" {
		return nil, false
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, true
	}

	return &Identity{Username: claims.Username}, false
}
