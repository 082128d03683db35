// Package token issues and verifies the signed bearer tokens used by the
// API. Signing is symmetric (HS256); verification is stateless, existence
// re-checks against the store happen in the auth middleware.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Issuer signs and verifies bearer tokens embedding a username subject.
type Issuer interface {
	Issue(username string) (string, error)
	Verify(token string) (string, error)
}

// Manager is the HS256 Issuer. Secret and TTL come from configuration.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 60 * time.Minute // single TTL for every issue path
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "go-retail-backoffice",
	}
}

// Issue creates a token with {sub: username, exp: now + ttl}.
func (m *Manager) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    m.issuer,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the subject. It fails with
// ErrInvalidToken if either check fails or the sub claim is absent.
func (m *Manager) Verify(tokenString string) (string, error) {
	t, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || !t.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
