package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chalkboard-sys/registry/pkg/idx"
)

// Default token TTL constants. These provide sensible security defaults but
// can be overridden per-service via configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 1d to 30d.
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// Claims are the token claims used across the service. Tokens deliberately
// carry only subject identity, never role membership - roles are checked
// against live store state at authorization time.
type Claims struct {
	jwt.RegisteredClaims

	// BoundAccessToken is the access token string a refresh token was issued
	// alongside. A refresh token is only valid for rotating the exact access
	// token it names. Empty on access-kind claims.
	BoundAccessToken string `json:"act,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token. Each
// token carries a fresh jti so two tokens minted for the same subject in the
// same second still serialize differently; the revocation ledger depends on
// spent tokens never colliding with freshly minted ones.
func NewAccessClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.New().String(),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// NewRefreshClaims builds claims for a refresh token bound to the given
// access token string.
func NewRefreshClaims(subject, issuer, accessToken string, ttl time.Duration, now time.Time) Claims {
	c := NewAccessClaims(subject, issuer, ttl, now)
	c.BoundAccessToken = accessToken
	return c
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
