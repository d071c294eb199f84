package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which signing key a token is issued and verified with.
// Access and refresh tokens use distinct keys so one can never stand in
// for the other.
type Kind int

const (
	KindAccess Kind = iota
	KindRefresh
)

func (k Kind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Codec signs and verifies compact stateless bearer tokens. It is a pure
// function of token bytes, key and current time - it never consults any
// revocation state; that is the caller's concern.
type Codec struct {
	issuer     string
	accessKey  []byte
	refreshKey []byte
}

// NewCodec builds a Codec from the two kind-specific HS256 secrets. Both
// keys are required; a missing key is a configuration error the process
// should refuse to start on.
func NewCodec(issuer string, accessKey, refreshKey []byte) (*Codec, error) {
	if len(accessKey) == 0 {
		return nil, errors.New("jwtx: access signing key is empty")
	}
	if len(refreshKey) == 0 {
		return nil, errors.New("jwtx: refresh signing key is empty")
	}
	return &Codec{
		issuer:     issuer,
		accessKey:  accessKey,
		refreshKey: refreshKey,
	}, nil
}

// Issuer returns the iss value stamped on issued claims.
func (c *Codec) Issuer() string { return c.issuer }

// Issue signs claims with the key configured for kind and returns the
// compact token string.
func (c *Codec) Issue(kind Kind, claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.key(kind))
}

// DefaultLeeway is the clock-skew allowance applied to the expiry window
// during Verify. Issuer and verifier are separate processes in deployment.
const DefaultLeeway = 30 * time.Second

// Verify checks the signature against the kind-specific key and the expiry
// window (with DefaultLeeway of skew allowance). It reports ErrMalformed,
// ErrInvalidSig, ErrExpired and ErrNotYetValid distinctly; a token signed
// with the wrong kind's key surfaces as ErrInvalidSig.
func (c *Codec) Verify(kind Kind, raw string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return c.key(kind), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expiry is validated by hand below so the caller gets a distinct
		// error instead of golang-jwt's combined validation error.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, ErrMalformed
		}
		return Claims{}, ErrInvalidSig
	}
	if !tok.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateExpiryWithLeeway(DefaultLeeway); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func (c *Codec) key(kind Kind) []byte {
	if kind == KindRefresh {
		return c.refreshKey
	}
	return c.accessKey
}
