package domain

import "time"

// TokenPair is what sign-in and rotation return: a short-lived access token
// and the longer-lived refresh token bound to it. Neither is persisted.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RevokedToken is a revocation ledger entry. The token is stored as a
// SHA-256 fingerprint; once ClearAt passes the entry can be purged, because
// the clear horizon always sits at or beyond the token's own expiry.
type RevokedToken struct {
	TokenHash string
	ClearAt   time.Time
}
