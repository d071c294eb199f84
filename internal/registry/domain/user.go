package domain

import "time"

// User is an identity record. The auth core creates it at sign-up and reads
// it at sign-in; it never mutates one.
type User struct {
	ID             string
	Name           string
	PasswordDigest string // deterministic argon2id digest, see pkg/cryptox
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserSummary is what sign-up reports back: the created identity and its
// role memberships, with the digest left out.
type UserSummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Identity is the authenticated subject an authorized request runs as.
type Identity struct {
	UserID string
}
