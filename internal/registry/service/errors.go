package service

import "errors"

// Closed failure set for the auth core and record services. Handlers map
// these to HTTP statuses exactly once, at the outer boundary; anything not
// in this set is treated as a store failure.
var (
	// ErrNoToken: the request carried no bearer token at all.
	ErrNoToken = errors.New("no_token")

	// ErrInvalidToken: signature invalid, expired, malformed or revoked.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrForbidden: valid identity that lacks every required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials: name/password mismatch at sign-in.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrDuplicateName: sign-up name collision.
	ErrDuplicateName = errors.New("duplicate_name")

	// ErrUnknownRole: sign-up referenced a role that does not exist.
	ErrUnknownRole = errors.New("unknown_role")

	// ErrMalformedRequest: required fields missing from the request body.
	ErrMalformedRequest = errors.New("malformed_request")
)
