package service

import (
	"context"
	"errors"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/cryptox"
	"github.com/chalkboard-sys/registry/pkg/idx"
	"github.com/chalkboard-sys/registry/pkg/jwtx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// AuthService owns sign-up, credential authentication and token rotation.
type AuthService struct {
	Codec      *jwtx.Codec
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// SignUp creates a new user bound to the named role ("user" when omitted).
func (s *AuthService) SignUp(ctx context.Context, name, password, role string) (domain.UserSummary, error) {
	if name == "" || password == "" {
		return domain.UserSummary{}, ErrMalformedRequest
	}
	if role == "" {
		role = domain.RoleUser
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:             idx.New().String(),
		Name:           name,
		PasswordDigest: cryptox.DigestPassword(name, password),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var roles []string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateName
			}
			return err
		}
		if err := tx.Users().AddRole(ctx, u.ID, role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownRole
			}
			return err
		}
		// Read the roles back so the summary reflects what was stored.
		var err error
		roles, err = tx.Users().ListUserRoles(ctx, u.ID)
		return err
	})
	if err != nil {
		return domain.UserSummary{}, err
	}

	return domain.UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Roles: roles,
	}, nil
}

// Authenticate matches (name, digest) in a single store lookup and mints a
// fresh token pair on success.
func (s *AuthService) Authenticate(ctx context.Context, name, password string) (domain.TokenPair, error) {
	if name == "" || password == "" {
		return domain.TokenPair{}, ErrMalformedRequest
	}

	u, err := s.Store.Users().GetUserByCredentials(ctx, name, cryptox.DigestPassword(name, password))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Info("sign-in rejected", "name", name)
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	return s.mintPair(u.ID, time.Now().UTC())
}

// mintPair issues an access token and a refresh token bound to it.
func (s *AuthService) mintPair(subject string, now time.Time) (domain.TokenPair, error) {
	access, err := s.Codec.Issue(jwtx.KindAccess,
		jwtx.NewAccessClaims(subject, s.Codec.Issuer(), s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Codec.Issue(jwtx.KindRefresh,
		jwtx.NewRefreshClaims(subject, s.Codec.Issuer(), access, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}
