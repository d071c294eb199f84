package service

import (
	"context"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/cryptox"
	"github.com/chalkboard-sys/registry/pkg/jwtx"
)

// AuthorizeService gates every protected operation: it verifies the bearer
// access token and, when required roles are given, checks the caller's live
// role membership. Tokens never carry roles, so revoking a role takes effect
// on the next request rather than at token expiry.
type AuthorizeService struct {
	Codec *jwtx.Codec
	Store store.Store
}

// Authorize validates the raw access token and returns the authenticated
// identity. An empty token fails with ErrNoToken before any store access.
// requiredRoles is a logical OR; empty means any verified token suffices.
func (s *AuthorizeService) Authorize(ctx context.Context, token string, requiredRoles []string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrNoToken
	}

	claims, err := s.Codec.Verify(jwtx.KindAccess, token)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return domain.Identity{}, ErrInvalidToken
	}

	// Rotation is a hard cutover: an access token that was rotated away is
	// refused here too, not just at the rotation endpoint.
	revoked, err := s.Store.RevokedTokens().Exists(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return domain.Identity{}, err
	}
	if revoked {
		return domain.Identity{}, ErrInvalidToken
	}

	if len(requiredRoles) > 0 {
		ok, err := s.Store.Users().HasAnyRole(ctx, claims.Subject, requiredRoles)
		if err != nil {
			return domain.Identity{}, err
		}
		if !ok {
			return domain.Identity{}, ErrForbidden
		}
	}

	return domain.Identity{UserID: claims.Subject}, nil
}
