package service

import (
	"context"
	"errors"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/cryptox"
	"github.com/chalkboard-sys/registry/pkg/jwtx"
	"github.com/chalkboard-sys/registry/pkg/slogx"
)

// Rotate exchanges a valid refresh token for a fresh pair, revoking both the
// presented refresh token and the access token it is bound to. Rotation is a
// hard cutover: after it succeeds neither spent token is accepted anywhere,
// even before its natural expiry.
//
// Rotation is one-shot. The ledger insert for the refresh fingerprint rides
// on a uniqueness constraint, so of two concurrent rotations presenting the
// same token exactly one commits; the other observes the fingerprint and
// fails. Failure never leaves partial state - all ledger writes share one
// transaction.
func (s *AuthService) Rotate(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Codec.Verify(jwtx.KindRefresh, refreshToken)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.BoundAccessToken == "" {
		return domain.TokenPair{}, ErrInvalidToken
	}

	now := time.Now().UTC()

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// The subject must still exist: a deleted account keeps a signed
		// refresh token until expiry, and rotation is where it gets cut off.
		if _, err := tx.Users().GetUserByID(ctx, claims.Subject); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidToken
			}
			return err
		}

		// Lazy GC: entries past their clear time can never match a live
		// token again, so purging here keeps the ledger bounded.
		if err := tx.RevokedTokens().DeleteExpired(ctx, now); err != nil {
			return err
		}

		// Revoke the spent access token at its own lifetime horizon from
		// now, then the refresh token itself at its horizon. A fingerprint
		// already present means this rotation was replayed.
		spent := []domain.RevokedToken{
			{TokenHash: cryptox.FingerprintToken(claims.BoundAccessToken), ClearAt: now.Add(s.AccessTTL)},
			{TokenHash: cryptox.FingerprintToken(refreshToken), ClearAt: now.Add(s.RefreshTTL)},
		}
		for _, entry := range spent {
			if err := tx.RevokedTokens().Insert(ctx, entry); err != nil {
				if errors.Is(err, store.ErrAlreadyExists) {
					slogx.FromContext(ctx).Warn("refresh token replay detected", "subject", claims.Subject)
					return ErrInvalidToken
				}
				return err
			}
		}

		pair, err = s.mintPair(claims.Subject, now)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return pair, nil
}
