package sqlite

import (
	"context"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

type revokedTokensRepo struct {
	db dbtx
}

func (r *revokedTokensRepo) Insert(ctx context.Context, t domain.RevokedToken) error {
	// A plain INSERT, not INSERT OR IGNORE: the UNIQUE violation is the
	// signal that a concurrent rotation already spent this token.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (token_hash, clear_at) VALUES (?, ?)`,
		t.TokenHash, t.ClearAt,
	)
	return mapConstraint(err)
}

func (r *revokedTokensRepo) Exists(ctx context.Context, tokenHash string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM revoked_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *revokedTokensRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM revoked_tokens WHERE clear_at <= ?`, now,
	)
	return err
}
