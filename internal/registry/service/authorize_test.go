package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chalkboard-sys/registry/internal/registry/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// The no-token and bad-token paths must never touch the store: the mock has
// no expectations registered, so any query at all fails the test.
func TestAuthorizeFailsFastWithoutStoreAccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	authz := &AuthorizeService{
		Codec: newTestCodec(t),
		Store: sqlite.Wrap(db),
	}

	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		_, err := authz.Authorize(ctx, "", []string{"admin"})
		require.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := authz.Authorize(ctx, "definitely.not.ajwt", nil)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
