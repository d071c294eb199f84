package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/internal/registry/store/drivers/sqlite"
	"github.com/chalkboard-sys/registry/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, EnsureBaseRoles(context.Background(), st))

	return st
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	codec, err := jwtx.NewCodec("registry-test",
		[]byte("access-signing-key-for-tests"),
		[]byte("refresh-signing-key-for-tests"))
	require.NoError(t, err)
	return codec
}

func newAuthService(t *testing.T, st store.Store) *AuthService {
	t.Helper()

	return &AuthService{
		Codec:      newTestCodec(t),
		Store:      st,
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
}

func TestSignUpAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	summary, err := svc.SignUp(ctx, "boba", "aboba", "")
	require.NoError(t, err)
	require.NotEmpty(t, summary.ID)
	require.Equal(t, "boba", summary.Name)
	require.Equal(t, []string{domain.RoleUser}, summary.Roles)

	t.Run("valid credentials mint a pair", func(t *testing.T) {
		pair, err := svc.Authenticate(ctx, "boba", "aboba")
		require.NoError(t, err)
		require.NotEmpty(t, pair.Access)
		require.NotEmpty(t, pair.Refresh)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "boba", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown name is rejected identically", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "aboba")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate name is refused", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "boba", "other", "")
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("unknown role is refused", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "zhena", "pw", "superuser")
		require.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("failed sign-up leaves no user behind", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "zhena", "pw", "superuser")
		require.ErrorIs(t, err, ErrUnknownRole)

		_, err = svc.SignUp(ctx, "zhena", "pw", domain.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("missing fields are malformed", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "", "pw", "")
		require.ErrorIs(t, err, ErrMalformedRequest)

		_, err = svc.Authenticate(ctx, "boba", "")
		require.ErrorIs(t, err, ErrMalformedRequest)
	})
}

func TestRotateIsOneShot(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	authz := &AuthorizeService{Codec: svc.Codec, Store: st}

	_, err := svc.SignUp(ctx, "boba", "aboba", "")
	require.NoError(t, err)

	pair, err := svc.Authenticate(ctx, "boba", "aboba")
	require.NoError(t, err)

	// Sanity: the fresh access token authorizes.
	_, err = authz.Authorize(ctx, pair.Access, nil)
	require.NoError(t, err)

	next, err := svc.Rotate(ctx, pair.Refresh)
	require.NoError(t, err)
	require.NotEmpty(t, next.Access)
	require.NotEmpty(t, next.Refresh)
	require.NotEqual(t, pair.Access, next.Access)
	require.NotEqual(t, pair.Refresh, next.Refresh)

	t.Run("spent refresh token cannot rotate again", func(t *testing.T) {
		_, err := svc.Rotate(ctx, pair.Refresh)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("spent access token no longer authorizes", func(t *testing.T) {
		_, err := authz.Authorize(ctx, pair.Access, nil)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("fresh pair works end to end", func(t *testing.T) {
		id, err := authz.Authorize(ctx, next.Access, nil)
		require.NoError(t, err)
		require.NotEmpty(t, id.UserID)

		_, err = svc.Rotate(ctx, next.Refresh)
		require.NoError(t, err)
	})
}

func TestRotateRejectsNonRefreshTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	_, err := svc.SignUp(ctx, "boba", "aboba", "")
	require.NoError(t, err)

	pair, err := svc.Authenticate(ctx, "boba", "aboba")
	require.NoError(t, err)

	_, err = svc.Rotate(ctx, pair.Access)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Rotate(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRotateRejectsUnknownSubject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)

	// A well-signed refresh token whose subject was never registered.
	now := time.Now().UTC()
	access, err := svc.Codec.Issue(jwtx.KindAccess,
		jwtx.NewAccessClaims("ghost", svc.Codec.Issuer(), svc.AccessTTL, now))
	require.NoError(t, err)
	refresh, err := svc.Codec.Issue(jwtx.KindRefresh,
		jwtx.NewRefreshClaims("ghost", svc.Codec.Issuer(), access, svc.RefreshTTL, now))
	require.NoError(t, err)

	_, err = svc.Rotate(ctx, refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthorizeRoleChecks(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	authz := &AuthorizeService{Codec: svc.Codec, Store: st}

	_, err := svc.SignUp(ctx, "che", "pw", "")
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, "root", "pw", domain.RoleAdmin)
	require.NoError(t, err)

	chePair, err := svc.Authenticate(ctx, "che", "pw")
	require.NoError(t, err)
	rootPair, err := svc.Authenticate(ctx, "root", "pw")
	require.NoError(t, err)

	t.Run("any verified token passes with no role requirement", func(t *testing.T) {
		_, err := authz.Authorize(ctx, chePair.Access, nil)
		require.NoError(t, err)
	})

	t.Run("default role lacks admin", func(t *testing.T) {
		_, err := authz.Authorize(ctx, chePair.Access, []string{domain.RoleAdmin})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("role requirement is a logical OR", func(t *testing.T) {
		_, err := authz.Authorize(ctx, chePair.Access, []string{domain.RoleAdmin, domain.RoleUser})
		require.NoError(t, err)
	})

	t.Run("admin passes the admin check", func(t *testing.T) {
		_, err := authz.Authorize(ctx, rootPair.Access, []string{domain.RoleAdmin})
		require.NoError(t, err)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		_, err := authz.Authorize(ctx, "garbage", nil)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := authz.Authorize(ctx, chePair.Refresh, nil)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
