package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chalkboard-sys/registry/pkg/jwtx"
)

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()
	c, err := jwtx.NewCodec("registry-test", []byte("access-secret"), []byte("refresh-secret"))
	require.NoError(t, err)
	return c
}

func TestNewCodecRequiresBothKeys(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewCodec("iss", nil, []byte("r"))
	require.Error(t, err)

	_, err = jwtx.NewCodec("iss", []byte("a"), nil)
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)
	now := time.Now().UTC()

	raw, err := c.Issue(jwtx.KindAccess, jwtx.NewAccessClaims("user-1", c.Issuer(), time.Minute, now))
	require.NoError(t, err)

	claims, err := c.Verify(jwtx.KindAccess, raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "registry-test", claims.Issuer)
	require.Empty(t, claims.BoundAccessToken)
}

func TestRefreshClaimsCarryBoundAccessToken(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)
	now := time.Now().UTC()

	access, err := c.Issue(jwtx.KindAccess, jwtx.NewAccessClaims("user-1", c.Issuer(), time.Minute, now))
	require.NoError(t, err)

	raw, err := c.Issue(jwtx.KindRefresh, jwtx.NewRefreshClaims("user-1", c.Issuer(), access, time.Hour, now))
	require.NoError(t, err)

	claims, err := c.Verify(jwtx.KindRefresh, raw)
	require.NoError(t, err)
	require.Equal(t, access, claims.BoundAccessToken)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)
	now := time.Now().UTC()

	// A refresh-signed token must not verify under the access key.
	raw, err := c.Issue(jwtx.KindRefresh, jwtx.NewRefreshClaims("user-1", c.Issuer(), "tok", time.Hour, now))
	require.NoError(t, err)

	_, err = c.Verify(jwtx.KindAccess, raw)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	theirs, err := jwtx.NewCodec("other", []byte("other-access"), []byte("other-refresh"))
	require.NoError(t, err)
	raw, err := theirs.Issue(jwtx.KindAccess, jwtx.NewAccessClaims("user-1", "other", time.Minute, now))
	require.NoError(t, err)

	_, err = newTestCodec(t).Verify(jwtx.KindAccess, raw)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	issued := time.Now().UTC().Add(-2 * time.Minute)
	raw, err := c.Issue(jwtx.KindAccess, jwtx.NewAccessClaims("user-1", c.Issuer(), time.Minute, issued))
	require.NoError(t, err)

	_, err = c.Verify(jwtx.KindAccess, raw)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyToleratesSkewWithinLeeway(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	// Expired ten seconds ago: inside the clock-skew leeway, still accepted.
	issued := time.Now().UTC().Add(-70 * time.Second)
	raw, err := c.Issue(jwtx.KindAccess, jwtx.NewAccessClaims("user-1", c.Issuer(), time.Minute, issued))
	require.NoError(t, err)

	_, err = c.Verify(jwtx.KindAccess, raw)
	require.NoError(t, err)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	_, err := c.Verify(jwtx.KindAccess, "definitely-not-a-jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestVerifyRejectsTampered(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)
	now := time.Now().UTC()

	raw, err := c.Issue(jwtx.KindAccess, jwtx.NewAccessClaims("user-1", c.Issuer(), time.Minute, now))
	require.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, err = c.Verify(jwtx.KindAccess, tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestValidateExpiryWithLeeway(t *testing.T) {
	t.Parallel()

	claims := jwtx.NewAccessClaims("u", "iss", -10*time.Second, time.Now().UTC())
	require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	require.NoError(t, claims.ValidateExpiryWithLeeway(time.Minute))
}
