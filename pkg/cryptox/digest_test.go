package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chalkboard-sys/registry/pkg/cryptox"
)

func TestDigestPasswordDeterministic(t *testing.T) {
	t.Parallel()

	a := cryptox.DigestPassword("boba", "aboba")
	b := cryptox.DigestPassword("boba", "aboba")
	require.Equal(t, a, b)
}

func TestDigestPasswordVariesByPassword(t *testing.T) {
	t.Parallel()

	require.NotEqual(t,
		cryptox.DigestPassword("boba", "aboba"),
		cryptox.DigestPassword("boba", "wrong"),
	)
}

func TestDigestPasswordVariesByName(t *testing.T) {
	t.Parallel()

	// Same password, different accounts: the name-derived salt must keep
	// the digests apart.
	require.NotEqual(t,
		cryptox.DigestPassword("boba", "hunter2"),
		cryptox.DigestPassword("che", "hunter2"),
	)
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	fp := cryptox.FingerprintToken("some-token")
	require.Len(t, fp, 43)
	require.Equal(t, fp, cryptox.FingerprintToken("some-token"))
	require.NotEqual(t, fp, cryptox.FingerprintToken("other-token"))
}
