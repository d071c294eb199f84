package cryptox

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Tuned for interactive logins; bump memory before
// iterations if these ever need hardening.
const (
	iterations  = 3
	memory      = 64 * 1024 // KiB
	parallelism = 2
	keyLength   = 32
)

const saltDomain = "registry/credential:"

// DigestPassword returns a deterministic one-way digest of a credential.
//
// The salt is derived from the account name rather than random bytes so the
// whole check collapses into a single (name, digest) equality lookup in the
// store - the query itself encodes the comparison and neither plaintext nor
// stored digest is ever compared out of band. Identical passwords across
// accounts still produce distinct digests.
func DigestPassword(name, password string) string {
	salt := sha256.Sum256([]byte(saltDomain + name))
	sum := argon2.IDKey([]byte(password), salt[:], iterations, memory, parallelism, keyLength)
	return base64.RawURLEncoding.EncodeToString(sum)
}
