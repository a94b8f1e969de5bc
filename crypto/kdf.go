package crypto

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the production PBKDF2 iteration count. The cost
	// dominates total unlock latency, which keeps wrong-password and
	// right-password attempts in the same order of magnitude.
	DefaultIterations = 250000
	// SaltSize is the size of the KDF salt in bytes.
	SaltSize = 32
	// KeySize is the size of the derived symmetric key in bytes.
	KeySize = 32
)

// KDFName identifies the key derivation function used for vault records.
const KDFName = "pbkdf2"

// KDFHash identifies the hash backing the KDF.
const KDFHash = "sha256"

// DeriveKey stretches a password and salt into a 256-bit symmetric key using
// PBKDF2-HMAC-SHA256. Identical inputs always yield the identical key.
func DeriveKey(password string, salt []byte, iterations int) [KeySize]byte {
	var key [KeySize]byte
	derived := pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha256.New)
	copy(key[:], derived)
	ZeroBytes(derived)
	return key
}

// GenerateSalt creates a cryptographically secure random salt.
func GenerateSalt() ([SaltSize]byte, error) {
	var salt [SaltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return [SaltSize]byte{}, err
	}
	return salt, nil
}
