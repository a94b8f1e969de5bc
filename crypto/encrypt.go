package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/secretbox"
)

// NonceSize is the size of a secretbox nonce in bytes.
const NonceSize = 24

// Overhead is the number of bytes the authentication tag adds to a sealed
// seed.
const Overhead = secretbox.Overhead

// Nonce is a 24-byte value used for encryption.
type Nonce [NonceSize]byte

// GenerateNonce creates a cryptographically secure random nonce.
func GenerateNonce() (Nonce, error) {
	var nonce Nonce
	if _, err := rand.Read(nonce[:]); err != nil {
		return Nonce{}, err
	}
	return nonce, nil
}

// EncryptSeed seals a private key seed with a symmetric key using NaCl's
// secretbox, generating a fresh nonce. Nonces are never reused: every call
// draws a new one.
func EncryptSeed(seed [SeedSize]byte, key [KeySize]byte) (Nonce, []byte, error) {
	nonce, err := GenerateNonce()
	if err != nil {
		return Nonce{}, nil, err
	}

	ciphertext := secretbox.Seal(nil, seed[:], (*[NonceSize]byte)(&nonce), (*[KeySize]byte)(&key))

	return nonce, ciphertext, nil
}
