package crypto

import (
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
)

// ErrDecryptFailed is returned for every authentication failure during seed
// decryption. A wrong key, a tampered ciphertext, and a tampered nonce all
// surface as this single error; secretbox verifies the full Poly1305 tag in
// constant time, so they are indistinguishable in timing as well.
var ErrDecryptFailed = errors.New("decryption failed: message authentication failed")

// DecryptSeed opens a sealed private key seed with a symmetric key.
func DecryptSeed(ciphertext []byte, key [KeySize]byte, nonce Nonce) ([SeedSize]byte, error) {
	if len(ciphertext) != SeedSize+Overhead {
		return [SeedSize]byte{}, ErrDecryptFailed
	}

	plaintext, ok := secretbox.Open(nil, ciphertext, (*[NonceSize]byte)(&nonce), (*[KeySize]byte)(&key))
	if !ok {
		return [SeedSize]byte{}, ErrDecryptFailed
	}

	var seed [SeedSize]byte
	copy(seed[:], plaintext)
	ZeroBytes(plaintext)

	return seed, nil
}
