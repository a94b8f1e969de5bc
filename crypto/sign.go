package crypto

import (
	"crypto/ed25519"
	"errors"
)

// SignatureSize is the size of an Ed25519 signature in bytes.
const SignatureSize = ed25519.SignatureSize

// Signature represents an Ed25519 signature.
type Signature [SignatureSize]byte

// Sign creates an Ed25519 signature for a message using the private key
// seed. Ed25519 is deterministic: the same seed and message always produce
// the same signature.
func Sign(message []byte, seed [SeedSize]byte) (Signature, error) {
	if len(message) == 0 {
		return Signature{}, errors.New("empty message")
	}

	privateKey := ed25519.NewKeyFromSeed(seed[:])
	defer ZeroBytes(privateKey)

	var signature Signature
	copy(signature[:], ed25519.Sign(privateKey, message))

	return signature, nil
}

// Verify checks if a signature is valid for a message and public key.
func Verify(message []byte, signature Signature, publicKey [PublicKeySize]byte) (bool, error) {
	if len(message) == 0 {
		return false, errors.New("empty message")
	}

	return ed25519.Verify(publicKey[:], message, signature[:]), nil
}
