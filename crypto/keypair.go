package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
)

const (
	// SeedSize is the size of an Ed25519 private key seed in bytes.
	SeedSize = 32
	// PublicKeySize is the size of an Ed25519 public key in bytes.
	PublicKeySize = 32
)

// KeyPair represents an Ed25519 identity key pair. Private holds the 32-byte
// seed, not the expanded 64-byte form; the expanded key is reconstructed on
// demand with ed25519.NewKeyFromSeed.
type KeyPair struct {
	Public  [PublicKeySize]byte
	Private [SeedSize]byte
}

// GenerateKeyPair creates a new random Ed25519 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	var seed [SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	return FromSecretKey(seed)
}

// FromSecretKey creates a key pair from an existing private key seed,
// deriving the matching public key.
func FromSecretKey(seed [SeedSize]byte) (*KeyPair, error) {
	if isZeroKey(seed) {
		return nil, errors.New("invalid secret key: all zeros")
	}

	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := priv.Public().(ed25519.PublicKey)

	kp := &KeyPair{Private: seed}
	copy(kp.Public[:], pub)

	ZeroBytes(priv)

	return kp, nil
}

// isZeroKey checks if a key consists of all zeros.
func isZeroKey(key [SeedSize]byte) bool {
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
