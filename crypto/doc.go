// Package crypto implements the cryptographic primitives for the key vault.
//
// This package provides the building blocks the vault lifecycle is assembled
// from: PBKDF2 password-based key derivation, NaCl secretbox authenticated
// encryption of the identity seed, Ed25519 key pairs and signatures, and
// memory-safe handling of secret material.
//
// # Core Types
//
//   - [KeyPair]: Ed25519 identity key pair (32-byte seed + 32-byte public key)
//   - [Nonce]: 24-byte random nonce for secretbox operations
//   - [Signature]: Ed25519 signature
//
// # Key Derivation
//
// Passwords are stretched into symmetric keys with PBKDF2-HMAC-SHA256:
//
//	salt, _ := crypto.GenerateSalt()
//	key := crypto.DeriveKey(password, salt[:], crypto.DefaultIterations)
//
// Derivation is deterministic: the same password and salt always yield the
// same key. The iteration count is the mechanism that makes offline brute
// force expensive, and it dominates operation latency regardless of whether
// the password is correct.
//
// # Seed Encryption
//
// The 32-byte Ed25519 seed is sealed with NaCl secretbox
// (XSalsa20-Poly1305), which verifies its full-length authentication tag in
// constant time. A wrong key, a tampered ciphertext, and a tampered nonce
// are indistinguishable: all surface as [ErrDecryptFailed].
//
//	nonce, ct, _ := crypto.EncryptSeed(seed, key)
//	seed, err := crypto.DecryptSeed(ct, key, nonce)
//
// # Secure Memory Handling
//
// Sensitive buffers should be wiped once they are no longer needed:
//
//	defer crypto.WipeKeyPair(keyPair)
//	defer crypto.ZeroBytes(derivedKey[:])
package crypto
