package crypto

import (
	"bytes"
	"crypto/ed25519"
	"testing"
)

// testIterations keeps KDF-heavy tests fast; production callers use
// DefaultIterations.
const testIterations = 1000

func TestGenerateKeyPair(t *testing.T) {
	keyPair, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	if keyPair == nil {
		t.Fatal("GenerateKeyPair() returned nil key pair")
	}

	if isZeroKey(keyPair.Private) {
		t.Error("GenerateKeyPair() returned zero private key")
	}

	// The public key must be the one Ed25519 derives from the seed.
	expected := ed25519.NewKeyFromSeed(keyPair.Private[:]).Public().(ed25519.PublicKey)
	if !bytes.Equal(keyPair.Public[:], expected) {
		t.Error("GenerateKeyPair() public key does not match seed derivation")
	}

	keyPair2, _ := GenerateKeyPair()
	if bytes.Equal(keyPair.Public[:], keyPair2.Public[:]) {
		t.Error("Multiple GenerateKeyPair() calls produced identical public keys")
	}
}

func TestFromSecretKey(t *testing.T) {
	cases := []struct {
		name      string
		seed      [SeedSize]byte
		wantError bool
	}{
		{
			name:      "Valid seed",
			seed:      [SeedSize]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32},
			wantError: false,
		},
		{
			name:      "Zero seed",
			seed:      [SeedSize]byte{},
			wantError: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keyPair, err := FromSecretKey(tc.seed)

			if tc.wantError {
				if err == nil {
					t.Fatal("FromSecretKey() expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("FromSecretKey() error: %v", err)
			}
			if keyPair.Private != tc.seed {
				t.Error("FromSecretKey() did not preserve the seed")
			}

			// Same seed, same public key.
			keyPair2, _ := FromSecretKey(tc.seed)
			if keyPair.Public != keyPair2.Public {
				t.Error("FromSecretKey() is not deterministic")
			}
		})
	}
}

func TestDeriveKey(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error: %v", err)
	}

	key1 := DeriveKey("correct-horse-battery-staple", salt[:], testIterations)
	key2 := DeriveKey("correct-horse-battery-staple", salt[:], testIterations)
	if key1 != key2 {
		t.Error("DeriveKey() is not deterministic for identical inputs")
	}

	key3 := DeriveKey("totally-wrong-password", salt[:], testIterations)
	if key1 == key3 {
		t.Error("DeriveKey() produced identical keys for different passwords")
	}

	salt2, _ := GenerateSalt()
	key4 := DeriveKey("correct-horse-battery-staple", salt2[:], testIterations)
	if key1 == key4 {
		t.Error("DeriveKey() produced identical keys for different salts")
	}

	key5 := DeriveKey("correct-horse-battery-staple", salt[:], testIterations+1)
	if key1 == key5 {
		t.Error("DeriveKey() produced identical keys for different iteration counts")
	}
}

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error: %v", err)
	}

	salt2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error: %v", err)
	}

	if salt1 == salt2 {
		t.Error("Multiple GenerateSalt() calls produced identical salts")
	}
}

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	if err != nil {
		t.Fatalf("GenerateNonce() error: %v", err)
	}

	nonce2, err := GenerateNonce()
	if err != nil {
		t.Fatalf("GenerateNonce() error: %v", err)
	}

	if nonce1 == nonce2 {
		t.Error("Multiple GenerateNonce() calls produced identical nonces")
	}
}

func TestEncryptDecryptSeed(t *testing.T) {
	var seed [SeedSize]byte
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(255 - i)
	}

	nonce, ciphertext, err := EncryptSeed(seed, key)
	if err != nil {
		t.Fatalf("EncryptSeed() error: %v", err)
	}

	if len(ciphertext) != SeedSize+Overhead {
		t.Errorf("EncryptSeed() ciphertext length = %d, want %d", len(ciphertext), SeedSize+Overhead)
	}

	decrypted, err := DecryptSeed(ciphertext, key, nonce)
	if err != nil {
		t.Fatalf("DecryptSeed() error: %v", err)
	}

	if decrypted != seed {
		t.Error("DecryptSeed() did not recover the original seed")
	}

	// Fresh nonce every call.
	nonce2, ciphertext2, err := EncryptSeed(seed, key)
	if err != nil {
		t.Fatalf("EncryptSeed() error: %v", err)
	}
	if nonce == nonce2 {
		t.Error("EncryptSeed() reused a nonce")
	}
	if bytes.Equal(ciphertext, ciphertext2) {
		t.Error("EncryptSeed() produced identical ciphertexts across calls")
	}
}

func TestDecryptSeedFailures(t *testing.T) {
	var seed [SeedSize]byte
	seed[0] = 1
	var key [KeySize]byte
	key[0] = 2

	nonce, ciphertext, err := EncryptSeed(seed, key)
	if err != nil {
		t.Fatalf("EncryptSeed() error: %v", err)
	}

	t.Run("Wrong key", func(t *testing.T) {
		wrongKey := key
		wrongKey[0] ^= 0xff
		if _, err := DecryptSeed(ciphertext, wrongKey, nonce); err != ErrDecryptFailed {
			t.Errorf("DecryptSeed() error = %v, want ErrDecryptFailed", err)
		}
	})

	t.Run("Tampered ciphertext", func(t *testing.T) {
		tampered := append([]byte(nil), ciphertext...)
		tampered[0] ^= 0x01
		if _, err := DecryptSeed(tampered, key, nonce); err != ErrDecryptFailed {
			t.Errorf("DecryptSeed() error = %v, want ErrDecryptFailed", err)
		}
	})

	t.Run("Tampered nonce", func(t *testing.T) {
		wrongNonce := nonce
		wrongNonce[0] ^= 0x01
		if _, err := DecryptSeed(ciphertext, key, wrongNonce); err != ErrDecryptFailed {
			t.Errorf("DecryptSeed() error = %v, want ErrDecryptFailed", err)
		}
	})

	t.Run("Truncated ciphertext", func(t *testing.T) {
		if _, err := DecryptSeed(ciphertext[:10], key, nonce); err != ErrDecryptFailed {
			t.Errorf("DecryptSeed() error = %v, want ErrDecryptFailed", err)
		}
	})
}

func TestSignAndVerify(t *testing.T) {
	keyPair, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	message := []byte("vault identity test message")

	signature, err := Sign(message, keyPair.Private)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	valid, err := Verify(message, signature, keyPair.Public)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if !valid {
		t.Error("Verify() rejected a valid signature")
	}

	// Ed25519 signatures are deterministic.
	signature2, err := Sign(message, keyPair.Private)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if signature != signature2 {
		t.Error("Sign() produced different signatures for identical inputs")
	}

	// Tampered message must not verify.
	tampered := append([]byte(nil), message...)
	tampered[0] ^= 0x01
	valid, err = Verify(tampered, signature, keyPair.Public)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if valid {
		t.Error("Verify() accepted a signature over a tampered message")
	}

	// Empty messages are rejected before any crypto work.
	if _, err := Sign(nil, keyPair.Private); err == nil {
		t.Error("Sign() accepted an empty message")
	}
	if _, err := Verify(nil, signature, keyPair.Public); err == nil {
		t.Error("Verify() accepted an empty message")
	}
}

func TestSecureWipe(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	if err := SecureWipe(data); err != nil {
		t.Fatalf("SecureWipe() error: %v", err)
	}
	for i, b := range data {
		if b != 0 {
			t.Errorf("SecureWipe() left byte %d = %d", i, b)
		}
	}

	if err := SecureWipe(nil); err == nil {
		t.Error("SecureWipe(nil) expected error but got nil")
	}
}

func TestWipeKeyPair(t *testing.T) {
	keyPair, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	if err := WipeKeyPair(keyPair); err != nil {
		t.Fatalf("WipeKeyPair() error: %v", err)
	}
	if !isZeroKey(keyPair.Private) {
		t.Error("WipeKeyPair() left private key material behind")
	}

	if err := WipeKeyPair(nil); err == nil {
		t.Error("WipeKeyPair(nil) expected error but got nil")
	}
}
