// Package keyvault implements a password-protected vault for a single
// Ed25519 signing identity.
//
// The private key seed is sealed with NaCl secretbox under a key stretched
// from the user's password with PBKDF2-HMAC-SHA256, and persisted as a
// single JSON record in an abstract byte-level store. The public key is the
// durable, shareable identity and is stored in plaintext; the seed never
// leaves the vault unencrypted except through an explicit, authenticated
// export.
//
// Example:
//
//	store, err := storage.NewFileStore("/path/to/vault")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vault := keyvault.New(store, nil)
//
//	publicKey, err := vault.Create("correct-horse-battery-staple", keyvault.CreateOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Identity:", publicKey)
//
//	signature, err := vault.Sign([]byte("hello"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vault.Lock()
//
// A Vault performs no internal locking: the calling layer serializes
// mutating operations (Create, Unlock, Delete, ImportPrivateKey) against the
// same persisted record. Key derivation always runs to completion; there is
// no cancellation path, because aborting derivation early would itself leak
// timing information.
package keyvault

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/keyvault/crypto"
	"github.com/opd-ai/keyvault/record"
	"github.com/opd-ai/keyvault/storage"
)

// MinPasswordLength is the canonical minimum password length. Stricter
// policies belong in the UI layer, not here.
const MinPasswordLength = 8

// kdfIterations is the PBKDF2 cost written into new records. Tests in this
// package may lower it; there is no exported override, so production builds
// always pay the full cost and cannot be downgraded at runtime.
var kdfIterations = crypto.DefaultIterations

// Options configures a Vault.
type Options struct {
	// Logger receives structured operation logs. Nil uses the logrus
	// standard logger. Log output never contains passwords, derived keys,
	// or seed material.
	Logger *logrus.Logger
}

// Vault is a handle to one password-protected identity. It owns the only
// in-memory copy of the decrypted seed; no other component may retain a
// reference to it beyond a single operation. Multiple independent Vault
// instances may coexist, each over its own store.
type Vault struct {
	store    storage.Store
	log      *logrus.Logger
	unlocked *unlockedState
}

// unlockedState is the in-memory half of the vault. It exists only between
// a successful Create/Unlock/ImportPrivateKey and the next Lock.
type unlockedState struct {
	seed         [crypto.SeedSize]byte
	publicKeyHex string
}

// CreateOptions controls Create behavior.
type CreateOptions struct {
	// MigrateLegacyKey adopts a raw seed stored under the legacy storage
	// key instead of generating a fresh one. The legacy entry is removed
	// after the record is persisted. When no legacy seed exists, a fresh
	// key is generated as usual.
	MigrateLegacyKey bool
	// Overwrite replaces an existing record instead of failing with
	// ErrVaultExists.
	Overwrite bool
}

// ImportOptions controls ImportPrivateKey behavior.
type ImportOptions struct {
	// Overwrite replaces an existing record instead of failing with
	// ErrVaultExists.
	Overwrite bool
}

// New creates a Vault over the given store. The vault starts locked; the
// store may or may not already hold a record.
func New(store storage.Store, options *Options) *Vault {
	log := logrus.StandardLogger()
	if options != nil && options.Logger != nil {
		log = options.Logger
	}
	return &Vault{store: store, log: log}
}

// Create generates a fresh identity (or adopts a legacy seed), seals it
// under the password, persists the record, and leaves the vault unlocked.
// It returns the public key hex.
func (v *Vault) Create(password string, opts CreateOptions) (string, error) {
	logger := v.log.WithFields(logrus.Fields{
		"function":  "Create",
		"overwrite": opts.Overwrite,
		"migrate":   opts.MigrateLegacyKey,
	})

	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, MinPasswordLength)
	}

	_, exists, err := v.store.Read(storage.RecordKey)
	if err != nil {
		return "", fmt.Errorf("failed to read vault record: %w", err)
	}
	if exists && !opts.Overwrite {
		return "", ErrVaultExists
	}

	keyPair, migrated, err := v.createKeyPair(opts.MigrateLegacyKey)
	if err != nil {
		return "", err
	}
	defer crypto.WipeKeyPair(keyPair)

	if err := v.sealAndPersist(password, keyPair); err != nil {
		return "", err
	}

	if migrated {
		if err := v.store.Delete(storage.LegacyKey); err != nil {
			// The record is already persisted; a stale legacy entry is
			// harmless and will be retried on the next migration attempt.
			logger.WithError(err).Warn("Failed to remove migrated legacy key")
		}
	}

	publicKeyHex := hex.EncodeToString(keyPair.Public[:])
	v.setUnlocked(keyPair.Private, publicKeyHex)

	logger.WithField("public_key", publicKeyHex).Info("Vault created")
	return publicKeyHex, nil
}

// createKeyPair produces the identity for a new record: the legacy seed when
// migration is requested and one exists, a fresh random key otherwise.
func (v *Vault) createKeyPair(migrateLegacy bool) (*crypto.KeyPair, bool, error) {
	if migrateLegacy {
		legacy, found, err := v.store.Read(storage.LegacyKey)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read legacy key: %w", err)
		}
		if found {
			defer crypto.ZeroBytes(legacy)

			if len(legacy) == crypto.SeedSize {
				var seed [crypto.SeedSize]byte
				copy(seed[:], legacy)
				keyPair, err := crypto.FromSecretKey(seed)
				crypto.ZeroBytes(seed[:])
				if err == nil {
					return keyPair, true, nil
				}
			}
			// An unusable legacy entry is not fatal; fall through to a
			// fresh key and leave the entry for manual inspection.
			v.log.WithField("function", "Create").Warn("Legacy key unusable, generating fresh identity")
		}
	}

	keyPair, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}
	return keyPair, false, nil
}

// sealAndPersist encrypts the seed under a freshly derived key with a fresh
// salt and nonce, and writes the record wholesale.
func (v *Vault) sealAndPersist(password string, keyPair *crypto.KeyPair) error {
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}

	key := crypto.DeriveKey(password, salt[:], kdfIterations)
	defer crypto.ZeroBytes(key[:])

	nonce, ciphertext, err := crypto.EncryptSeed(keyPair.Private, key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}

	rec := record.New(salt, nonce, ciphertext, keyPair.Public, kdfIterations, time.Now())
	raw, err := record.Encode(rec)
	if err != nil {
		return err
	}

	if err := v.store.Write(storage.RecordKey, raw); err != nil {
		return fmt.Errorf("failed to persist vault record: %w", err)
	}
	return nil
}

// Unlock derives the key from the record's stored salt, decrypts the seed,
// and sets the in-memory unlocked state. Wrong passwords and tampered
// records both fail with ErrPasswordInvalid.
func (v *Vault) Unlock(password string) (string, error) {
	logger := v.log.WithField("function", "Unlock")

	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, MinPasswordLength)
	}

	rec, err := v.readRecord()
	if err != nil {
		return "", err
	}

	keyPair, err := v.openRecord(rec, password)
	if err != nil {
		logger.WithField("kind", ErrorKind(err)).Warn("Unlock failed")
		return "", err
	}
	defer crypto.WipeKeyPair(keyPair)

	publicKeyHex := hex.EncodeToString(keyPair.Public[:])
	v.setUnlocked(keyPair.Private, publicKeyHex)

	logger.WithField("public_key", publicKeyHex).Debug("Vault unlocked")
	return publicKeyHex, nil
}

// readRecord loads and structurally validates the persisted record.
func (v *Vault) readRecord() (*record.VaultRecord, error) {
	raw, exists, err := v.store.Read(storage.RecordKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault record: %w", err)
	}
	if !exists {
		return nil, ErrVaultMissing
	}

	rec, classification := record.Decode(raw)
	if classification != record.CorruptionNone {
		return nil, &CorruptionError{Classification: classification}
	}
	return rec, nil
}

// openRecord runs the full derive-and-decrypt path against a structurally
// valid record. Every cryptographic failure collapses into
// ErrPasswordInvalid, including the identity cross-check between the
// decrypted seed and the record's stored public key.
func (v *Vault) openRecord(rec *record.VaultRecord, password string) (*crypto.KeyPair, error) {
	salt, err := rec.Salt()
	if err != nil {
		return nil, ErrPasswordInvalid
	}
	nonce, err := rec.Nonce()
	if err != nil {
		return nil, ErrPasswordInvalid
	}
	ciphertext, err := rec.Ciphertext()
	if err != nil {
		return nil, ErrPasswordInvalid
	}
	if rec.KDF.Iterations < 1 {
		return nil, ErrPasswordInvalid
	}

	key := crypto.DeriveKey(password, salt[:], rec.KDF.Iterations)
	defer crypto.ZeroBytes(key[:])

	seed, err := crypto.DecryptSeed(ciphertext, key, nonce)
	if err != nil {
		return nil, ErrPasswordInvalid
	}

	keyPair, err := crypto.FromSecretKey(seed)
	crypto.ZeroBytes(seed[:])
	if err != nil {
		return nil, ErrPasswordInvalid
	}

	// The stored plaintext public key must match the identity actually
	// sealed in the ciphertext. A mismatch means the record lies about the
	// identity it protects; it must not unlock.
	storedPub, err := rec.PublicKey()
	if err != nil || keyPair.Public != storedPub {
		crypto.WipeKeyPair(keyPair)
		return nil, ErrPasswordInvalid
	}

	return keyPair, nil
}

// setUnlocked replaces the in-memory unlocked state, wiping any previous
// seed first.
func (v *Vault) setUnlocked(seed [crypto.SeedSize]byte, publicKeyHex string) {
	v.Lock()
	v.unlocked = &unlockedState{seed: seed, publicKeyHex: publicKeyHex}
}

// Lock clears the in-memory unlocked state and wipes the seed buffer. It is
// idempotent and never fails; the persisted record is untouched.
func (v *Vault) Lock() {
	if v.unlocked != nil {
		crypto.ZeroBytes(v.unlocked.seed[:])
		v.unlocked = nil
	}
}

// Delete locks the vault and removes the persisted record. Deleting an
// absent record is not an error.
func (v *Vault) Delete() error {
	v.Lock()
	if err := v.store.Delete(storage.RecordKey); err != nil {
		return fmt.Errorf("failed to delete vault record: %w", err)
	}
	v.log.WithField("function", "Delete").Info("Vault deleted")
	return nil
}

// ExportPrivateKey returns the private key seed as hex. While unlocked the
// in-memory seed is returned and the password is ignored. While locked a
// password is required: the seed is re-derived and decrypted without
// changing the locked state. A locked vault with no password fails with
// ErrVaultLocked.
func (v *Vault) ExportPrivateKey(password string) (string, error) {
	if v.unlocked != nil {
		return hex.EncodeToString(v.unlocked.seed[:]), nil
	}

	if password == "" {
		return "", ErrVaultLocked
	}

	rec, err := v.readRecord()
	if err != nil {
		return "", err
	}

	keyPair, err := v.openRecord(rec, password)
	if err != nil {
		return "", err
	}
	seedHex := hex.EncodeToString(keyPair.Private[:])
	crypto.WipeKeyPair(keyPair)

	return seedHex, nil
}

// ImportPrivateKey replaces the vault identity with a supplied seed,
// re-encrypting it under the given password with a fresh salt and nonce.
// This is the recovery path: the public key is derived from the seed, so
// the restored identity is identical to the one originally exported.
func (v *Vault) ImportPrivateKey(password, privateKeyHex string, opts ImportOptions) (string, error) {
	logger := v.log.WithFields(logrus.Fields{
		"function":  "ImportPrivateKey",
		"overwrite": opts.Overwrite,
	})

	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, MinPasswordLength)
	}

	seedBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("%w: not valid hex", ErrInvalidPrivateKey)
	}
	if len(seedBytes) != crypto.SeedSize {
		crypto.ZeroBytes(seedBytes)
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, crypto.SeedSize, len(seedBytes))
	}

	var seed [crypto.SeedSize]byte
	copy(seed[:], seedBytes)
	crypto.ZeroBytes(seedBytes)

	keyPair, err := crypto.FromSecretKey(seed)
	crypto.ZeroBytes(seed[:])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	defer crypto.WipeKeyPair(keyPair)

	_, exists, err := v.store.Read(storage.RecordKey)
	if err != nil {
		return "", fmt.Errorf("failed to read vault record: %w", err)
	}
	if exists && !opts.Overwrite {
		return "", ErrVaultExists
	}

	if err := v.sealAndPersist(password, keyPair); err != nil {
		return "", err
	}

	publicKeyHex := hex.EncodeToString(keyPair.Public[:])
	v.setUnlocked(keyPair.Private, publicKeyHex)

	logger.WithField("public_key", publicKeyHex).Info("Vault identity imported")
	return publicKeyHex, nil
}

// Sign produces a deterministic Ed25519 signature over message with the
// unlocked identity. It fails with ErrVaultLocked while locked.
func (v *Vault) Sign(message []byte) ([]byte, error) {
	if v.unlocked == nil {
		return nil, ErrVaultLocked
	}

	signature, err := crypto.Sign(message, v.unlocked.seed)
	if err != nil {
		return nil, err
	}
	return signature[:], nil
}

// UnlockedPrivateKey returns a copy of the in-memory seed, or false while
// locked. It is a read-only accessor with no side effects; callers must
// wipe the copy when done.
func (v *Vault) UnlockedPrivateKey() ([]byte, bool) {
	if v.unlocked == nil {
		return nil, false
	}
	seed := make([]byte, crypto.SeedSize)
	copy(seed, v.unlocked.seed[:])
	return seed, true
}

// PublicKeyHex returns the identity's public key from the persisted record
// without requiring a password. The public key is stored in plaintext, so
// this works on a locked vault.
func (v *Vault) PublicKeyHex() (string, error) {
	rec, err := v.readRecord()
	if err != nil {
		return "", err
	}
	return rec.PublicKeyHex, nil
}

// Enabled reports whether a persisted vault record exists. It performs no
// structural validation and no decryption.
func (v *Vault) Enabled() bool {
	_, exists, err := v.store.Read(storage.RecordKey)
	return err == nil && exists
}
