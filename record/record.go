// Package record defines the persisted vault record, its JSON codec, and the
// structural corruption classifier.
//
// The record is the only entity the vault persists. It is created wholesale,
// replaced wholesale, and never partially mutated. Structural validation is
// deliberately independent of cryptographic success: a record can classify
// clean and still hold an undecryptable ciphertext, which only surfaces at
// unlock time as an authentication failure.
package record

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opd-ai/keyvault/crypto"
)

const (
	// SupportedVersion is the record format version this build reads and
	// writes.
	SupportedVersion = 1
	// KindPassword is the only supported record kind.
	KindPassword = "password"
)

// Hex-encoded field lengths. Each raw byte is two hex characters.
const (
	SaltHexLen       = crypto.SaltSize * 2
	NonceHexLen      = crypto.NonceSize * 2
	CiphertextHexLen = (crypto.SeedSize + crypto.Overhead) * 2
	PublicKeyHexLen  = crypto.PublicKeySize * 2
)

// KDFParams describes the key derivation used to protect a record.
type KDFParams struct {
	Name       string `json:"name"`
	Iterations int    `json:"iterations"`
	Hash       string `json:"hash"`
}

// VaultRecord is the persisted vault entity. Byte-valued fields are stored
// hex-encoded.
type VaultRecord struct {
	Version       int       `json:"version"`
	Kind          string    `json:"kind"`
	KDF           KDFParams `json:"kdf"`
	SaltHex       string    `json:"saltHex"`
	NonceHex      string    `json:"nonceHex"`
	CiphertextHex string    `json:"ciphertextHex"`
	PublicKeyHex  string    `json:"publicKeyHex"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// New builds a record around freshly encrypted key material. CreatedAt and
// UpdatedAt are both set to now; overwriting callers keep the new timestamps
// because the record is replaced wholesale.
func New(salt [crypto.SaltSize]byte, nonce crypto.Nonce, ciphertext []byte, publicKey [crypto.PublicKeySize]byte, iterations int, now time.Time) *VaultRecord {
	return &VaultRecord{
		Version: SupportedVersion,
		Kind:    KindPassword,
		KDF: KDFParams{
			Name:       crypto.KDFName,
			Iterations: iterations,
			Hash:       crypto.KDFHash,
		},
		SaltHex:       hex.EncodeToString(salt[:]),
		NonceHex:      hex.EncodeToString(nonce[:]),
		CiphertextHex: hex.EncodeToString(ciphertext),
		PublicKeyHex:  hex.EncodeToString(publicKey[:]),
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
}

// Encode serializes a record to its persisted JSON form.
func Encode(r *VaultRecord) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vault record: %w", err)
	}
	return data, nil
}

// Decode classifies raw stored bytes and, when they are structurally
// well-formed, parses them into a VaultRecord. The record is nil whenever
// the classification is not CorruptionNone.
func Decode(raw []byte) (*VaultRecord, Classification) {
	if c := Classify(raw); c != CorruptionNone {
		return nil, c
	}

	var r VaultRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		// Classify accepted the shape, so only field types can fail here.
		return nil, CorruptionInvalidJSON
	}
	return &r, CorruptionNone
}

// Salt decodes the stored KDF salt.
func (r *VaultRecord) Salt() ([crypto.SaltSize]byte, error) {
	var salt [crypto.SaltSize]byte
	if err := decodeHexInto(salt[:], r.SaltHex, "salt"); err != nil {
		return [crypto.SaltSize]byte{}, err
	}
	return salt, nil
}

// Nonce decodes the stored encryption nonce.
func (r *VaultRecord) Nonce() (crypto.Nonce, error) {
	var nonce crypto.Nonce
	if err := decodeHexInto(nonce[:], r.NonceHex, "nonce"); err != nil {
		return crypto.Nonce{}, err
	}
	return nonce, nil
}

// Ciphertext decodes the stored sealed seed (ciphertext plus tag).
func (r *VaultRecord) Ciphertext() ([]byte, error) {
	ct, err := hex.DecodeString(r.CiphertextHex)
	if err != nil {
		return nil, fmt.Errorf("malformed ciphertext field: %w", err)
	}
	if len(ct) != crypto.SeedSize+crypto.Overhead {
		return nil, fmt.Errorf("ciphertext field has %d bytes, want %d", len(ct), crypto.SeedSize+crypto.Overhead)
	}
	return ct, nil
}

// PublicKey decodes the stored plaintext public key.
func (r *VaultRecord) PublicKey() ([crypto.PublicKeySize]byte, error) {
	var pub [crypto.PublicKeySize]byte
	if err := decodeHexInto(pub[:], r.PublicKeyHex, "public key"); err != nil {
		return [crypto.PublicKeySize]byte{}, err
	}
	return pub, nil
}

func decodeHexInto(dst []byte, hexValue, field string) error {
	raw, err := hex.DecodeString(hexValue)
	if err != nil {
		return fmt.Errorf("malformed %s field: %w", field, err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("%s field has %d bytes, want %d", field, len(raw), len(dst))
	}
	copy(dst, raw)
	return nil
}
