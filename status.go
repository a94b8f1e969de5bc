package keyvault

import (
	"fmt"

	"github.com/opd-ai/keyvault/record"
	"github.com/opd-ai/keyvault/storage"
)

// VaultStatus aggregates everything a host needs to render the vault's
// state without a password.
type VaultStatus struct {
	// Exists reports whether a record is persisted.
	Exists bool
	// Unlocked reports whether the in-memory identity matches the
	// persisted record's public key.
	Unlocked bool
	// PublicKeyHex is the stored public key, empty when the record is
	// absent or corrupted.
	PublicKeyHex string
	// Corruption is the structural classification of the stored bytes;
	// CorruptionNone for an absent or well-formed record.
	Corruption record.Classification
}

// Status reads and classifies the persisted record and reports the overall
// vault state. No decryption is attempted.
func (v *Vault) Status() (*VaultStatus, error) {
	raw, exists, err := v.store.Read(storage.RecordKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault record: %w", err)
	}
	if !exists {
		return &VaultStatus{Corruption: record.CorruptionNone}, nil
	}

	rec, classification := record.Decode(raw)
	status := &VaultStatus{
		Exists:     true,
		Corruption: classification,
	}
	if classification != record.CorruptionNone {
		return status, nil
	}

	status.PublicKeyHex = rec.PublicKeyHex
	status.Unlocked = v.unlocked != nil && v.unlocked.publicKeyHex == rec.PublicKeyHex
	return status, nil
}

// CheckCorruption classifies the persisted record's structure. An absent
// record classifies as CorruptionNone; use Status to distinguish absence.
func (v *Vault) CheckCorruption() (record.Classification, error) {
	raw, exists, err := v.store.Read(storage.RecordKey)
	if err != nil {
		return record.CorruptionNone, fmt.Errorf("failed to read vault record: %w", err)
	}
	if !exists {
		return record.CorruptionNone, nil
	}
	return record.Classify(raw), nil
}

// CorruptionGuidance returns human-readable recovery guidance for a
// classification, empty for CorruptionNone.
func (v *Vault) CorruptionGuidance(c record.Classification) string {
	return record.Guidance(c)
}
