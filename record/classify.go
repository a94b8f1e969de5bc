package record

import (
	"encoding/hex"
	"encoding/json"
)

// Classification names the reason a persisted record cannot be trusted
// structurally. It is distinct from a password-related decryption failure:
// classification never involves key material.
type Classification int

const (
	// CorruptionNone means the record is structurally well-formed. It does
	// not guarantee the ciphertext is decryptable.
	CorruptionNone Classification = iota
	// CorruptionInvalidJSON means the stored bytes do not parse as a JSON
	// object.
	CorruptionInvalidJSON
	// CorruptionWrongVersion means the record's version is not the
	// supported one.
	CorruptionWrongVersion
	// CorruptionWrongKind means the record's kind is not "password".
	CorruptionWrongKind
	// CorruptionMissingFields means one or more required fields are absent
	// or not well-formed byte strings of the expected length.
	CorruptionMissingFields
)

// String returns the wire name of the classification.
func (c Classification) String() string {
	switch c {
	case CorruptionNone:
		return "none"
	case CorruptionInvalidJSON:
		return "invalid_json"
	case CorruptionWrongVersion:
		return "wrong_version"
	case CorruptionWrongKind:
		return "wrong_kind"
	case CorruptionMissingFields:
		return "missing_fields"
	default:
		return "unknown"
	}
}

// Classify runs the ordered structural checks over raw stored bytes and
// returns the first failing classification, or CorruptionNone. No
// cryptographic work happens here: a clean classification says nothing about
// whether the ciphertext will decrypt.
func Classify(raw []byte) Classification {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return CorruptionInvalidJSON
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		// Arrays, strings, numbers, and null all parse but are not records.
		return CorruptionInvalidJSON
	}

	version, ok := obj["version"].(float64)
	if !ok || version != SupportedVersion {
		return CorruptionWrongVersion
	}

	kind, ok := obj["kind"].(string)
	if !ok || kind != KindPassword {
		return CorruptionWrongKind
	}

	kdf, ok := obj["kdf"].(map[string]any)
	if !ok {
		return CorruptionMissingFields
	}
	if _, ok := kdf["name"].(string); !ok {
		return CorruptionMissingFields
	}
	if _, ok := kdf["iterations"].(float64); !ok {
		return CorruptionMissingFields
	}
	if _, ok := kdf["hash"].(string); !ok {
		return CorruptionMissingFields
	}

	hexFields := []struct {
		key    string
		length int
	}{
		{"saltHex", SaltHexLen},
		{"nonceHex", NonceHexLen},
		{"ciphertextHex", CiphertextHexLen},
		{"publicKeyHex", PublicKeyHexLen},
	}
	for _, f := range hexFields {
		value, ok := obj[f.key].(string)
		if !ok || len(value) != f.length {
			return CorruptionMissingFields
		}
		if _, err := hex.DecodeString(value); err != nil {
			return CorruptionMissingFields
		}
	}

	for _, key := range []string{"createdAt", "updatedAt"} {
		if _, ok := obj[key].(string); !ok {
			return CorruptionMissingFields
		}
	}

	return CorruptionNone
}

// Guidance maps a classification to human-readable recovery guidance. The
// host presents this text when prompting the user toward recovery-key
// import.
func Guidance(c Classification) string {
	switch c {
	case CorruptionNone:
		return ""
	case CorruptionInvalidJSON:
		return "The stored vault data is unreadable. If you have a backup of your private key, delete the vault and import the key to recover your identity."
	case CorruptionWrongVersion:
		return "The vault was written by an incompatible version of the application. Update the application, or recover by importing your backed-up private key."
	case CorruptionWrongKind:
		return "The vault uses an unsupported protection method. Recover by importing your backed-up private key."
	case CorruptionMissingFields:
		return "The stored vault data is incomplete or damaged. If you have a backup of your private key, delete the vault and import the key to recover your identity."
	default:
		return "The vault is in an unrecognized state. Recover by importing your backed-up private key."
	}
}
