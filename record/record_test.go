package record

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/keyvault/crypto"
)

func validRecord(t *testing.T) *VaultRecord {
	t.Helper()

	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	key := crypto.DeriveKey("test-password-record", salt[:], 1000)
	nonce, ct, err := crypto.EncryptSeed(kp.Private, key)
	require.NoError(t, err)

	return New(salt, nonce, ct, kp.Public, crypto.DefaultIterations, time.Now())
}

// mutate round-trips a record through a generic map so tests can damage
// individual fields the way real on-disk corruption would.
func mutate(t *testing.T, r *VaultRecord, fn func(map[string]any)) []byte {
	t.Helper()

	raw, err := Encode(r)
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(raw, &obj))
	fn(obj)

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	return out
}

func TestClassifyValidRecord(t *testing.T) {
	raw, err := Encode(validRecord(t))
	require.NoError(t, err)

	assert.Equal(t, CorruptionNone, Classify(raw))
}

func TestClassifyInvalidJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"Truncated", []byte(`{"version": 1, "kind": "pass`)},
		{"Array", []byte(`[1, 2, 3]`)},
		{"Null", []byte(`null`)},
		{"String", []byte(`"vault"`)},
		{"Empty", []byte(``)},
		{"Garbage", []byte{0x00, 0xff, 0x7f}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, CorruptionInvalidJSON, Classify(tc.raw))
		})
	}
}

func TestClassifyWrongVersion(t *testing.T) {
	r := validRecord(t)

	for _, version := range []float64{0, 2} {
		raw := mutate(t, r, func(obj map[string]any) {
			obj["version"] = version
		})
		assert.Equal(t, CorruptionWrongVersion, Classify(raw), "version %v", version)
	}

	raw := mutate(t, r, func(obj map[string]any) {
		delete(obj, "version")
	})
	assert.Equal(t, CorruptionWrongVersion, Classify(raw))
}

func TestClassifyWrongKind(t *testing.T) {
	r := validRecord(t)

	raw := mutate(t, r, func(obj map[string]any) {
		obj["kind"] = "biometric"
	})
	assert.Equal(t, CorruptionWrongKind, Classify(raw))

	raw = mutate(t, r, func(obj map[string]any) {
		delete(obj, "kind")
	})
	assert.Equal(t, CorruptionWrongKind, Classify(raw))
}

func TestClassifyMissingFields(t *testing.T) {
	r := validRecord(t)

	cases := []struct {
		name string
		fn   func(map[string]any)
	}{
		{"Missing saltHex", func(obj map[string]any) { delete(obj, "saltHex") }},
		{"Missing nonceHex", func(obj map[string]any) { delete(obj, "nonceHex") }},
		{"Missing ciphertextHex", func(obj map[string]any) { delete(obj, "ciphertextHex") }},
		{"Missing publicKeyHex", func(obj map[string]any) { delete(obj, "publicKeyHex") }},
		{"Missing kdf", func(obj map[string]any) { delete(obj, "kdf") }},
		{"Missing kdf iterations", func(obj map[string]any) {
			delete(obj["kdf"].(map[string]any), "iterations")
		}},
		{"Missing createdAt", func(obj map[string]any) { delete(obj, "createdAt") }},
		{"Salt wrong length", func(obj map[string]any) {
			obj["saltHex"] = strings.Repeat("ab", crypto.SaltSize-1)
		}},
		{"Salt not hex", func(obj map[string]any) {
			obj["saltHex"] = strings.Repeat("zz", crypto.SaltSize)
		}},
		{"Public key wrong type", func(obj map[string]any) {
			obj["publicKeyHex"] = 42
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, CorruptionMissingFields, Classify(mutate(t, r, tc.fn)))
		})
	}
}

func TestClassifyOrder(t *testing.T) {
	// Version is checked before kind: a record wrong on both classifies as
	// wrong_version.
	raw := mutate(t, validRecord(t), func(obj map[string]any) {
		obj["version"] = float64(2)
		obj["kind"] = "biometric"
	})
	assert.Equal(t, CorruptionWrongVersion, Classify(raw))

	// Kind is checked before field presence.
	raw = mutate(t, validRecord(t), func(obj map[string]any) {
		obj["kind"] = "biometric"
		delete(obj, "saltHex")
	})
	assert.Equal(t, CorruptionWrongKind, Classify(raw))
}

func TestDecodeRoundTrip(t *testing.T) {
	original := validRecord(t)

	raw, err := Encode(original)
	require.NoError(t, err)

	decoded, classification := Decode(raw)
	require.Equal(t, CorruptionNone, classification)
	require.NotNil(t, decoded)

	assert.Equal(t, original.Version, decoded.Version)
	assert.Equal(t, original.Kind, decoded.Kind)
	assert.Equal(t, original.KDF, decoded.KDF)
	assert.Equal(t, original.SaltHex, decoded.SaltHex)
	assert.Equal(t, original.NonceHex, decoded.NonceHex)
	assert.Equal(t, original.CiphertextHex, decoded.CiphertextHex)
	assert.Equal(t, original.PublicKeyHex, decoded.PublicKeyHex)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
}

func TestDecodeCorruptRecord(t *testing.T) {
	decoded, classification := Decode([]byte(`not json at all`))
	assert.Nil(t, decoded)
	assert.Equal(t, CorruptionInvalidJSON, classification)
}

func TestRecordAccessors(t *testing.T) {
	r := validRecord(t)

	salt, err := r.Salt()
	require.NoError(t, err)
	assert.Len(t, salt[:], crypto.SaltSize)

	nonce, err := r.Nonce()
	require.NoError(t, err)
	assert.Len(t, nonce[:], crypto.NonceSize)

	ct, err := r.Ciphertext()
	require.NoError(t, err)
	assert.Len(t, ct, crypto.SeedSize+crypto.Overhead)

	pub, err := r.PublicKey()
	require.NoError(t, err)
	assert.Len(t, pub[:], crypto.PublicKeySize)
}

func TestClassificationString(t *testing.T) {
	cases := map[Classification]string{
		CorruptionNone:          "none",
		CorruptionInvalidJSON:   "invalid_json",
		CorruptionWrongVersion:  "wrong_version",
		CorruptionWrongKind:     "wrong_kind",
		CorruptionMissingFields: "missing_fields",
	}
	for c, want := range cases {
		assert.Equal(t, want, c.String())
	}
}

func TestGuidance(t *testing.T) {
	assert.Empty(t, Guidance(CorruptionNone))

	for _, c := range []Classification{
		CorruptionInvalidJSON,
		CorruptionWrongVersion,
		CorruptionWrongKind,
		CorruptionMissingFields,
	} {
		assert.NotEmpty(t, Guidance(c), c.String())
	}
}
