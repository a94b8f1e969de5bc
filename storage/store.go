// Package storage provides the byte-level secure stores the vault persists
// its record into.
//
// The vault layers its own authenticated encryption over whatever it is
// given, so a Store does not need to provide confidentiality of its own:
// a plain file is as acceptable as the OS keyring.
package storage

// Keys used within a vault storage namespace. At most one vault record
// exists per namespace.
const (
	// RecordKey addresses the single persisted vault record.
	RecordKey = "vault.record"
	// LegacyKey addresses a raw pre-vault private key seed awaiting
	// migration into a vault record.
	LegacyKey = "vault.legacy_seed"
)

// Store is an abstract byte-level key-value store. Absence is reported
// through the boolean, not an error, so callers can distinguish "no vault"
// from an I/O failure.
type Store interface {
	// Read returns the bytes stored under key, or false when the key is
	// absent.
	Read(key string) ([]byte, bool, error)
	// Write stores data under key, replacing any existing value.
	Write(key string, data []byte) error
	// Delete removes the value under key. Deleting an absent key is not an
	// error.
	Delete(key string) error
}

// MemoryStore is an in-memory Store for tests and embedding hosts that
// manage persistence themselves. The zero value is not usable; call
// NewMemoryStore.
type MemoryStore struct {
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Read returns a copy of the stored value so callers cannot alias the
// store's internal buffer.
func (m *MemoryStore) Read(key string) ([]byte, bool, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Write stores a copy of data under key.
func (m *MemoryStore) Write(key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	m.values[key] = stored
	return nil
}

// Delete removes the value under key.
func (m *MemoryStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}
