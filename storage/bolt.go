package storage

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// vaultBucket holds all vault keys within the bbolt database.
var vaultBucket = []byte("vault")

// BoltStore persists values in a bbolt database file. It suits hosts that
// already keep their state in bbolt and want the vault record alongside it.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates a bbolt database at path and ensures the vault
// bucket exists.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(vaultBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create vault bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// Read returns the value stored under key, or false when absent.
func (b *BoltStore) Read(key string) ([]byte, bool, error) {
	var out []byte
	var found bool

	err := b.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(vaultBucket).Get([]byte(key))
		if value == nil {
			return nil
		}
		found = true
		out = make([]byte, len(value))
		copy(out, value)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return out, found, nil
}

// Write stores data under key.
func (b *BoltStore) Write(key string, data []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultBucket).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the value under key.
func (b *BoltStore) Delete(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
