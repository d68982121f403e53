package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var credentialBucket = []byte("credentials")

// BoltStore is a CredentialStore backed by a bbolt database file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) the credential database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("credential store: create dir failed: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("credential store: open failed: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, errBucket := tx.CreateBucketIfNotExists(credentialBucket)
		return errBucket
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("credential store: init bucket failed: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Get returns the stored value for key, or "" when the key is absent.
func (s *BoltStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(credentialBucket).Get([]byte(key)); raw != nil {
			value = string(raw)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("credential store: get %s failed: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (s *BoltStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("credential store: set %s failed: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *BoltStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("credential store: remove %s failed: %w", key, err)
	}
	return nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
