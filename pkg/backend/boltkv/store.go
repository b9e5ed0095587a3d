package boltkv

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
)

const bucketName = "entries"

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create entries bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}

func (s *Store) Get(key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, backend.ErrClosed
	}

	var value string
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("entries bucket is missing")
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return nil
		}
		value = string(payload)
		found = true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("read entry: %w", err)
	}

	return value, found, nil
}

func (s *Store) Set(key, value string) error {
	if s == nil || s.db == nil {
		return backend.ErrClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("entries bucket is missing")
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}

	return nil
}

func (s *Store) Remove(key string) error {
	if s == nil || s.db == nil {
		return backend.ErrClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("entries bucket is missing")
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	return nil
}
