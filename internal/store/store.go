// Package store is the on-device key-value persistence layer: resource
// snapshots for the cache fallback, the current session (bearer token), and
// small app flags. Backed by BoltDB with an in-memory promotion cache for
// hot-path reads.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/misanthropic-codes/sports360/internal/domain"
)

// Bucket names
var (
	bucketSnapshots = []byte("snapshots")
	bucketSession   = []byte("session")
	bucketMeta      = []byte("meta")
)

const (
	keySession   = "current"
	keyOnboarded = "onboarded"
)

// Store persists client state using BoltDB. With an empty base directory it
// runs memory-only (tests, ephemeral runs).
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open creates or opens the on-device store. The database lives in a
// per-server subdirectory so switching servers never mixes cached data.
func Open(baseDir, serverURL string) (*Store, error) {
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "sports360.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSnapshots, bucketSession, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	// Clear from memory cache
	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Snapshots (domain.Snapshots) ===

// LoadSnapshot reads the last persisted payload for a resource key
func (s *Store) LoadSnapshot(key string, dest any) bool {
	return s.get(bucketSnapshots, key, dest)
}

// SaveSnapshot stores the last known-good payload for a resource key
func (s *Store) SaveSnapshot(key string, value any) error {
	return s.set(bucketSnapshots, key, value)
}

// DeleteSnapshot removes the persisted payload for a resource key
func (s *Store) DeleteSnapshot(key string) {
	s.delete(bucketSnapshots, key)
}

// === Session ===

func (s *Store) SaveSession(sess domain.Session) error {
	return s.set(bucketSession, keySession, sess)
}

func (s *Store) LoadSession() (domain.Session, bool) {
	var sess domain.Session
	ok := s.get(bucketSession, keySession, &sess)
	return sess, ok && sess.Token != ""
}

func (s *Store) ClearSession() {
	s.delete(bucketSession, keySession)
}

// === App flags ===

func (s *Store) SetOnboarded(done bool) error {
	return s.set(bucketMeta, keyOnboarded, done)
}

func (s *Store) HasOnboarded() bool {
	var done bool
	if !s.get(bucketMeta, keyOnboarded, &done) {
		return false
	}
	return done
}

// ClearAll wipes every bucket. Used on logout so a different account never
// sees the previous account's cached data.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSnapshots, bucketSession, bucketMeta} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
