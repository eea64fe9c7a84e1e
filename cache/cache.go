// Package cache stores translations in a bolt database, so that the
// same sequence translated with the same codon table is not
// translated again.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/gotrans/gcode"
)

// log is the global logging variable.
var log = logging.MustGetLogger("cache")

// BUCKET is the bucket name for all translations.
var BUCKET = []byte("translations")

// Record is a stored translation.
type Record struct {
	Table   string    `json:"table"`
	Digest  string    `json:"digest"`
	Protein string    `json:"protein"`
	Codons  int       `json:"codons"`
	Created time.Time `json:"created"`
}

// Cache is a translation store. A nil *Cache is valid and stores
// nothing.
type Cache struct {
	db *bolt.DB
}

// Open opens (or creates) a cache file.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Key returns the cache key for a normalized sequence translated with
// the table.
func Key(table *gcode.Table, seq string) []byte {
	h := sha256.New()
	h.Write([]byte(table.Digest()))
	h.Write([]byte{0})
	h.Write([]byte(seq))
	return []byte(hex.EncodeToString(h.Sum(nil)))
}

// Get returns the record stored under the key, or nil.
func (c *Cache) Get(key []byte) (*Record, error) {
	if c == nil {
		return nil, nil
	}
	b, err := LoadData(c.db, key)
	if err != nil || b == nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decoding cached translation: %w", err)
	}
	log.Debugf("Cache hit %s (%d codons)", key, rec.Codons)
	return &rec, nil
}

// Put stores a record under the key.
func (c *Cache) Put(key []byte, rec *Record) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := SaveData(c.db, key, b); err != nil {
		return fmt.Errorf("saving translation: %w", err)
	}
	log.Debugf("Cached %s", key)
	return nil
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(BUCKET)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// LoadData loads data from bolt database.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(BUCKET)
		if b == nil {
			return nil
		}
		// v is only valid inside the transaction
		if v := b.Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
