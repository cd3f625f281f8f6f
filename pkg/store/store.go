// Package store implements persistent storage of bindings, abbreviations,
// directory history and bookmarks, backed by a bbolt database.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/elves/keyseq/pkg/logutil"
	. "github.com/elves/keyseq/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Bucket names.
const (
	bucketBinding  = "binding"
	bucketAbbr     = "abbr"
	bucketDir      = "dir"
	bucketBookmark = "bookmark"
)

// Functions that initialize the database, keyed by description. Each file
// that uses a bucket registers its initializer in init.
var initDB = map[string](func(*bolt.Tx) error){}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (Store, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bbolt DB.
func NewStoreFromDB(db *bolt.DB) (Store, error) {
	logger.Println("initializing store")
	st := &dbStore{db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}

func createBucket(name string) func(*bolt.Tx) error {
	return func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	}
}
