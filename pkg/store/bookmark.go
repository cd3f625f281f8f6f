package store

import (
	bolt "go.etcd.io/bbolt"

	. "github.com/elves/keyseq/pkg/store/storedefs"
)

func init() {
	initDB["initialize bookmark table"] = createBucket(bucketBookmark)
}

// SetBookmark sets a named bookmark to a directory.
func (s *dbStore) SetBookmark(name, dir string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBookmark)).Put([]byte(name), []byte(dir))
	})
}

// DelBookmark deletes a bookmark.
func (s *dbStore) DelBookmark(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBookmark)).Delete([]byte(name))
	})
}

// Bookmark returns the directory of a bookmark, or ErrNoBookmark.
func (s *dbStore) Bookmark(name string) (string, error) {
	var dir string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketBookmark)).Get([]byte(name))
		if v == nil {
			return ErrNoBookmark
		}
		dir = string(v)
		return nil
	})
	return dir, err
}

// Bookmarks returns all bookmarks.
func (s *dbStore) Bookmarks() (map[string]string, error) {
	return allPairs(s.db, bucketBookmark)
}
