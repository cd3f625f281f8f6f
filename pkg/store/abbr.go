package store

import (
	bolt "go.etcd.io/bbolt"
)

func init() {
	initDB["initialize abbreviation table"] = createBucket(bucketAbbr)
}

// SetAbbr sets an abbreviation.
func (s *dbStore) SetAbbr(abbr, full string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAbbr)).Put([]byte(abbr), []byte(full))
	})
}

// DelAbbr deletes an abbreviation.
func (s *dbStore) DelAbbr(abbr string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAbbr)).Delete([]byte(abbr))
	})
}

// Abbrs returns all abbreviations.
func (s *dbStore) Abbrs() (map[string]string, error) {
	return allPairs(s.db, bucketAbbr)
}

func allPairs(db *bolt.DB, bucket string) (map[string]string, error) {
	m := make(map[string]string)
	err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(k, v []byte) error {
			m[string(k)] = string(v)
			return nil
		})
	})
	return m, err
}
