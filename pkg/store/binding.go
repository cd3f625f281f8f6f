package store

import (
	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	. "github.com/elves/keyseq/pkg/store/storedefs"
)

func init() {
	initDB["initialize binding table"] = createBucket(bucketBinding)
}

// Bindings are keyed by scope and keys, separated by a NUL byte, so that they
// are unique per scope.
func bindingKey(scope, keys string) []byte {
	return []byte(scope + "\x00" + keys)
}

// PutBinding adds a binding, replacing any binding with the same scope and
// keys.
func (s *dbStore) PutBinding(b Binding) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBinding)).Put(bindingKey(b.Scope, b.Keys), data)
	})
}

// DelBinding deletes a binding. It is not an error if the binding does not
// exist.
func (s *dbStore) DelBinding(scope, keys string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBinding)).Delete(bindingKey(scope, keys))
	})
}

// Bindings returns all bindings, ordered by scope and then keys.
func (s *dbStore) Bindings() ([]Binding, error) {
	var bindings []Binding
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBinding)).ForEach(func(k, v []byte) error {
			var b Binding
			if err := yaml.Unmarshal(v, &b); err != nil {
				logger.Printf("bad binding record %q: %v", k, err)
				return nil
			}
			bindings = append(bindings, b)
			return nil
		})
	})
	return bindings, err
}
