package store

import (
	"sort"
	"strconv"

	bolt "go.etcd.io/bbolt"

	. "github.com/elves/keyseq/pkg/store/storedefs"
)

// Parameters for directory history scores.
const (
	DirScoreDecay     = 0.986 // roughly 0.5^(1/50)
	DirScoreIncrement = 10
	DirScorePrecision = 6
)

func init() {
	initDB["initialize directory history table"] = createBucket(bucketDir)
}

func marshalScore(score float64) []byte {
	return []byte(strconv.FormatFloat(score, 'E', DirScorePrecision, 64))
}

func unmarshalScore(data []byte) float64 {
	f, _ := strconv.ParseFloat(string(data), 64)
	return f
}

// AddDir adds a directory to the directory history. The scores of all other
// directories decay, so that recently visited directories rank higher.
func (s *dbStore) AddDir(d string, incFactor float64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDir))

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			score := unmarshalScore(v) * DirScoreDecay
			if err := b.Put(k, marshalScore(score)); err != nil {
				return err
			}
		}

		k := []byte(d)
		score := float64(0)
		if v := b.Get(k); v != nil {
			score = unmarshalScore(v)
		}
		score += DirScoreIncrement * incFactor
		return b.Put(k, marshalScore(score))
	})
}

// DelDir deletes a directory record from history.
func (s *dbStore) DelDir(d string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDir)).Delete([]byte(d))
	})
}

// Dirs lists all directories in the directory history whose names are not
// in the blacklist. The results are ordered by scores in descending order.
func (s *dbStore) Dirs(blacklist map[string]struct{}) ([]Dir, error) {
	var dirs []Dir
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDir)).ForEach(func(k, v []byte) error {
			d := string(k)
			if _, ok := blacklist[d]; !ok {
				dirs = append(dirs, Dir{Path: d, Score: unmarshalScore(v)})
			}
			return nil
		})
	})
	sort.SliceStable(dirs, func(i, j int) bool { return dirs[i].Score > dirs[j].Score })
	return dirs, err
}
