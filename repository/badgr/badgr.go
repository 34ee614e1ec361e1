// Package badgr is an adapter for the badgerDB
package badgr

import (
	"context"
	"time"

	"github.com/dgraph-io/badger"
)

// DefaultTTL is how long an issued word stays excluded from generation.
const DefaultTTL = 24 * time.Hour

// WordRepo stores issued words under `topic\x00word` keys with a TTL, so
// expiry needs no bookkeeping of our own.
type WordRepo struct {
	db  *badger.DB
	ttl time.Duration
}

func New(db *badger.DB, ttl time.Duration) *WordRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &WordRepo{db: db, ttl: ttl}
}

// Add implements repository.WordCache.
func (r *WordRepo) Add(_ context.Context, topic, word string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key(topic, word), nil).WithTTL(r.ttl)
		return txn.SetEntry(e)
	})
}

// Recent implements repository.WordCache.
func (r *WordRepo) Recent(_ context.Context, topic string) ([]string, error) {
	var words []string
	prefix := key(topic, "")
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().Key()
			words = append(words, string(k[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

func key(topic, word string) []byte {
	k := make([]byte, 0, len(topic)+1+len(word))
	k = append(k, topic...)
	k = append(k, 0)
	k = append(k, word...)
	return k
}
