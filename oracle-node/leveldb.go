package orn

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore is a thin wrapper around goleveldb used as the node's
// persisted ordered key-value store.
type LevelDBStore struct {
	db *leveldb.DB
}

func NewLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key, nil)
}

func (s *LevelDBStore) Has(key []byte) (bool, error) {
	return s.db.Has(key, nil)
}

func (s *LevelDBStore) Put(key, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *LevelDBStore) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

// WriteBatch applies all key/value pairs atomically.
func (s *LevelDBStore) WriteBatch(keys, values [][]byte) error {
	batch := new(leveldb.Batch)
	for i := range keys {
		batch.Put(keys[i], values[i])
	}
	return s.db.Write(batch, nil)
}

// NewIterator iterates all keys sharing the given prefix. The caller must
// release it.
func (s *LevelDBStore) NewIterator(prefix []byte) iterator.Iterator {
	return s.db.NewIterator(util.BytesPrefix(prefix), nil)
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

// IsNotFound reports whether err is the store's missing-key error.
func IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}
