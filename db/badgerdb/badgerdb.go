// Copyright 2026 The xtsledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package badgerdb

import (
	"strings"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"

	"github.com/xtsledger/xtsledger/db"
)

func init() {
	db.Register("badger", New)
}

// Badger has a single keyspace, buckets are emulated with key
// prefixes and a marker key per bucket.
const (
	markerPrefix = "m/"
	dataPrefix   = "b/"
)

type badgerdb struct {
	db *badger.DB
}

// New opens a badger database in the directory path.
func New(path string) (db.Database, error) {
	opts := badger.DefaultOptions(path)
	bd, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger database %s", path)
	}
	return &badgerdb{db: bd}, nil
}

func marker(bucket string) []byte {
	return []byte(markerPrefix + bucket)
}

func prefix(bucket string) []byte {
	return []byte(dataPrefix + bucket + "/")
}

func dataKey(bucket string, key []byte) []byte {
	return append(prefix(bucket), key...)
}

func checkBucket(txn *badger.Txn, bucket string) error {
	_, err := txn.Get(marker(bucket))
	if err == badger.ErrKeyNotFound {
		return errors.Errorf("bucket %s not found", bucket)
	}
	return err
}

func (bd *badgerdb) NewBucket(name string) error {
	if name == "" {
		return errors.New("database bucket name is empty")
	}
	if strings.Contains(name, "/") {
		return errors.Errorf("database bucket name %s contains a slash", name)
	}
	return bd.db.Update(func(txn *badger.Txn) error {
		return txn.Set(marker(name), []byte{})
	})
}

func (bd *badgerdb) Put(bucket string, key, value []byte) error {
	return bd.db.Update(func(txn *badger.Txn) error {
		if err := checkBucket(txn, bucket); err != nil {
			return err
		}
		return txn.Set(dataKey(bucket, key), value)
	})
}

func (bd *badgerdb) Get(bucket string, key []byte) ([]byte, error) {
	var val []byte
	err := bd.db.View(func(txn *badger.Txn) error {
		if err := checkBucket(txn, bucket); err != nil {
			return err
		}
		item, err := txn.Get(dataKey(bucket, key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (bd *badgerdb) ForEach(bucket string, fn func(key, value []byte) error) error {
	return bd.db.View(func(txn *badger.Txn) error {
		if err := checkBucket(txn, bucket); err != nil {
			return err
		}
		p := prefix(bucket)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil)[len(p):], v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (bd *badgerdb) Close() error {
	return bd.db.Close()
}
