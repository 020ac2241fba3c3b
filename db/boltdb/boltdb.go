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

package boltdb

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/xtsledger/xtsledger/db"
)

func init() {
	db.Register("bolt", New)
}

type boltdb struct {
	db *bolt.DB
}

// New opens a bolt database at path. BoltDB obtains a file lock on
// the data file so two processes cannot open the same database.
func New(path string) (db.Database, error) {
	bt, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt database %s", path)
	}
	return &boltdb{db: bt}, nil
}

func (bt *boltdb) NewBucket(name string) error {
	if name == "" {
		return errors.New("database bucket name is empty")
	}
	return bt.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
}

// Put writes the key/value pair to database.
func (bt *boltdb) Put(bucket string, key, value []byte) error {
	return bt.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return errors.Errorf("bucket %s not found", bucket)
		}
		return b.Put(key, value)
	})
}

// Get retrieves the value of the key from database.
func (bt *boltdb) Get(bucket string, key []byte) ([]byte, error) {
	var val []byte
	err := bt.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return errors.Errorf("bucket %s not found", bucket)
		}
		// values are only valid inside the transaction
		if v := b.Get(key); v != nil {
			val = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (bt *boltdb) ForEach(bucket string, fn func(key, value []byte) error) error {
	return bt.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return errors.Errorf("bucket %s not found", bucket)
		}
		return b.ForEach(fn)
	})
}

// Close closes the underlying database.
func (bt *boltdb) Close() error {
	return bt.db.Close()
}
