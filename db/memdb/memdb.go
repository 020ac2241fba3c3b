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

package memdb

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/xtsledger/xtsledger/db"
)

var errClosed = errors.New("memdb is closed")

func init() {
	db.Register("memory", func(string) (db.Database, error) {
		return New(), nil
	})
}

type memdb struct {
	sync.RWMutex
	buckets map[string]map[string][]byte
}

// New creates a memory-based key-value store which is
// mainly used for testing.
func New() db.Database {
	return &memdb{buckets: make(map[string]map[string][]byte)}
}

func (m *memdb) NewBucket(name string) error {
	m.Lock()
	defer m.Unlock()
	if m.buckets == nil {
		return errClosed
	}
	if _, ok := m.buckets[name]; !ok {
		m.buckets[name] = make(map[string][]byte)
	}
	return nil
}

// Put writes the key/value pair to database.
func (m *memdb) Put(bucket string, key, value []byte) error {
	m.Lock()
	defer m.Unlock()
	b, err := m.bucket(bucket)
	if err != nil {
		return err
	}
	b[string(key)] = append([]byte(nil), value...)
	return nil
}

// Get retrieves the value of the key from database.
func (m *memdb) Get(bucket string, key []byte) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()
	b, err := m.bucket(bucket)
	if err != nil {
		return nil, err
	}
	return b[string(key)], nil
}

func (m *memdb) ForEach(bucket string, fn func(key, value []byte) error) error {
	m.RLock()
	b, err := m.bucket(bucket)
	if err != nil {
		m.RUnlock()
		return err
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	vals := make(map[string][]byte, len(b))
	for k, v := range b {
		vals[k] = v
	}
	m.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := fn([]byte(k), vals[k]); err != nil {
			return err
		}
	}
	return nil
}

// Close drops all the data.
func (m *memdb) Close() error {
	m.Lock()
	defer m.Unlock()
	m.buckets = nil
	return nil
}

func (m *memdb) bucket(name string) (map[string][]byte, error) {
	if m.buckets == nil {
		return nil, errClosed
	}
	b, ok := m.buckets[name]
	if !ok {
		return nil, errors.Errorf("bucket %s not found", name)
	}
	return b, nil
}
