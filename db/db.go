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

package db

import (
	"fmt"
	"sort"
	"sync"
)

// Database is the generic bucketed key/value store used
// by the transfer journal.
type Database interface {
	NewBucket(name string) error
	Put(bucket string, key, value []byte) error
	// Get returns a nil value without error for missing keys.
	Get(bucket string, key []byte) ([]byte, error)
	// ForEach visits the pairs of the bucket in ascending key
	// order until fn returns an error.
	ForEach(bucket string, fn func(key, value []byte) error) error
	Close() error
}

// Ctor opens a database at the given path.
type Ctor func(path string) (Database, error)

var (
	mu           sync.RWMutex
	constructors = make(map[string]Ctor)
)

// Register makes a backend available by name, backends call
// it from their init function.
func Register(name string, ctor Ctor) {
	mu.Lock()
	defer mu.Unlock()
	constructors[name] = ctor
}

// Open opens the database with the registered backend.
func Open(name, path string) (Database, error) {
	mu.RLock()
	ctor, ok := constructors[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("database backend %s not registered", name)
	}
	return ctor(path)
}

// Backends returns the sorted names of the registered backends.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()
	var names []string
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
