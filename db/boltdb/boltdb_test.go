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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtsledger/xtsledger/db"
)

func TestDBOps(t *testing.T) {
	dir, err := os.MkdirTemp("", "boltdb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// open through the registry
	d, err := db.Open("bolt", filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	defer d.Close()

	assert.Error(t, d.NewBucket(""))
	assert.NoError(t, d.NewBucket("TEST"))

	// test get nonexistent key
	val, err := d.Get("TEST", []byte("none"))
	assert.NoError(t, err)
	assert.Nil(t, val)

	// unknown bucket
	_, err = d.Get("MISSING", []byte("none"))
	assert.Error(t, err)
	assert.Error(t, d.Put("MISSING", []byte("k"), []byte("v")))

	// test set key/value pair
	assert.NoError(t, d.Put("TEST", []byte("b"), []byte("2")))
	assert.NoError(t, d.Put("TEST", []byte("a"), []byte("1")))

	val, err = d.Get("TEST", []byte("a"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	// iteration follows key order
	var keys []string
	err = d.ForEach("TEST", func(k, v []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}
