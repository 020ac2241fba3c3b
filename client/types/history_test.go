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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRow(t *testing.T) {
	row, err := ParseRow("Bob\t-30\tlunch with\ttabs")
	assert.NoError(t, err)
	assert.Equal(t, Row{Counterparty: "Bob", Delta: -30, Comment: "lunch with\ttabs"}, row)

	row, err = ParseRow("-\t100\t")
	assert.NoError(t, err)
	assert.Equal(t, Row{Counterparty: "-", Delta: 100}, row)

	_, err = ParseRow("garbage")
	assert.Error(t, err)
	_, err = ParseRow("a\tb\tc")
	assert.Error(t, err)
}

func TestParseBalance(t *testing.T) {
	b, ok := ParseBalance("===== BALANCE: 130 XTS =====")
	assert.True(t, ok)
	assert.Equal(t, int64(130), b)

	_, ok = ParseBalance("Bob\t-30\tlunch")
	assert.False(t, ok)
	_, ok = ParseBalance("===== BALANCE: 130 XTS")
	assert.False(t, ok)
}
