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

package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	l := New()
	_, ok := l.Lookup("X")
	assert.False(t, ok)

	x := l.GetOrCreate("X")
	assert.Equal(t, "X", x.Name())
	assert.Same(t, x, l.GetOrCreate("X"))

	found, ok := l.Lookup("X")
	assert.True(t, ok)
	assert.Same(t, x, found)

	y := l.GetOrCreate("Y")
	assert.NotSame(t, x, y)
	assert.NotEqual(t, x.seq, y.seq)
	assert.Equal(t, 2, l.Len())
}

func TestConcurrentGetOrCreate(t *testing.T) {
	l := New()
	const n = 64

	accs := make([]*Account, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			accs[i] = l.GetOrCreate("X")
		}(i)
	}
	close(start)
	wg.Wait()

	for _, acc := range accs {
		assert.Same(t, accs[0], acc)
	}
	assert.Equal(t, 1, l.Len())
	assert.Len(t, accs[0].Records(), 1)
	assert.Equal(t, DefaultBalance, accs[0].Balance())
}

func TestTransferHook(t *testing.T) {
	var mu sync.Mutex
	var transfers []Transfer
	l := New(WithTransferHook(func(tr Transfer) {
		mu.Lock()
		transfers = append(transfers, tr)
		mu.Unlock()
	}))
	a := l.GetOrCreate("a")
	b := l.GetOrCreate("b")

	require.NoError(t, a.Transfer(b, 7, "first"))
	assert.Error(t, a.Transfer(b, 1000, "rejected"))
	require.NoError(t, b.Transfer(a, 3, "second"))

	require.Len(t, transfers, 2)
	assert.Equal(t, uint64(1), transfers[0].Seq)
	assert.Equal(t, "a", transfers[0].From)
	assert.Equal(t, "b", transfers[0].To)
	assert.Equal(t, int64(7), transfers[0].Amount)
	assert.Equal(t, "first", transfers[0].Comment)
	assert.False(t, transfers[0].Time.IsZero())
	assert.Equal(t, uint64(2), transfers[1].Seq)
	assert.Equal(t, "b", transfers[1].From)
}

func TestTransferHookRunsUnlocked(t *testing.T) {
	var l *Ledger
	l = New(WithTransferHook(func(tr Transfer) {
		// both accounts must be readable and writable from the hook
		from := l.GetOrCreate(tr.From)
		to := l.GetOrCreate(tr.To)
		_ = from.Balance()
		_ = to.Records()
	}))
	a := l.GetOrCreate("a")
	b := l.GetOrCreate("b")
	assert.NoError(t, a.Transfer(b, 1, "x"))
}
