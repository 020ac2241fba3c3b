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
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumDeltas returns the sum of all the deltas of the account log.
func sumDeltas(acc *Account) (int64, int64) {
	var sum, balance int64
	acc.Snapshot(func(records []Record, b int64) {
		for _, r := range records {
			sum += r.Delta
		}
		balance = b
	})
	return sum, balance
}

func TestAliceAndBob(t *testing.T) {
	l := New()
	alice := l.GetOrCreate("Alice")
	bob := l.GetOrCreate("Bob")

	assert.Equal(t, int64(100), alice.Balance())
	assert.Equal(t, []Record{{Delta: 100, Comment: "Initial deposit for Alice"}}, alice.Records())

	err := alice.Transfer(bob, 30, "lunch")
	require.NoError(t, err)
	assert.Equal(t, int64(70), alice.Balance())
	assert.Equal(t, int64(130), bob.Balance())

	aliceLog := alice.Records()
	require.Len(t, aliceLog, 2)
	assert.Equal(t, Record{Counterparty: bob, Delta: -30, Comment: "lunch"}, aliceLog[1])
	bobLog := bob.Records()
	require.Len(t, bobLog, 2)
	assert.Equal(t, Record{Counterparty: alice, Delta: 30, Comment: "lunch"}, bobLog[1])

	err = alice.Transfer(bob, 1000, "too much")
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Equal(t, "Not enough funds: 70 XTS available, 1000 XTS requested", err.Error())
	assert.Equal(t, int64(70), alice.Balance())
	assert.Equal(t, int64(130), bob.Balance())
	assert.Len(t, alice.Records(), 2)
	assert.Len(t, bob.Records(), 2)
}

func TestTransferRejections(t *testing.T) {
	l := New()
	a := l.GetOrCreate("a")
	b := l.GetOrCreate("b")

	tests := []struct {
		to      *Account
		amount  int64
		kind    error
		message string
	}{
		{a, 10, ErrInvalidCounterparty, "Self-transaction"},
		{nil, 10, ErrInvalidCounterparty, "Unknown counterparty"},
		{b, 0, ErrInvalidAmount, "Amount_xts 0 is not valid"},
		{b, -5, ErrInvalidAmount, "Amount_xts -5 is not valid"},
		{b, 101, ErrInsufficientFunds, "Not enough funds: 100 XTS available, 101 XTS requested"},
	}
	for _, tt := range tests {
		err := a.Transfer(tt.to, tt.amount, "nope")
		assert.True(t, errors.Is(err, tt.kind), "amount %d: got %v", tt.amount, err)
		assert.Equal(t, tt.message, err.Error())

		var terr *TransferError
		assert.True(t, errors.As(err, &terr))

		assert.Equal(t, int64(100), a.Balance())
		assert.Equal(t, int64(100), b.Balance())
		assert.Len(t, a.Records(), 1)
		assert.Len(t, b.Records(), 1)
	}

	// the whole balance can be moved
	assert.NoError(t, a.Transfer(b, 100, "all in"))
	assert.Equal(t, int64(0), a.Balance())
	assert.True(t, errors.Is(a.Transfer(b, 1, "empty"), ErrInsufficientFunds))
}

func TestErrorKinds(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidAmount, ErrInsufficientFunds))
	assert.Equal(t, "insufficient funds", ErrInsufficientFunds.Error())
	assert.Equal(t, "unknown(42)", ErrorKind(42).String())
}

func TestReciprocalTransfers(t *testing.T) {
	l := New()
	a := l.GetOrCreate("a")
	b := l.GetOrCreate("b")

	const n = 2000
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			a.Transfer(b, 1, "a->b")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			b.Transfer(a, 1, "b->a")
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("reciprocal transfers deadlocked")
	}

	assert.Equal(t, 2*DefaultBalance, a.Balance()+b.Balance())
	for _, acc := range []*Account{a, b} {
		sum, balance := sumDeltas(acc)
		assert.Equal(t, sum, balance)
		assert.True(t, balance >= 0)
	}
}

func TestTransfersAcrossLedgers(t *testing.T) {
	a := New().GetOrCreate("a")
	b := New().GetOrCreate("b")
	assert.NotEqual(t, a.seq, b.seq)

	const n = 2000
	var wg sync.WaitGroup
	wg.Add(4)
	for _, pair := range [][2]*Account{{a, b}, {b, a}} {
		from, to := pair[0], pair[1]
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				err := from.Transfer(to, 1, "foreign")
				if !errors.Is(err, ErrInvalidCounterparty) {
					t.Errorf("transfer to another ledger: %v", err)
					return
				}
			}
		}()
		// the lock order holds across ledgers too
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				lockPair(from, to)()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("reciprocal transfers across ledgers deadlocked")
	}

	assert.Equal(t, "Unknown counterparty", a.Transfer(b, 1, "x").Error())
	assert.Equal(t, DefaultBalance, a.Balance())
	assert.Equal(t, DefaultBalance, b.Balance())
	assert.Len(t, a.Records(), 1)
	assert.Len(t, b.Records(), 1)
}

func TestConservationUnderLoad(t *testing.T) {
	l := New()
	const (
		accounts = 8
		workers  = 16
		rounds   = 500
	)
	var accs []*Account
	for i := 0; i < accounts; i++ {
		accs = append(accs, l.GetOrCreate(fmt.Sprintf("user-%d", i)))
	}

	stop := make(chan struct{})
	var observers sync.WaitGroup
	observers.Add(1)
	go func() {
		defer observers.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			for _, acc := range accs {
				sum, balance := sumDeltas(acc)
				if sum != balance || balance < 0 {
					t.Errorf("account %s: balance %d, log sum %d", acc.Name(), balance, sum)
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < rounds; i++ {
				from := accs[r.Intn(accounts)]
				to := accs[r.Intn(accounts)]
				err := from.Transfer(to, int64(r.Intn(60)), "load")
				if err != nil {
					var terr *TransferError
					if !errors.As(err, &terr) {
						t.Errorf("unexpected error: %v", err)
					}
				}
			}
		}(int64(w))
	}
	wg.Wait()
	close(stop)
	observers.Wait()

	var total int64
	for _, acc := range accs {
		total += acc.Balance()
		sum, balance := sumDeltas(acc)
		assert.Equal(t, sum, balance)
	}
	assert.Equal(t, DefaultBalance*accounts, total)
}

func TestTransferPairs(t *testing.T) {
	l := New()
	a := l.GetOrCreate("a")
	b := l.GetOrCreate("b")
	c := l.GetOrCreate("c")

	require.NoError(t, a.Transfer(b, 10, "one"))
	require.NoError(t, b.Transfer(c, 20, "two"))
	require.NoError(t, c.Transfer(a, 5, "three"))

	// every non initial record has a partner with the opposite delta
	for _, acc := range []*Account{a, b, c} {
		for _, r := range acc.Records()[1:] {
			found := 0
			for _, pr := range r.Counterparty.Records()[1:] {
				if pr.Counterparty == acc && pr.Delta == -r.Delta && pr.Comment == r.Comment {
					found++
				}
			}
			assert.Equal(t, 1, found, "record %+v of %s", r, acc.Name())
		}
	}
}
