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
	"sync/atomic"
	"time"
)

// Record is one entry of an account log. Records are never
// modified once appended.
type Record struct {
	// Counterparty of the transfer, nil for system entries
	// such as the initial deposit.
	Counterparty *Account
	// Effect on the balance of the account owning the log.
	Delta int64
	// Free text supplied by the sender.
	Comment string
}

// Account holds the balance and the transaction log of one user.
type Account struct {
	name string
	// seq orders accounts for lock acquisition. It is unique in
	// the process and never changes.
	seq    uint64
	ledger *Ledger

	rw      sync.RWMutex
	balance int64
	records []Record
	// notify is closed and replaced on every append to wake
	// all the cursors parked on this account.
	notify chan struct{}
}

func newAccount(l *Ledger, name string, seq uint64) *Account {
	return &Account{
		name:    name,
		seq:     seq,
		ledger:  l,
		balance: DefaultBalance,
		records: []Record{{
			Delta:   DefaultBalance,
			Comment: "Initial deposit for " + name,
		}},
		notify: make(chan struct{}),
	}
}

// Name returns the unique name of the account.
func (a *Account) Name() string {
	return a.name
}

// Balance returns the current balance in XTS.
func (a *Account) Balance() int64 {
	a.rw.RLock()
	defer a.rw.RUnlock()
	return a.balance
}

// Records returns the current log. The returned slice must not
// be modified but may be retained, later appends never touch it.
func (a *Account) Records() []Record {
	a.rw.RLock()
	defer a.rw.RUnlock()
	return a.records[:len(a.records):len(a.records)]
}

// Transfer moves amount XTS from a to the counterparty and appends
// the matching pair of records to both logs. Either all of it
// happens or nothing does.
func (a *Account) Transfer(to *Account, amount int64, comment string) error {
	if to == nil || to.ledger != a.ledger {
		return &TransferError{Kind: InvalidCounterparty, Msg: "Unknown counterparty"}
	}
	if to == a {
		return errSelfTransfer()
	}
	if amount <= 0 {
		return errBadAmount(amount)
	}

	unlock := lockPair(a, to)
	if amount > a.balance {
		balance := a.balance
		unlock()
		return errNotEnoughFunds(balance, amount)
	}

	a.balance -= amount
	to.balance += amount
	a.appendLocked(Record{Counterparty: to, Delta: -amount, Comment: comment})
	to.appendLocked(Record{Counterparty: a, Delta: amount, Comment: comment})

	var seq uint64
	if a.ledger != nil {
		seq = atomic.AddUint64(&a.ledger.transferSeq, 1)
	}
	unlock()

	if a.ledger != nil && a.ledger.onTransfer != nil {
		a.ledger.onTransfer(Transfer{
			Seq:     seq,
			From:    a.name,
			To:      to.name,
			Amount:  amount,
			Comment: comment,
			Time:    time.Now(),
		})
	}
	return nil
}

// Snapshot calls visit with the current log and balance under the
// read lock and returns a cursor positioned right after the last
// record seen by visit. visit runs under the lock and must not
// call back into the account.
func (a *Account) Snapshot(visit func(records []Record, balance int64)) *Cursor {
	a.rw.RLock()
	defer a.rw.RUnlock()
	n := len(a.records)
	if visit != nil {
		visit(a.records[:n:n], a.balance)
	}
	return &Cursor{account: a, next: n}
}

// Monitor returns a cursor positioned at the end of the log.
func (a *Account) Monitor() *Cursor {
	return a.Snapshot(nil)
}

// appendLocked must be called with the write lock held.
func (a *Account) appendLocked(r Record) {
	a.records = append(a.records, r)
	close(a.notify)
	a.notify = make(chan struct{})
}

// lockPair write-locks both accounts in ascending seq order,
// whatever the order of the arguments, and returns the function
// releasing them.
func lockPair(x, y *Account) func() {
	first, second := x, y
	if second.seq < first.seq {
		first, second = second, first
	}
	first.rw.Lock()
	second.rw.Lock()
	return func() {
		second.rw.Unlock()
		first.rw.Unlock()
	}
}
