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

// Package ledger implements the in-memory XTS ledger: the directory
// of named accounts, atomic transfers between them and blocking
// cursors over the per-account transaction logs.
package ledger

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBalance is the initial deposit credited to every new account.
const DefaultBalance int64 = 100

// Transfer describes a completed transfer. It is handed to the
// transfer hook once both accounts have been unlocked.
type Transfer struct {
	// Ledger-wide sequence number. Transfers sharing an account
	// are numbered in the order they appear in its log.
	Seq     uint64
	From    string
	To      string
	Amount  int64
	Comment string
	Time    time.Time
}

// accountSeq numbers the accounts of all the ledgers of the process,
// it is the lock order of Account.Transfer.
var accountSeq uint64

// Option configures a Ledger.
type Option func(*Ledger)

// WithTransferHook registers fn to be called after every successful
// transfer, in the goroutine that performed it, with no lock held.
func WithTransferHook(fn func(Transfer)) Option {
	return func(l *Ledger) {
		l.onTransfer = fn
	}
}

// Ledger is the directory of all the accounts keyed by name.
// Accounts are never removed, so returned pointers stay valid
// for the lifetime of the ledger.
type Ledger struct {
	// mu only guards the directory itself and is never held
	// together with an account lock.
	mu       sync.Mutex
	accounts map[string]*Account

	// accessed atomically by Account.Transfer
	transferSeq uint64

	onTransfer func(Transfer)
}

func New(opts ...Option) *Ledger {
	l := &Ledger{accounts: make(map[string]*Account)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// GetOrCreate returns the account with the given name, creating it
// with the initial deposit if it does not exist yet. Concurrent calls
// with the same new name all get the same account.
func (l *Ledger) GetOrCreate(name string) *Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[name]; ok {
		return acc
	}
	acc := newAccount(l, name, atomic.AddUint64(&accountSeq, 1))
	l.accounts[name] = acc
	return acc
}

// Lookup returns the account with the given name without creating it.
func (l *Ledger) Lookup(name string) (*Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[name]
	return acc, ok
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accounts)
}
