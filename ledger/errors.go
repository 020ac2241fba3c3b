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

import "fmt"

// ErrorKind classifies the reason a transfer was rejected.
type ErrorKind int

const (
	InvalidCounterparty ErrorKind = iota + 1
	InvalidAmount
	InsufficientFunds
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCounterparty:
		return "invalid counterparty"
	case InvalidAmount:
		return "invalid amount"
	case InsufficientFunds:
		return "insufficient funds"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// TransferError is returned by Account.Transfer when the transfer
// is rejected. A rejected transfer never changes any account.
type TransferError struct {
	Kind ErrorKind
	Msg  string
}

func (e *TransferError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is matches any TransferError of the same kind, so that callers
// can test against the sentinels below with errors.Is.
func (e *TransferError) Is(target error) bool {
	t, ok := target.(*TransferError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidCounterparty = &TransferError{Kind: InvalidCounterparty}
	ErrInvalidAmount       = &TransferError{Kind: InvalidAmount}
	ErrInsufficientFunds   = &TransferError{Kind: InsufficientFunds}
)

func errSelfTransfer() error {
	return &TransferError{Kind: InvalidCounterparty, Msg: "Self-transaction"}
}

func errBadAmount(amount int64) error {
	return &TransferError{
		Kind: InvalidAmount,
		Msg:  fmt.Sprintf("Amount_xts %d is not valid", amount),
	}
}

func errNotEnoughFunds(balance, amount int64) error {
	return &TransferError{
		Kind: InsufficientFunds,
		Msg:  fmt.Sprintf("Not enough funds: %d XTS available, %d XTS requested", balance, amount),
	}
}
