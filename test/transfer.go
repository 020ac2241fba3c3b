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
package test

import (
	"errors"
	"fmt"

	"github.com/xtsledger/xtsledger/client"
	"github.com/xtsledger/xtsledger/ledger"
)

func init() {
	Register(&OneToOneTransfer{})
	Register(&RejectedTransfers{})
}

// OneToOneTransfer tests the correctness of a point-to-point transfer.
type OneToOneTransfer struct{}

func (p *OneToOneTransfer) Desc() string {
	return "testcase: one-to-one transfer"
}

func (p *OneToOneTransfer) Run(addr string) error {
	srcName, dstName := uniqueName("src"), uniqueName("dst")

	src, err := client.Dial(addr, srcName, timeout)
	if err != nil {
		return fmt.Errorf("login as source failed: %v", err)
	}
	defer src.Close()
	if err := expectBalance(src, ledger.DefaultBalance); err != nil {
		return err
	}
	if err := src.Transfer(dstName, 30, "one to one"); err != nil {
		return fmt.Errorf("transfer failed: %v", err)
	}
	if err := expectBalance(src, ledger.DefaultBalance-30); err != nil {
		return err
	}

	dst, err := client.Dial(addr, dstName, timeout)
	if err != nil {
		return fmt.Errorf("login as destination failed: %v", err)
	}
	defer dst.Close()
	h, err := dst.Transactions(1)
	if err != nil {
		return fmt.Errorf("query destination transactions failed: %v", err)
	}
	if h.Balance != ledger.DefaultBalance+30 {
		return fmt.Errorf("destination with unexpected balance: %d", h.Balance)
	}
	if len(h.Rows) != 1 {
		return fmt.Errorf("expect 1 row, got %d", len(h.Rows))
	}
	row := h.Rows[0]
	if row.Counterparty != srcName || row.Delta != 30 || row.Comment != "one to one" {
		return fmt.Errorf("unexpected destination row: %+v", row)
	}
	return nil
}

// RejectedTransfers tests that invalid transfers leave the
// balances untouched.
type RejectedTransfers struct{}

func (p *RejectedTransfers) Desc() string {
	return "testcase: rejected transfers"
}

func (p *RejectedTransfers) Run(addr string) error {
	name := uniqueName("poor")
	c, err := client.Dial(addr, name, timeout)
	if err != nil {
		return fmt.Errorf("login failed: %v", err)
	}
	defer c.Close()

	rejections := []struct {
		to     string
		amount int64
		msg    string
	}{
		{uniqueName("rich"), 101, "Not enough funds: 100 XTS available, 101 XTS requested"},
		{name, 10, "Self-transaction"},
		{uniqueName("rich"), 0, "Amount_xts 0 is not valid"},
	}
	for _, r := range rejections {
		err := c.Transfer(r.to, r.amount, "rejected")
		var rerr *client.RejectedError
		if !errors.As(err, &rerr) {
			return fmt.Errorf("transfer of %d to %s not rejected: %v", r.amount, r.to, err)
		}
		if rerr.Msg != r.msg {
			return fmt.Errorf("unexpected rejection %q, want %q", rerr.Msg, r.msg)
		}
	}
	return expectBalance(c, ledger.DefaultBalance)
}

func expectBalance(c *client.Client, want int64) error {
	balance, err := c.Balance()
	if err != nil {
		return fmt.Errorf("query balance of %s failed: %v", c.Name(), err)
	}
	if balance != want {
		return fmt.Errorf("%s with unexpected balance: %d, want %d", c.Name(), balance, want)
	}
	return nil
}
