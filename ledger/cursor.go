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

import "context"

// Cursor is a bookmark into the log of one account. Every cursor
// sees every record appended after its position exactly once and
// in log order, independently of other cursors. A cursor must not
// be used by more than one goroutine at a time.
type Cursor struct {
	account *Account
	next    int
}

// Index returns the position of the next record to be read.
func (c *Cursor) Index() int {
	return c.next
}

// WaitNext blocks until the log has a record at the cursor position,
// returns it and advances the cursor. If ctx is done first, the
// cursor is left unchanged and ctx.Err() is returned.
func (c *Cursor) WaitNext(ctx context.Context) (Record, error) {
	a := c.account
	for {
		a.rw.RLock()
		if c.next < len(a.records) {
			r := a.records[c.next]
			a.rw.RUnlock()
			c.next++
			return r, nil
		}
		// grab the channel of the next append before releasing
		// the lock so that no append can slip in unnoticed
		notify := a.notify
		a.rw.RUnlock()

		select {
		case <-notify:
		case <-ctx.Done():
			return Record{}, ctx.Err()
		}
	}
}
