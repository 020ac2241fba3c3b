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
	"fmt"

	"github.com/xtsledger/xtsledger/client"
)

func init() {
	Register(&MonitorStream{})
}

// MonitorStream tests that a monitoring session receives the
// transfers made by other sessions in order.
type MonitorStream struct{}

func (m *MonitorStream) Desc() string {
	return "testcase: monitor stream"
}

func (m *MonitorStream) Run(addr string) error {
	watcherName, senderName := uniqueName("watcher"), uniqueName("sender")

	watcher, err := client.Dial(addr, watcherName, timeout)
	if err != nil {
		return fmt.Errorf("login as watcher failed: %v", err)
	}
	defer watcher.Close()
	h, stream, err := watcher.Monitor(5)
	if err != nil {
		return fmt.Errorf("start monitor failed: %v", err)
	}
	// only the initial deposit exists so far
	if len(h.Rows) != 1 || h.Rows[0].Counterparty != "-" {
		return fmt.Errorf("unexpected monitor history: %+v", h.Rows)
	}

	sender, err := client.Dial(addr, senderName, timeout)
	if err != nil {
		return fmt.Errorf("login as sender failed: %v", err)
	}
	defer sender.Close()
	for i := 1; i <= 3; i++ {
		if err := sender.Transfer(watcherName, int64(i), fmt.Sprintf("tick %d", i)); err != nil {
			return fmt.Errorf("transfer %d failed: %v", i, err)
		}
	}

	for i := 1; i <= 3; i++ {
		row, err := stream.Next(timeout)
		if err != nil {
			return fmt.Errorf("wait for row %d failed: %v", i, err)
		}
		if row.Counterparty != senderName || row.Delta != int64(i) || row.Comment != fmt.Sprintf("tick %d", i) {
			return fmt.Errorf("unexpected streamed row %d: %+v", i, row)
		}
	}
	return nil
}
