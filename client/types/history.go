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
	"fmt"
	"strconv"
	"strings"
)

// Row is one transaction line as printed by the server.
type Row struct {
	// Name of the counterparty, "-" for system entries.
	Counterparty string
	// Effect on the balance in XTS.
	Delta int64
	// Comment of the transfer.
	Comment string
}

// History is the reply to a transactions or monitor command.
type History struct {
	Rows    []Row
	Balance int64
}

// ParseRow parses a tab separated transaction line.
func ParseRow(line string) (Row, error) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return Row{}, fmt.Errorf("malformed transaction row %q", line)
	}
	delta, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("malformed delta in row %q: %v", line, err)
	}
	return Row{Counterparty: parts[0], Delta: delta, Comment: parts[2]}, nil
}

// ParseBalance parses the summary line closing a history.
func ParseBalance(line string) (int64, bool) {
	var balance int64
	var rest string
	n, _ := fmt.Sscanf(line, "===== BALANCE: %d XTS %s", &balance, &rest)
	if n != 2 || rest != "=====" {
		return 0, false
	}
	return balance, true
}
