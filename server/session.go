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

package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xtsledger/xtsledger/ledger"
	"github.com/xtsledger/xtsledger/log"
)

const (
	namePrompt    = "What is your name?"
	historyHeader = "CPTY\tBAL\tCOMM"
)

// session serves the commands of one connected user.
type session struct {
	id     string
	conn   net.Conn
	ledger *ledger.Ledger
	logger *zap.SugaredLogger

	scanner *bufio.Scanner
	writer  *bufio.Writer

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newSession(parent context.Context, l *ledger.Ledger, conn net.Conn) *session {
	ctx, cancel := context.WithCancel(parent)
	id := uuid.New().String()
	return &session{
		id:      id,
		conn:    conn,
		ledger:  l,
		logger:  log.With("session", id, "remote", conn.RemoteAddr().String()),
		scanner: bufio.NewScanner(conn),
		writer:  bufio.NewWriter(conn),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.conn.Close()
	})
}

func (s *session) run() {
	defer s.close()
	s.logger.Infow("client connected", "local", s.conn.LocalAddr().String())
	defer s.logger.Infow("client disconnected")

	// unblock the reads when the server stops
	go func() {
		<-s.ctx.Done()
		s.conn.Close()
	}()

	if err := s.reply(namePrompt); err != nil {
		return
	}
	name, ok := s.readName()
	if !ok {
		return
	}
	user := s.ledger.GetOrCreate(name)
	s.logger = s.logger.With("user", name)
	if err := s.reply("Hi " + name); err != nil {
		return
	}

	for s.scanner.Scan() {
		line := strings.TrimRight(s.scanner.Text(), "\r")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "balance":
			err = s.reply(strconv.FormatInt(user.Balance(), 10))
		case "transfer":
			err = s.transfer(user, line)
		case "transactions":
			_, err = s.history(user, fields)
		case "monitor":
			var cursor *ledger.Cursor
			cursor, err = s.history(user, fields)
			if err == nil {
				s.monitor(cursor)
				return
			}
		default:
			err = s.reply(fmt.Sprintf("Unknown command: '%s'", fields[0]))
		}
		if err != nil {
			s.logger.Debugw("write reply failed", "err", err)
			return
		}
	}
	if err := s.scanner.Err(); err != nil {
		s.logger.Debugw("read command failed", "err", err)
	}
}

// readName returns the first word of the first non blank line.
func (s *session) readName() (string, bool) {
	for s.scanner.Scan() {
		fields := strings.Fields(s.scanner.Text())
		if len(fields) > 0 {
			return fields[0], true
		}
	}
	return "", false
}

func (s *session) transfer(user *ledger.Account, line string) error {
	name, amountText, comment, ok := parseTransfer(line)
	if !ok {
		return s.reply("Usage: transfer <name> <amount> <comment>")
	}
	amount, err := strconv.ParseInt(amountText, 10, 64)
	if err != nil {
		return s.reply(fmt.Sprintf("Amount_xts '%s' is not valid", amountText))
	}

	err = user.Transfer(s.ledger.GetOrCreate(name), amount, comment)
	if err != nil {
		s.logger.Debugw("transfer rejected", "to", name, "amount", amount, "err", err)
		return s.reply(err.Error())
	}
	s.logger.Debugw("transfer done", "to", name, "amount", amount)
	return s.reply("OK")
}

// history writes the last records of the user log followed by the
// balance of the same snapshot and returns a cursor after them.
func (s *session) history(user *ledger.Account, fields []string) (*ledger.Cursor, error) {
	n := 0
	if len(fields) > 1 {
		if v, err := strconv.Atoi(fields[1]); err == nil && v > 0 {
			n = v
		}
	}

	var tail []ledger.Record
	var balance int64
	cursor := user.Snapshot(func(records []ledger.Record, b int64) {
		if len(records) > n {
			records = records[len(records)-n:]
		}
		tail = records
		balance = b
	})

	s.writer.WriteString(historyHeader + "\n")
	for _, r := range tail {
		s.writer.WriteString(formatRecord(r) + "\n")
	}
	return cursor, s.reply(fmt.Sprintf("===== BALANCE: %d XTS =====", balance))
}

// monitor streams new records until the client goes away
// or the server stops.
func (s *session) monitor(cursor *ledger.Cursor) {
	s.logger.Debugw("monitor started", "index", cursor.Index())

	// commands are no longer served, any read error means the
	// client is gone
	go func() {
		for s.scanner.Scan() {
		}
		s.cancel()
	}()

	for {
		r, err := cursor.WaitNext(s.ctx)
		if err != nil {
			s.logger.Debugw("monitor stopped", "index", cursor.Index())
			return
		}
		if err := s.reply(formatRecord(r)); err != nil {
			return
		}
	}
}

func (s *session) reply(line string) error {
	if _, err := s.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return s.writer.Flush()
}

// formatRecord renders a log row, system records have "-"
// as counterparty.
func formatRecord(r ledger.Record) string {
	cpty := "-"
	if r.Counterparty != nil {
		cpty = r.Counterparty.Name()
	}
	return fmt.Sprintf("%s\t%d\t%s", cpty, r.Delta, r.Comment)
}

// parseTransfer splits "transfer <name> <amount> <comment>". The
// comment is the rest of the line after the single separator
// following the amount and may be empty.
func parseTransfer(line string) (name, amount, comment string, ok bool) {
	rest := line
	var words [3]string
	for i := range words {
		rest = strings.TrimLeft(rest, " \t")
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		words[i], rest = rest[:end], rest[end:]
	}
	if words[1] == "" || words[2] == "" {
		return "", "", "", false
	}
	if rest != "" {
		rest = rest[1:]
	}
	return words[1], words[2], rest, true
}
