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

// Package client talks to an xtsledger server over its text protocol.
package client

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/xtsledger/xtsledger/client/types"
)

// RejectedError is returned when the server refuses a transfer,
// Msg is the reply line of the server.
type RejectedError struct {
	Msg string
}

func (e *RejectedError) Error() string {
	return e.Msg
}

// Client is a session of one user. It is not safe for concurrent use.
type Client struct {
	name    string
	timeout time.Duration
	conn    net.Conn
	reader  *bufio.Reader
}

// Dial connects to the server at addr and logs in as name. Every
// request must be answered within timeout.
func Dial(addr, name string, timeout time.Duration) (*Client, error) {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return nil, fmt.Errorf("invalid user name %q", name)
	}
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to server failed: %v", err)
	}
	c := &Client{
		name:    name,
		timeout: timeout,
		conn:    conn,
		reader:  bufio.NewReader(conn),
	}

	c.deadline()
	if _, err := c.readLine(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read name prompt failed: %v", err)
	}
	greeting, err := c.Do(name)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if greeting != "Hi "+name {
		conn.Close()
		return nil, fmt.Errorf("unexpected greeting %q", greeting)
	}
	return c, nil
}

// Name returns the user name of the session.
func (c *Client) Name() string {
	return c.name
}

// Close ends the session.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends a raw command line and returns the first reply line.
func (c *Client) Do(line string) (string, error) {
	c.deadline()
	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		return "", fmt.Errorf("send command failed: %v", err)
	}
	return c.readLine()
}

// Balance returns the balance of the user.
func (c *Client) Balance() (int64, error) {
	reply, err := c.Do("balance")
	if err != nil {
		return 0, err
	}
	balance, err := strconv.ParseInt(reply, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected balance reply %q", reply)
	}
	return balance, nil
}

// Transfer sends amount XTS to the named user. A refusal of the
// server is returned as a *RejectedError.
func (c *Client) Transfer(to string, amount int64, comment string) error {
	reply, err := c.Do(fmt.Sprintf("transfer %s %d %s", to, amount, comment))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return &RejectedError{Msg: reply}
	}
	return nil
}

// Transactions returns up to n most recent rows and the balance.
func (c *Client) Transactions(n int) (*types.History, error) {
	return c.history("transactions", n)
}

// Monitor returns up to n most recent rows and switches the session
// to streaming mode. No other command can be sent afterwards.
func (c *Client) Monitor(n int) (*types.History, *Stream, error) {
	h, err := c.history("monitor", n)
	if err != nil {
		return nil, nil, err
	}
	return h, &Stream{c: c}, nil
}

func (c *Client) history(cmd string, n int) (*types.History, error) {
	header, err := c.Do(fmt.Sprintf("%s %d", cmd, n))
	if err != nil {
		return nil, err
	}
	if header != "CPTY\tBAL\tCOMM" {
		return nil, fmt.Errorf("unexpected history header %q", header)
	}
	h := &types.History{}
	for {
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		if balance, ok := types.ParseBalance(line); ok {
			h.Balance = balance
			return h, nil
		}
		row, err := types.ParseRow(line)
		if err != nil {
			return nil, err
		}
		h.Rows = append(h.Rows, row)
	}
}

func (c *Client) deadline() {
	if c.timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
}

func (c *Client) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read reply failed: %v", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Stream delivers the rows pushed by the server in monitor mode.
type Stream struct {
	c *Client
}

// Next waits up to timeout for the next row, a zero timeout
// waits forever.
func (s *Stream) Next(timeout time.Duration) (types.Row, error) {
	if timeout > 0 {
		s.c.conn.SetReadDeadline(time.Now().Add(timeout))
	} else {
		s.c.conn.SetReadDeadline(time.Time{})
	}
	line, err := s.c.readLine()
	if err != nil {
		return types.Row{}, err
	}
	return types.ParseRow(line)
}
