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

// Package server exposes a ledger over the line oriented text
// protocol, one goroutine per client connection.
package server

import (
	"context"
	"errors"
	"net"
	"sync"

	mapset "github.com/deckarep/golang-set"

	"github.com/xtsledger/xtsledger/ledger"
	"github.com/xtsledger/xtsledger/log"
)

// Server accepts client connections and runs one session for each.
type Server struct {
	ledger   *ledger.Ledger
	listener net.Listener

	// live sessions, closed on Stop
	sessions mapset.Set
	// serializes session registration with Stop
	mu sync.Mutex

	// cancelled on Stop to end monitor streams
	ctx    context.Context
	cancel context.CancelFunc

	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(l *ledger.Ledger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ledger:   l,
		sessions: mapset.NewSet(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Listen binds the server to the TCP address. A zero port picks
// a free one, see Addr.
func (s *Server) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Stop is called. It returns nil
// after a Stop and the accept error otherwise.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return nil
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Temporary() {
				log.Warnw("accept failed, retrying", "err", err)
				continue
			}
			return err
		}

		sess := newSession(s.ctx, s.ledger, conn)
		s.mu.Lock()
		if s.ctx.Err() != nil {
			s.mu.Unlock()
			sess.close()
			return nil
		}
		s.sessions.Add(sess)
		s.wg.Add(1)
		s.mu.Unlock()
		go func() {
			defer s.wg.Done()
			defer s.sessions.Remove(sess)
			sess.run()
		}()
	}
}

// Stop closes the listener and every live session, then waits
// for the session goroutines to return.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.cancel()
		live := s.sessions.ToSlice()
		s.mu.Unlock()
		if s.listener != nil {
			s.listener.Close()
		}
		for _, v := range live {
			v.(*session).close()
		}
	})
	s.wg.Wait()
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	return s.sessions.Cardinality()
}
