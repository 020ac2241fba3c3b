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

package node

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/xtsledger/xtsledger/db"
	_ "github.com/xtsledger/xtsledger/db/badgerdb"
	_ "github.com/xtsledger/xtsledger/db/boltdb"
	_ "github.com/xtsledger/xtsledger/db/memdb"
	"github.com/xtsledger/xtsledger/journal"
	"github.com/xtsledger/xtsledger/ledger"
	"github.com/xtsledger/xtsledger/log"
	"github.com/xtsledger/xtsledger/server"
	"github.com/xtsledger/xtsledger/service"
)

// Node wires the ledger to its servers and to the journal.
type Node struct {
	config *Config

	database db.Database
	journal  *journal.Journal
	ledger   *ledger.Ledger

	server     *server.Server
	httpServer *http.Server
	httpLn     net.Listener

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewNode creates a Node from the config, the journal database
// is opened here.
func NewNode(conf *Config) (*Node, error) {
	n := &Node{config: conf}

	var opts []ledger.Option
	if conf.DBBackend != NoDB {
		database, err := db.Open(conf.DBBackend, conf.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open journal database failed: %v", err)
		}
		j, err := journal.New(database, conf.JournalBuffer)
		if err != nil {
			database.Close()
			return nil, err
		}
		n.database = database
		n.journal = j
		opts = append(opts, ledger.WithTransferHook(j.Record))
	}

	n.ledger = ledger.New(opts...)
	n.server = server.New(n.ledger)
	if conf.HTTPAddr != "" {
		n.httpServer = &http.Server{
			Addr:    conf.HTTPAddr,
			Handler: service.NewHandler(n.ledger),
		}
	}
	return n, nil
}

// Start binds the listeners and serves in the background.
func (n *Node) Start() error {
	if n.journal != nil {
		n.journal.Start()
	}

	if err := n.server.Listen(n.config.Addr()); err != nil {
		return fmt.Errorf("listen on %s failed: %v", n.config.Addr(), err)
	}
	log.Infof("listening at %s", n.server.Addr())

	if n.config.PortFile != "" {
		port := n.server.Addr().(*net.TCPAddr).Port
		if err := os.WriteFile(n.config.PortFile, []byte(strconv.Itoa(port)), 0644); err != nil {
			return fmt.Errorf("write port file failed: %v", err)
		}
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.server.Serve(); err != nil {
			log.Errorf("text protocol server stopped: %v", err)
		}
	}()

	if n.httpServer != nil {
		ln, err := net.Listen("tcp", n.httpServer.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s failed: %v", n.httpServer.Addr, err)
		}
		n.httpLn = ln
		log.Infof("serving inspection API at %s", ln.Addr())
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			if err := n.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
				log.Errorf("inspection API stopped: %v", err)
			}
		}()
	}
	return nil
}

// Addr returns the address of the text protocol server.
func (n *Node) Addr() net.Addr {
	return n.server.Addr()
}

// HTTPAddr returns the address of the inspection API, nil if disabled.
func (n *Node) HTTPAddr() net.Addr {
	if n.httpLn == nil {
		return nil
	}
	return n.httpLn.Addr()
}

func (n *Node) Ledger() *ledger.Ledger {
	return n.ledger
}

// Stop the servers first so that no transfer is running when
// the journal is flushed and closed.
func (n *Node) Stop() {
	n.stopOnce.Do(func() {
		log.Infow("stopping node", "sessions", n.server.Sessions())
		n.server.Stop()
		if n.httpServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := n.httpServer.Shutdown(ctx); err != nil {
				log.Warnf("shutdown inspection API: %v", err)
			}
			cancel()
		}
		n.wg.Wait()

		if n.journal != nil {
			n.journal.Stop()
		}
		if n.database != nil {
			if err := n.database.Close(); err != nil {
				log.Errorf("close journal database failed: %v", err)
			}
		}
		log.Info("node stopped")
	})
}
