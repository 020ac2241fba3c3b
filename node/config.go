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
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/xtsledger/xtsledger/db"
)

// NoDB disables the transfer journal.
const NoDB = "none"

const defaultJournalBuffer = 1024

type Config struct {
	// listen host of the text protocol server, empty for all interfaces
	Host string
	// listen port of the text protocol server, 0 picks a free port
	Port int
	// file receiving the bound port number
	PortFile string
	// address of the HTTP inspection API, empty to disable it
	HTTPAddr string
	// journal database backend
	DBBackend string
	// journal database file path
	DBPath string
	// number of transfers the journal can queue
	JournalBuffer int
	// log file in addition to stderr
	LogFile string
	// debug level logging
	Debug bool
}

func NewConfig(v *viper.Viper) (*Config, error) {
	port := v.GetInt("port")
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("network port %d is out of range", port)
	}

	backend := v.GetString("db_backend")
	if backend == "" {
		backend = NoDB
	}
	if backend != NoDB {
		known := false
		for _, name := range db.Backends() {
			if name == backend {
				known = true
			}
		}
		if !known {
			return nil, fmt.Errorf("db backend %s is unknown", backend)
		}
	}
	if backend != NoDB && backend != "memory" && v.GetString("db_path") == "" {
		return nil, fmt.Errorf("db path is empty for backend %s", backend)
	}

	buffer := v.GetInt("journal_buffer")
	if buffer < 0 {
		return nil, errors.New("journal buffer is negative")
	}
	if buffer == 0 {
		buffer = defaultJournalBuffer
	}

	c := Config{
		Host:          v.GetString("host"),
		Port:          port,
		PortFile:      v.GetString("port_file"),
		HTTPAddr:      v.GetString("http_addr"),
		DBBackend:     backend,
		DBPath:        v.GetString("db_path"),
		JournalBuffer: buffer,
		LogFile:       v.GetString("log_file"),
		Debug:         v.GetBool("debug"),
	}
	return &c, nil
}

// Addr returns the listen address of the text protocol server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
