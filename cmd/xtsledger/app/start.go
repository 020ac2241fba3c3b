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
package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xtsledger/xtsledger/log"
	"github.com/xtsledger/xtsledger/node"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ledger server",
	Long: `Start the ledger server with the optional config file, flags given
on the command line take precedence over the config file. The server
runs until it receives SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				log.Fatalf("read config file failed: %v", err)
			}
		}
		c, err := node.NewConfig(viper.GetViper())
		if err != nil {
			log.Fatal(err)
		}
		if c.LogFile != "" {
			if err := log.Initialize(c.LogFile); err != nil {
				log.Fatalf("open log file failed: %v", err)
			}
		}
		if c.Debug {
			log.OpenDebug()
		}
		defer log.Sync()

		n, err := node.NewNode(c)
		if err != nil {
			log.Fatal(err)
		}
		if err := n.Start(); err != nil {
			n.Stop()
			log.Fatal(err)
		}
		fmt.Printf("Listening at %s\n", n.Addr())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		log.Infof("received %v, shutting down", s)
		n.Stop()
	},
}

var cfgFile string

func init() {
	startCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file")
	startCmd.Flags().IntP("port", "p", 0, "listening port, 0 picks a free one")
	startCmd.Flags().String("host", "", "listening host")
	startCmd.Flags().String("port-file", "", "file receiving the listening port")
	startCmd.Flags().String("http", "", "address of the inspection API, disabled if empty")
	startCmd.Flags().String("db-backend", node.NoDB, "journal backend: badger, bolt, memory or none")
	startCmd.Flags().String("db-path", "", "path of the journal database")
	startCmd.Flags().Int("journal-buffer", 1024, "number of transfers queued for the journal")
	startCmd.Flags().String("log-file", "", "log to this file in addition to stderr")
	startCmd.Flags().Bool("debug", false, "enable debug logging")

	for key, flag := range map[string]string{
		"port":           "port",
		"host":           "host",
		"port_file":      "port-file",
		"http_addr":      "http",
		"db_backend":     "db-backend",
		"db_path":        "db-path",
		"journal_buffer": "journal-buffer",
		"log_file":       "log-file",
		"debug":          "debug",
	} {
		viper.BindPFlag(key, startCmd.Flags().Lookup(flag))
	}
	rootCmd.AddCommand(startCmd)
}
