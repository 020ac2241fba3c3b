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
	"time"

	"github.com/spf13/cobra"

	"github.com/xtsledger/xtsledger/db"
	_ "github.com/xtsledger/xtsledger/db/badgerdb"
	_ "github.com/xtsledger/xtsledger/db/boltdb"
	"github.com/xtsledger/xtsledger/journal"
	"github.com/xtsledger/xtsledger/log"
)

var (
	dbPath    string
	dbBackend string
	seq       uint64
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Print the transfer journal",
	Long: `Print the transfers recorded in a journal database in sequence
order, or only the one numbered --seq. The server must be stopped since
the database is locked while it runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		d, err := db.Open(dbBackend, dbPath)
		if err != nil {
			log.Fatalf("open journal database failed: %v", err)
		}
		defer d.Close()

		if seq > 0 {
			e, ok, err := journal.Get(d, seq)
			if err != nil {
				log.Fatalf("read journal failed: %v", err)
			}
			if !ok {
				log.Fatalf("journal entry %d not found", seq)
			}
			printEntry(e)
			return
		}

		count := 0
		err = journal.ForEach(d, func(e journal.Entry) error {
			count++
			return printEntry(e)
		})
		if err != nil {
			log.Fatalf("read journal failed: %v", err)
		}
		log.Infof("printed %d journal entries", count)
	},
}

func printEntry(e journal.Entry) error {
	_, err := fmt.Printf("%d\t%s\t%s\t%s\t%d\t%s\n",
		e.Seq, e.Time.Format(time.RFC3339Nano), e.From, e.To, e.Amount, e.Comment)
	return err
}

func init() {
	journalCmd.Flags().StringVarP(&dbPath, "db-path", "", "", "path of the journal database")
	journalCmd.Flags().StringVarP(&dbBackend, "db-backend", "", "bolt", "journal backend: badger or bolt")
	journalCmd.Flags().Uint64VarP(&seq, "seq", "", 0, "print only the entry with this sequence number")
	journalCmd.MarkFlagRequired("db-path")
	rootCmd.AddCommand(journalCmd)
}
