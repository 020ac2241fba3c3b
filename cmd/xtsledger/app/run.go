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
	"os"

	"github.com/spf13/cobra"

	"github.com/xtsledger/xtsledger/log"
	"github.com/xtsledger/xtsledger/test"
)

var endpoint string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the series of test cases.",
	Run: func(cmd *cobra.Command, args []string) {
		cases := test.GetAll()
		failed := 0
		for _, c := range cases {
			log.Infow("run the test case", "desc", c.Desc())
			if err := c.Run(endpoint); err != nil {
				failed++
				log.Errorw("testcase failed", "desc", c.Desc(), "err", err.Error())
			}
		}
		log.Infof("finished all the %d testcases, %d failed", len(cases), failed)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&endpoint, "endpoint", "", "", "host:port of the ledger server.")
	runCmd.MarkFlagRequired("endpoint")
	rootCmd.AddCommand(runCmd)
}
