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

// Package service serves a read-only JSON view of the ledger.
package service

import (
	"net/http"

	"github.com/emicklei/go-restful"

	"github.com/xtsledger/xtsledger/ledger"
)

// Transaction is the JSON form of a log record.
type Transaction struct {
	Counterparty string `json:"counterparty"`
	Delta        int64  `json:"delta"`
	Comment      string `json:"comment"`
}

// Account is the JSON form of an account with its whole log.
type Account struct {
	Name         string        `json:"name"`
	Balance      int64         `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// Stats summarizes the ledger.
type Stats struct {
	Accounts int `json:"accounts"`
}

type inspector struct {
	ledger *ledger.Ledger
}

// NewHandler creates the http handler of the inspection API.
// It never creates accounts.
func NewHandler(l *ledger.Ledger) http.Handler {
	in := &inspector{ledger: l}

	ws := new(restful.WebService)
	ws.Path("/xtsledger").
		Produces(restful.MIME_JSON)
	ws.Route(ws.GET("/accounts/{name}").To(in.getAccount).
		Param(ws.PathParameter("name", "account name").DataType("string")))
	ws.Route(ws.GET("/stats").To(in.getStats))

	container := restful.NewContainer()
	container.Add(ws)
	return container
}

func (in *inspector) getAccount(request *restful.Request, response *restful.Response) {
	name := request.PathParameter("name")
	acc, ok := in.ledger.Lookup(name)
	if !ok {
		response.WriteErrorString(http.StatusNotFound, "account not found")
		return
	}

	out := Account{Name: acc.Name()}
	acc.Snapshot(func(records []ledger.Record, balance int64) {
		out.Balance = balance
		out.Transactions = make([]Transaction, 0, len(records))
		for _, r := range records {
			tx := Transaction{Counterparty: "-", Delta: r.Delta, Comment: r.Comment}
			if r.Counterparty != nil {
				tx.Counterparty = r.Counterparty.Name()
			}
			out.Transactions = append(out.Transactions, tx)
		}
	})
	response.WriteEntity(out)
}

func (in *inspector) getStats(request *restful.Request, response *restful.Response) {
	response.WriteEntity(Stats{Accounts: in.ledger.Len()})
}
