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

package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtsledger/xtsledger/ledger"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetAccount(t *testing.T) {
	l := ledger.New()
	alice := l.GetOrCreate("alice")
	bob := l.GetOrCreate("bob")
	require.NoError(t, alice.Transfer(bob, 30, "lunch"))
	h := NewHandler(l)

	rec := get(t, h, "/xtsledger/accounts/alice")
	require.Equal(t, http.StatusOK, rec.Code)
	var acc Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acc))
	assert.Equal(t, Account{
		Name:    "alice",
		Balance: 70,
		Transactions: []Transaction{
			{Counterparty: "-", Delta: 100, Comment: "Initial deposit for alice"},
			{Counterparty: "bob", Delta: -30, Comment: "lunch"},
		},
	}, acc)
}

func TestGetUnknownAccount(t *testing.T) {
	l := ledger.New()
	h := NewHandler(l)

	rec := get(t, h, "/xtsledger/accounts/ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	// inspection never creates accounts
	_, ok := l.Lookup("ghost")
	assert.False(t, ok)
}

func TestGetStats(t *testing.T) {
	l := ledger.New()
	l.GetOrCreate("a")
	l.GetOrCreate("b")

	rec := get(t, NewHandler(l), "/xtsledger/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Accounts)
}
