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
// Package test holds end to end scenarios run against a live
// server through the line protocol client.
package test

import (
	"time"

	"github.com/google/uuid"
)

var cases []TestCase

// Register the input test case in the global cases slice.
func Register(tc TestCase) {
	cases = append(cases, tc)
}

// GetAll returns the registered test cases in registration order.
func GetAll() []TestCase {
	return cases
}

// TestCase abstracts a scenario run against the server at addr.
type TestCase interface {
	Desc() string
	Run(addr string) error
}

// timeout bounds every request of a scenario.
var timeout = 5 * time.Second

// uniqueName returns a user name unused by previous runs, so that
// scenarios can be replayed against a long running server.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}
