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

// Package journal keeps a best-effort audit trail of completed
// transfers. The journal is write-only for the running ledger: it is
// never replayed and may lose its tail if the process dies.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/xtsledger/xtsledger/db"
	"github.com/xtsledger/xtsledger/ledger"
	"github.com/xtsledger/xtsledger/log"
)

const bucket = "TRANSFERS"

// Entry is the stored form of a transfer.
type Entry struct {
	Seq     uint64    `json:"seq"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Amount  int64     `json:"amount"`
	Comment string    `json:"comment"`
	Time    time.Time `json:"time"`
}

// Journal writes transfers to the database from a single goroutine,
// so that writers of the ledger never wait on disk I/O unless the
// buffer is full.
type Journal struct {
	database db.Database

	entryChan chan Entry
	stopChan  chan struct{}
	doneChan  chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a journal on top of the database with room
// for size pending entries.
func New(d db.Database, size int) (*Journal, error) {
	if err := d.NewBucket(bucket); err != nil {
		return nil, errors.Wrap(err, "create journal bucket")
	}
	return &Journal{
		database:  d,
		entryChan: make(chan Entry, size),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}, nil
}

// Start the internal write loop.
func (j *Journal) Start() {
	j.startOnce.Do(func() {
		go j.loop()
	})
}

func (j *Journal) loop() {
	defer close(j.doneChan)
	for {
		select {
		case e := <-j.entryChan:
			j.write(e)
		case <-j.stopChan:
			// flush what is already queued
			for {
				select {
				case e := <-j.entryChan:
					j.write(e)
				default:
					return
				}
			}
		}
	}
}

// Stop flushes the queued entries and stops the write loop.
// A journal cannot be started again once stopped.
func (j *Journal) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChan)
	})
	// never started, nothing to wait for
	j.startOnce.Do(func() {
		close(j.doneChan)
	})
	<-j.doneChan
}

// Record queues the transfer. It has the signature of a ledger
// transfer hook.
func (j *Journal) Record(tr ledger.Transfer) {
	e := Entry{
		Seq:     tr.Seq,
		From:    tr.From,
		To:      tr.To,
		Amount:  tr.Amount,
		Comment: tr.Comment,
		Time:    tr.Time,
	}
	// the send below may win against a closed stopChan
	select {
	case <-j.stopChan:
		log.Warnw("journal stopped, transfer not recorded", "seq", tr.Seq)
		return
	default:
	}
	select {
	case j.entryChan <- e:
	case <-j.stopChan:
		log.Warnw("journal stopped, transfer not recorded", "seq", tr.Seq)
	}
}

func (j *Journal) write(e Entry) {
	b, err := json.Marshal(e)
	if err != nil {
		log.Errorf("encode journal entry %d failed: %v", e.Seq, err)
		return
	}
	if err := j.database.Put(bucket, seqKey(e.Seq), b); err != nil {
		log.Errorw("write journal entry failed", "seq", e.Seq, "err", err)
	}
}

// ForEach visits the stored entries in sequence order.
func ForEach(d db.Database, fn func(Entry) error) error {
	return d.ForEach(bucket, func(k, v []byte) error {
		var e Entry
		if err := json.Unmarshal(v, &e); err != nil {
			return errors.Wrapf(err, "decode journal entry %x", k)
		}
		return fn(e)
	})
}

// Get returns the entry with the given sequence number, false
// if it was never recorded.
func Get(d db.Database, seq uint64) (Entry, bool, error) {
	var e Entry
	v, err := d.Get(bucket, seqKey(seq))
	if err != nil {
		return e, false, err
	}
	if v == nil {
		return e, false, nil
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return e, false, errors.Wrapf(err, "decode journal entry %d", seq)
	}
	return e, true, nil
}

// seqKey encodes the sequence big endian so that the byte
// order of keys follows the numeric order.
func seqKey(seq uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}
