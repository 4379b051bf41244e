/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package storage keeps pallet state in a cache.Cache. All mutation goes
// through Store.Update, which runs one unit of work against a write overlay
// and commits it as a single batch, or drops it when the work fails.
package storage

import (
	"bytes"
	"sort"
	"sync"

	"github.com/CESSProject/iris-node/pkg/cache"
	"github.com/pkg/errors"
)

var ErrReadOnly = errors.New("write in read-only transaction")

type Store struct {
	lock sync.RWMutex
	db   cache.Cache
}

func New(db cache.Cache) *Store {
	return &Store{db: db}
}

// Update runs fn with exclusive access. Writes become visible only if fn
// returns nil, after which the registered commit hooks run in order.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	tx := newTx(s.db, false)
	if err := fn(tx); err != nil {
		return err
	}
	if err := s.db.Write(tx.batch()); err != nil {
		return errors.Wrap(err, "[commit]")
	}
	for _, hook := range tx.hooks {
		hook()
	}
	return nil
}

// View runs fn against committed state. Any write returns ErrReadOnly.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return fn(newTx(s.db, true))
}

func (s *Store) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.db.Close()
}

type entry struct {
	value   []byte
	deleted bool
}

type Tx struct {
	db       cache.Reader
	readOnly bool
	writes   map[string]entry
	hooks    []func()
}

func newTx(db cache.Reader, readOnly bool) *Tx {
	return &Tx{
		db:       db,
		readOnly: readOnly,
		writes:   make(map[string]entry),
	}
}

// OnCommit registers fn to run once the transaction has been committed.
func (tx *Tx) OnCommit(fn func()) {
	tx.hooks = append(tx.hooks, fn)
}

func (tx *Tx) ReadOnly() bool {
	return tx.readOnly
}

func (tx *Tx) get(key []byte) ([]byte, bool, error) {
	if e, ok := tx.writes[string(key)]; ok {
		if e.deleted {
			return nil, false, nil
		}
		return e.value, true, nil
	}
	val, err := tx.db.Get(key)
	if err != nil {
		if errors.Is(err, cache.NotFound) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "[get]")
	}
	return val, true, nil
}

func (tx *Tx) put(key, value []byte) error {
	if tx.readOnly {
		return ErrReadOnly
	}
	tx.writes[string(key)] = entry{value: value}
	return nil
}

func (tx *Tx) del(key []byte) error {
	if tx.readOnly {
		return ErrReadOnly
	}
	tx.writes[string(key)] = entry{deleted: true}
	return nil
}

// iterate visits committed keys merged with the overlay, in key order.
func (tx *Tx) iterate(prefix []byte, fn func(key, value []byte) bool) error {
	merged := make(map[string][]byte)
	err := tx.db.Iterate(prefix, func(k, v []byte) bool {
		merged[string(k)] = v
		return true
	})
	if err != nil {
		return errors.Wrap(err, "[iterate]")
	}
	for k, e := range tx.writes {
		if !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		if e.deleted {
			delete(merged, k)
		} else {
			merged[k] = e.value
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fn([]byte(k), merged[k]) {
			break
		}
	}
	return nil
}

func (tx *Tx) batch() *cache.Batch {
	b := cache.NewBatch()
	for k, e := range tx.writes {
		if e.deleted {
			b.Delete([]byte(k))
		} else {
			b.Put([]byte(k), e.value)
		}
	}
	return b
}
