/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package storage

import (
	"testing"

	"github.com/CESSProject/iris-node/pkg/cache"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pallet = "Test"

var (
	counter = NewValue[uint32](pallet, "Counter")
	owners  = NewMap[types.AccountID, []uint32](pallet, "Owners")
	points  = NewDoubleMap[uint32, uint32, uint64](pallet, "Points")
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := cache.NewMemCache()
	require.NoError(t, err)
	s := New(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func account(b byte) types.AccountID {
	var acc types.AccountID
	acc[0] = b
	return acc
}

func TestUpdateCommits(t *testing.T) {
	s := newStore(t)

	var committed bool
	err := s.Update(func(tx *Tx) error {
		tx.OnCommit(func() { committed = true })
		if err := counter.Put(tx, 7); err != nil {
			return err
		}
		// writes are visible inside the same transaction
		v, err := counter.Get(tx)
		assert.Equal(t, uint32(7), v)
		return err
	})
	require.NoError(t, err)
	assert.True(t, committed)

	err = s.View(func(tx *Tx) error {
		v, ok, err := counter.TryGet(tx)
		assert.True(t, ok)
		assert.Equal(t, uint32(7), v)
		return err
	})
	require.NoError(t, err)
}

func TestUpdateRollsBack(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Update(func(tx *Tx) error { return counter.Put(tx, 1) }))

	boom := errors.New("boom")
	var committed bool
	err := s.Update(func(tx *Tx) error {
		tx.OnCommit(func() { committed = true })
		if err := counter.Put(tx, 2); err != nil {
			return err
		}
		if err := owners.Insert(tx, account(1), []uint32{1}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, committed)

	require.NoError(t, s.View(func(tx *Tx) error {
		v, err := counter.Get(tx)
		assert.Equal(t, uint32(1), v)
		ok, _ := owners.Contains(tx, account(1))
		assert.False(t, ok)
		return err
	}))
}

func TestViewIsReadOnly(t *testing.T) {
	s := newStore(t)
	err := s.View(func(tx *Tx) error {
		assert.True(t, tx.ReadOnly())
		return counter.Put(tx, 1)
	})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestValueDefaultsAndKill(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Update(func(tx *Tx) error {
		v, ok, err := counter.TryGet(tx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, v)

		require.NoError(t, counter.Mutate(tx, func(v *uint32) error { *v += 3; return nil }))
		v, err = counter.Get(tx)
		require.NoError(t, err)
		assert.Equal(t, uint32(3), v)

		require.NoError(t, counter.Kill(tx))
		ok, err = counter.Exists(tx)
		assert.False(t, ok)
		return err
	}))
}

func TestMapIterMergesOverlay(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Update(func(tx *Tx) error {
		for i := byte(1); i <= 3; i++ {
			if err := owners.Insert(tx, account(i), []uint32{uint32(i)}); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.Update(func(tx *Tx) error {
		require.NoError(t, owners.Remove(tx, account(2)))
		require.NoError(t, owners.Insert(tx, account(4), []uint32{4, 4}))
		require.NoError(t, owners.Mutate(tx, account(1), func(v *[]uint32) error {
			*v = append(*v, 10)
			return nil
		}))

		got := make(map[byte][]uint32)
		err := owners.Iter(tx, func(k types.AccountID, v []uint32) bool {
			got[k[0]] = v
			return true
		})
		require.NoError(t, err)
		assert.Equal(t, map[byte][]uint32{1: {1, 10}, 3: {3}, 4: {4, 4}}, got)
		return nil
	}))

	require.NoError(t, s.View(func(tx *Tx) error {
		keys, err := owners.Keys(tx)
		assert.Len(t, keys, 3)
		return err
	}))
}

func TestMapClear(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Update(func(tx *Tx) error {
		require.NoError(t, owners.Insert(tx, account(1), nil))
		require.NoError(t, owners.Insert(tx, account(2), nil))
		require.NoError(t, counter.Put(tx, 5))
		return owners.Clear(tx)
	}))
	require.NoError(t, s.View(func(tx *Tx) error {
		keys, err := owners.Keys(tx)
		assert.Empty(t, keys)
		v, _ := counter.Get(tx)
		assert.Equal(t, uint32(5), v)
		return err
	}))
}

func TestDoubleMap(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Update(func(tx *Tx) error {
		require.NoError(t, points.Insert(tx, 1, 10, 100))
		require.NoError(t, points.Insert(tx, 1, 11, 110))
		require.NoError(t, points.Insert(tx, 2, 10, 200))
		return points.Mutate(tx, 2, 10, func(v *uint64) error { *v++; return nil })
	}))

	require.NoError(t, s.View(func(tx *Tx) error {
		v, err := points.Get(tx, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(201), v)

		ok, err := points.Contains(tx, 3, 10)
		require.NoError(t, err)
		assert.False(t, ok)

		era1 := make(map[uint32]uint64)
		require.NoError(t, points.IterPrefix(tx, 1, func(k2 uint32, v uint64) bool {
			era1[k2] = v
			return true
		}))
		assert.Equal(t, map[uint32]uint64{10: 100, 11: 110}, era1)

		var total int
		require.NoError(t, points.Iter(tx, func(k1, k2 uint32, v uint64) bool {
			total++
			return true
		}))
		assert.Equal(t, 3, total)
		return nil
	}))
}

func TestPrefixIsolation(t *testing.T) {
	assert.NotEqual(t, Prefix(pallet, "Counter"), Prefix(pallet, "Owners"))
	assert.NotEqual(t, Prefix("A", "Item"), Prefix("B", "Item"))
	assert.Len(t, Prefix(pallet, "Counter"), 32)
	assert.Len(t, Blake2_128Concat([]byte{1, 2}), 18)
}
