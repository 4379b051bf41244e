/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCache(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0, 0)
	require.NoError(t, err)
	defer cache.Close()

	// get nil
	_, err = cache.Get([]byte("nil"))
	assert.ErrorIs(t, err, NotFound)

	//put
	err = cache.Put([]byte("key1"), []byte("value1"))
	assert.NoError(t, err)

	//has
	ok, err := cache.Has([]byte("key1"))
	assert.NoError(t, err)
	assert.True(t, ok)

	// get
	val, err := cache.Get([]byte("key1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value1"), val)

	// delete
	err = cache.Delete([]byte("key1"))
	assert.NoError(t, err)

	//has
	ok, err = cache.Has([]byte("key1"))
	assert.NoError(t, err)
	assert.False(t, ok)

	const prefix = "prefix:"
	var keys = []string{"1", "2", "3"}
	for _, v := range keys {
		err = cache.Put([]byte(prefix+v), nil)
		assert.NoError(t, err)
	}
	err = cache.Put([]byte("1"), nil)
	assert.NoError(t, err)
	err = cache.Put([]byte("z"), nil)
	assert.NoError(t, err)
	err = cache.Put([]byte("prefix"), nil)
	assert.NoError(t, err)
	list, err := cache.QueryPrefixKeyList(prefix)
	assert.NoError(t, err)

	assert.Equal(t, keys, list)
}

func TestBatchWrite(t *testing.T) {
	cache, err := NewMemCache()
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put([]byte("old"), []byte("1")))

	b := NewBatch()
	b.Put([]byte("a"), []byte("1"))
	b.Put([]byte("b"), []byte("2"))
	b.Delete([]byte("old"))
	assert.Equal(t, 3, b.Len())
	require.NoError(t, cache.Write(b))

	ok, err := cache.Has([]byte("old"))
	require.NoError(t, err)
	assert.False(t, ok)

	var seen []string
	err = cache.Iterate(nil, func(key, value []byte) bool {
		seen = append(seen, string(key)+"="+string(value))
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a=1", "b=2"}, seen)

	// empty batches are a no-op
	assert.NoError(t, cache.Write(NewBatch()))
	assert.NoError(t, cache.Write(nil))
}

func TestIterateStops(t *testing.T) {
	cache, err := NewMemCache()
	require.NoError(t, err)
	defer cache.Close()

	for _, k := range []string{"p1", "p2", "p3"} {
		require.NoError(t, cache.Put([]byte(k), nil))
	}
	var count int
	err = cache.Iterate([]byte("p"), func(key, value []byte) bool {
		count++
		return count < 2
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
