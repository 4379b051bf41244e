/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package storage

import (
	"bytes"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/centrifuge/go-substrate-rpc-client/v4/xxhash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const hashLen = 16

// Prefix is Twox128(pallet) ++ Twox128(item).
func Prefix(pallet, item string) []byte {
	p := xxhash.New128([]byte(pallet)).Sum(nil)
	return append(p, xxhash.New128([]byte(item)).Sum(nil)...)
}

// Blake2_128Concat hashes the encoded key and appends the key itself.
func Blake2_128Concat(enc []byte) []byte {
	h, _ := blake2b.New(hashLen, nil)
	h.Write(enc)
	return append(h.Sum(nil), enc...)
}

func encodeValue(v interface{}) ([]byte, error) {
	b, err := codec.Encode(v)
	if err != nil {
		return nil, errors.Wrap(err, "[encode]")
	}
	return b, nil
}

func decodeValue(b []byte, target interface{}) error {
	if err := codec.Decode(b, target); err != nil {
		return errors.Wrap(err, "[decode]")
	}
	return nil
}

// decodeKey reads one hashed key segment from b and returns the unread rest.
func decodeKey(b []byte, target interface{}) ([]byte, error) {
	if len(b) < hashLen {
		return nil, errors.New("[decode] truncated storage key")
	}
	r := bytes.NewReader(b[hashLen:])
	if err := scale.NewDecoder(r).Decode(target); err != nil {
		return nil, errors.Wrap(err, "[decode] storage key")
	}
	return b[len(b)-r.Len():], nil
}

// Value is a single storage slot.
type Value[V any] struct {
	key []byte
}

func NewValue[V any](pallet, item string) Value[V] {
	return Value[V]{key: Prefix(pallet, item)}
}

// Get returns the stored value or the zero value when absent.
func (s Value[V]) Get(tx *Tx) (V, error) {
	v, _, err := s.TryGet(tx)
	return v, err
}

func (s Value[V]) TryGet(tx *Tx) (V, bool, error) {
	var v V
	b, ok, err := tx.get(s.key)
	if err != nil || !ok {
		return v, false, err
	}
	return v, true, decodeValue(b, &v)
}

func (s Value[V]) Exists(tx *Tx) (bool, error) {
	_, ok, err := tx.get(s.key)
	return ok, err
}

func (s Value[V]) Put(tx *Tx, v V) error {
	b, err := encodeValue(v)
	if err != nil {
		return err
	}
	return tx.put(s.key, b)
}

func (s Value[V]) Mutate(tx *Tx, fn func(v *V) error) error {
	v, err := s.Get(tx)
	if err != nil {
		return err
	}
	if err = fn(&v); err != nil {
		return err
	}
	return s.Put(tx, v)
}

func (s Value[V]) Kill(tx *Tx) error {
	return tx.del(s.key)
}

// Map is a storage map with Blake2_128Concat keys.
type Map[K any, V any] struct {
	prefix []byte
}

func NewMap[K any, V any](pallet, item string) Map[K, V] {
	return Map[K, V]{prefix: Prefix(pallet, item)}
}

func (m Map[K, V]) key(k K) ([]byte, error) {
	enc, err := encodeValue(k)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, m.prefix...), Blake2_128Concat(enc)...), nil
}

// Get returns the value under k or the zero value when absent.
func (m Map[K, V]) Get(tx *Tx, k K) (V, error) {
	v, _, err := m.TryGet(tx, k)
	return v, err
}

func (m Map[K, V]) TryGet(tx *Tx, k K) (V, bool, error) {
	var v V
	key, err := m.key(k)
	if err != nil {
		return v, false, err
	}
	b, ok, err := tx.get(key)
	if err != nil || !ok {
		return v, false, err
	}
	return v, true, decodeValue(b, &v)
}

func (m Map[K, V]) Contains(tx *Tx, k K) (bool, error) {
	key, err := m.key(k)
	if err != nil {
		return false, err
	}
	_, ok, err := tx.get(key)
	return ok, err
}

func (m Map[K, V]) Insert(tx *Tx, k K, v V) error {
	key, err := m.key(k)
	if err != nil {
		return err
	}
	b, err := encodeValue(v)
	if err != nil {
		return err
	}
	return tx.put(key, b)
}

func (m Map[K, V]) Mutate(tx *Tx, k K, fn func(v *V) error) error {
	v, err := m.Get(tx, k)
	if err != nil {
		return err
	}
	if err = fn(&v); err != nil {
		return err
	}
	return m.Insert(tx, k, v)
}

func (m Map[K, V]) Remove(tx *Tx, k K) error {
	key, err := m.key(k)
	if err != nil {
		return err
	}
	return tx.del(key)
}

// Iter visits every entry in storage key order until fn returns false.
func (m Map[K, V]) Iter(tx *Tx, fn func(k K, v V) bool) error {
	var inner error
	err := tx.iterate(m.prefix, func(key, value []byte) bool {
		var (
			k K
			v V
		)
		if _, inner = decodeKey(key[len(m.prefix):], &k); inner != nil {
			return false
		}
		if inner = decodeValue(value, &v); inner != nil {
			return false
		}
		return fn(k, v)
	})
	if err != nil {
		return err
	}
	return inner
}

func (m Map[K, V]) Keys(tx *Tx) ([]K, error) {
	var keys []K
	err := m.Iter(tx, func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys, err
}

// Clear removes every entry of the map.
func (m Map[K, V]) Clear(tx *Tx) error {
	var keys [][]byte
	err := tx.iterate(m.prefix, func(key, _ []byte) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err = tx.del(k); err != nil {
			return err
		}
	}
	return nil
}

// DoubleMap is a storage map keyed by two Blake2_128Concat segments.
type DoubleMap[K1 any, K2 any, V any] struct {
	prefix []byte
}

func NewDoubleMap[K1 any, K2 any, V any](pallet, item string) DoubleMap[K1, K2, V] {
	return DoubleMap[K1, K2, V]{prefix: Prefix(pallet, item)}
}

func (m DoubleMap[K1, K2, V]) firstKey(k1 K1) ([]byte, error) {
	enc, err := encodeValue(k1)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, m.prefix...), Blake2_128Concat(enc)...), nil
}

func (m DoubleMap[K1, K2, V]) key(k1 K1, k2 K2) ([]byte, error) {
	first, err := m.firstKey(k1)
	if err != nil {
		return nil, err
	}
	enc, err := encodeValue(k2)
	if err != nil {
		return nil, err
	}
	return append(first, Blake2_128Concat(enc)...), nil
}

func (m DoubleMap[K1, K2, V]) Get(tx *Tx, k1 K1, k2 K2) (V, error) {
	v, _, err := m.TryGet(tx, k1, k2)
	return v, err
}

func (m DoubleMap[K1, K2, V]) TryGet(tx *Tx, k1 K1, k2 K2) (V, bool, error) {
	var v V
	key, err := m.key(k1, k2)
	if err != nil {
		return v, false, err
	}
	b, ok, err := tx.get(key)
	if err != nil || !ok {
		return v, false, err
	}
	return v, true, decodeValue(b, &v)
}

func (m DoubleMap[K1, K2, V]) Contains(tx *Tx, k1 K1, k2 K2) (bool, error) {
	key, err := m.key(k1, k2)
	if err != nil {
		return false, err
	}
	_, ok, err := tx.get(key)
	return ok, err
}

func (m DoubleMap[K1, K2, V]) Insert(tx *Tx, k1 K1, k2 K2, v V) error {
	key, err := m.key(k1, k2)
	if err != nil {
		return err
	}
	b, err := encodeValue(v)
	if err != nil {
		return err
	}
	return tx.put(key, b)
}

func (m DoubleMap[K1, K2, V]) Mutate(tx *Tx, k1 K1, k2 K2, fn func(v *V) error) error {
	v, err := m.Get(tx, k1, k2)
	if err != nil {
		return err
	}
	if err = fn(&v); err != nil {
		return err
	}
	return m.Insert(tx, k1, k2, v)
}

func (m DoubleMap[K1, K2, V]) Remove(tx *Tx, k1 K1, k2 K2) error {
	key, err := m.key(k1, k2)
	if err != nil {
		return err
	}
	return tx.del(key)
}

// IterPrefix visits every second key stored under k1.
func (m DoubleMap[K1, K2, V]) IterPrefix(tx *Tx, k1 K1, fn func(k2 K2, v V) bool) error {
	first, err := m.firstKey(k1)
	if err != nil {
		return err
	}
	var inner error
	err = tx.iterate(first, func(key, value []byte) bool {
		var (
			k2 K2
			v  V
		)
		if _, inner = decodeKey(key[len(first):], &k2); inner != nil {
			return false
		}
		if inner = decodeValue(value, &v); inner != nil {
			return false
		}
		return fn(k2, v)
	})
	if err != nil {
		return err
	}
	return inner
}

// Iter visits every entry in storage key order.
func (m DoubleMap[K1, K2, V]) Iter(tx *Tx, fn func(k1 K1, k2 K2, v V) bool) error {
	var inner error
	err := tx.iterate(m.prefix, func(key, value []byte) bool {
		var (
			k1   K1
			k2   K2
			v    V
			rest []byte
		)
		if rest, inner = decodeKey(key[len(m.prefix):], &k1); inner != nil {
			return false
		}
		if _, inner = decodeKey(rest, &k2); inner != nil {
			return false
		}
		if inner = decodeValue(value, &v); inner != nil {
			return false
		}
		return fn(k1, k2, v)
	})
	if err != nil {
		return err
	}
	return inner
}
