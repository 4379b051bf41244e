/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRoundTrip(t *testing.T) {
	// well-known dev account //Alice
	const alice = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	acc, err := DecodeAccount(alice)
	require.NoError(t, err)
	assert.Equal(t, signature.TestKeyringPairAlice.PublicKey, acc[:])

	s, err := EncodeAccount(acc[:])
	require.NoError(t, err)
	assert.Equal(t, alice, s)
	assert.Equal(t, alice, AccountString(acc))
}

func TestDecodeAccountInvalid(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"garbage", "not-an-address"},
		{"bad checksum", "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAccount(tt.address)
			assert.Error(t, err)
		})
	}
}

func TestEncodeAccountBadLength(t *testing.T) {
	_, err := EncodeAccount([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestRecoverError(t *testing.T) {
	s := RecoverError("boom")
	assert.Contains(t, s, "boom")
	assert.Contains(t, s, "panic")
}
