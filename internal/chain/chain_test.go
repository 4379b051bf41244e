/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package chain

import (
	"bytes"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCall struct {
	Value uint32
	Data  []byte
}

func (testCall) CallName() string { return "Test.call" }

type otherCall struct{}

func (otherCall) CallName() string { return "Test.other" }

var errRejected = errors.New("rejected")

func acceptTestCall(call Call) (ValidTransaction, error) {
	if _, ok := call.(testCall); ok {
		return ValidTransaction{TagPrefix: "test", Longevity: 5, Propagate: true}, nil
	}
	return ValidTransaction{}, errRejected
}

func TestOrigin(t *testing.T) {
	assert.True(t, RootOrigin().IsRoot())
	_, ok := RootOrigin().Signer()
	assert.False(t, ok)
	_, ok = NoneOrigin().Signer()
	assert.False(t, ok)

	var acc types.AccountID
	acc[0] = 9
	who, ok := SignedOrigin(acc).Signer()
	assert.True(t, ok)
	assert.Equal(t, acc, who)
}

func TestPool(t *testing.T) {
	p := NewPool(2)
	require.NoError(t, p.Push(Extrinsic{Call: testCall{Value: 1}}))
	require.NoError(t, p.Push(Extrinsic{Call: testCall{Value: 2}}))
	assert.ErrorIs(t, p.Push(Extrinsic{Call: testCall{Value: 3}}), ErrPoolFull)
	assert.Equal(t, 2, p.Len())

	xs := p.Drain(0)
	require.Len(t, xs, 2)
	assert.Equal(t, testCall{Value: 1}, xs[0].Call)
	assert.Equal(t, testCall{Value: 2}, xs[1].Call)
	assert.Empty(t, p.Drain(0))
}

func TestPoolDropsExpiredUnsigned(t *testing.T) {
	p := NewPool(4)
	var acc types.AccountID
	require.NoError(t, p.Push(Extrinsic{Call: testCall{}, Block: 1, Longevity: 5}))
	require.NoError(t, p.Push(Extrinsic{Call: testCall{}, Block: 1, Signer: &acc}))
	xs := p.Drain(7)
	require.Len(t, xs, 1)
	assert.NotNil(t, xs[0].Signer)
}

func TestSignAndVerify(t *testing.T) {
	p := NewPool(4)
	s, err := NewSigner(signature.TestKeyringPairAlice.URI, p, acceptTestCall)
	require.NoError(t, err)
	require.True(t, s.CanSign())

	acc, ok := s.Account()
	require.True(t, ok)
	assert.Equal(t, signature.TestKeyringPairAlice.PublicKey, acc[:])

	short := testCall{Value: 7}
	long := testCall{Value: 8, Data: bytes.Repeat([]byte{1}, 512)}
	require.NoError(t, s.SubmitSigned(3, short))
	require.NoError(t, s.SubmitSigned(3, long))

	xs := p.Drain(3)
	require.Len(t, xs, 2)
	for _, x := range xs {
		assert.Equal(t, SignedOrigin(acc), x.Origin())
		assert.NoError(t, Verify(x))
	}

	// tampering with the call breaks the signature
	forged := xs[0]
	forged.Call = testCall{Value: 70}
	assert.ErrorIs(t, Verify(forged), ErrInvalidSignature)

	// so does claiming another signer
	var bob types.AccountID
	copy(bob[:], signature.TestKeyringPairAlice.PublicKey)
	bob[0] ^= 0xff
	forged = xs[0]
	forged.Signer = &bob
	assert.Error(t, Verify(forged))
}

func TestSignerWithoutAccount(t *testing.T) {
	p := NewPool(4)
	s, err := NewSigner("", p, acceptTestCall)
	require.NoError(t, err)
	assert.False(t, s.CanSign())
	assert.ErrorIs(t, s.SubmitSigned(1, testCall{}), ErrNoLocalAccount)

	require.NoError(t, s.SubmitUnsigned(1, testCall{Value: 1}))
	assert.ErrorIs(t, s.SubmitUnsigned(1, otherCall{}), errRejected)

	xs := p.Drain(1)
	require.Len(t, xs, 1)
	assert.Equal(t, NoneOrigin(), xs[0].Origin())
	assert.Equal(t, uint32(5), xs[0].Longevity)
	assert.NoError(t, Verify(xs[0]))
}

func TestNewSignerBadMnemonic(t *testing.T) {
	_, err := NewSigner("bad words here", NewPool(1), nil)
	assert.Error(t, err)
}
