/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/internal/chain"
	"github.com/CESSProject/iris-node/internal/session"
	"github.com/CESSProject/iris-node/pkg/cache"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeer(t *testing.T) (peer.ID, []byte) {
	t.Helper()
	_, pub, err := crypto.GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)
	pid, err := peer.IDFromPublicKey(pub)
	require.NoError(t, err)
	raw, err := pub.Raw()
	require.NoError(t, err)
	return pid, raw
}

func TestGenesisFromConfig(t *testing.T) {
	n, _ := newTestNode(t, nil)

	vals, err := n.session.Validators()
	require.NoError(t, err)
	assert.Equal(t, []types.AccountID{alice, bob}, vals)

	index, err := n.rotator.SessionIndex()
	require.NoError(t, err)
	assert.Zero(t, index)
	active, err := n.rotator.Validators()
	require.NoError(t, err)
	assert.Equal(t, []types.AccountID{alice, bob}, active)

	era, ok, err := n.session.ActiveEra()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, era)
	era, ok, err = n.session.CurrentEra()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, session.EraIndex(1), era)

	acc, ok := n.signer.Account()
	assert.True(t, ok)
	assert.Equal(t, alice, acc)
}

func TestGenesisRunsOnce(t *testing.T) {
	cfg := testProfile(t)
	db, err := cache.NewMemCache()
	require.NoError(t, err)
	local, err := cache.NewMemCache()
	require.NoError(t, err)

	n, err := New(cfg, nil, db, local, newFakeIpfs())
	require.NoError(t, err)
	require.NoError(t, n.ImportBlock(1))
	charlie := types.AccountID{3}
	require.NoError(t, n.session.Dispatch(chain.RootOrigin(), session.AddValidator{ValidatorID: charlie}))

	// a second node over the same state keeps it
	again, err := New(cfg, nil, db, local, newFakeIpfs())
	require.NoError(t, err)
	vals, err := again.session.Validators()
	require.NoError(t, err)
	assert.Equal(t, []types.AccountID{alice, bob, charlie}, vals)
	number, err := again.BlockNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), number)
}

func TestBootstrapNodes(t *testing.T) {
	pid1, key1 := newPeer(t)
	pid2, key2 := newPeer(t)
	addrs := []string{
		"/ip4/10.0.0.1/tcp/4001/p2p/" + pid1.String(),
		"/ip4/10.0.0.2/tcp/4001/p2p/" + pid2.String(),
		"/ip4/10.0.0.1/udp/4001/quic-v1/p2p/" + pid1.String(),
	}
	nodes, err := BootstrapNodes(addrs)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	byKey := map[string][]string{}
	for _, v := range nodes {
		byKey[string(v.PublicKey)] = v.Addrs
	}
	assert.Equal(t, []string{addrs[0], addrs[2]}, byKey[string(key1)])
	assert.Equal(t, []string{addrs[1]}, byKey[string(key2)])

	_, err = BootstrapNodes([]string{"/ip4/10.0.0.1/tcp/4001"})
	assert.Error(t, err)
}

func TestImportBlockRotates(t *testing.T) {
	n, _ := newTestNode(t, nil)
	for number := uint32(1); number <= 10; number++ {
		require.NoError(t, n.ImportBlock(number))
	}
	index, err := n.rotator.SessionIndex()
	require.NoError(t, err)
	assert.Equal(t, session.SessionIndex(1), index)
	assert.Equal(t, uint32(1), n.GetSessionIndex())
	assert.Equal(t, uint32(10), n.GetBlock())
	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.sessionIndex))

	// nobody took part in era 0
	count, err := n.session.UnproductiveSessions(alice)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)

	// a retried block does not rotate twice
	require.NoError(t, n.ImportBlock(10))
	index, err = n.rotator.SessionIndex()
	require.NoError(t, err)
	assert.Equal(t, session.SessionIndex(1), index)
	count, err = n.session.UnproductiveSessions(alice)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)
}

func TestImportBlockRejectsUnsignedCall(t *testing.T) {
	n, _ := newTestNode(t, nil)
	charlie := types.AccountID{3}
	call := session.AddValidator{ValidatorID: charlie}
	require.NoError(t, n.pool.Push(chain.Extrinsic{Call: call, Block: 1}))
	require.NoError(t, n.pool.Push(chain.Extrinsic{Call: session.SubmitRpcReady{AssetID: 1}, Block: 1, Longevity: 5}))

	require.NoError(t, n.ImportBlock(1))
	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.extrinsics.WithLabelValues(call.CallName(), "invalid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.extrinsics.WithLabelValues(session.SubmitRpcReady{}.CallName(), "ok")))

	vals, err := n.session.Validators()
	require.NoError(t, err)
	assert.NotContains(t, vals, charlie)
}

func TestSubmitExtrinsic(t *testing.T) {
	n, _ := newTestNode(t, nil)

	err := n.SubmitExtrinsic(chain.Extrinsic{Call: session.AddValidator{ValidatorID: bob}})
	assert.ErrorIs(t, err, session.ErrInvalidTransactionCall)

	forged := chain.Extrinsic{Signer: &bob, Signature: make([]byte, 64), Call: session.AddValidatorAgain{ValidatorID: bob}}
	assert.ErrorIs(t, n.SubmitExtrinsic(forged), chain.ErrInvalidSignature)

	require.NoError(t, n.SubmitExtrinsic(chain.Extrinsic{Call: session.SubmitRpcReady{AssetID: 1}, Block: 1, Longevity: 5}))
	assert.Equal(t, 1, n.pool.Len())
}

func TestDispatchRouting(t *testing.T) {
	n, _ := newTestNode(t, nil)

	require.NoError(t, n.signer.SubmitSigned(1, assets.CreateStorageAsset{
		Addr:    "/ip4/10.0.0.9/tcp/4001",
		CID:     testCid,
		Name:    []byte("readme"),
		AssetID: 1,
		Balance: types.NewU128(*big.NewInt(10)),
	}))
	require.NoError(t, n.signer.SubmitSigned(1, session.AddValidatorAgain{ValidatorID: alice}))
	require.NoError(t, n.ImportBlock(1))

	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.extrinsics.WithLabelValues(assets.CallCreateStorageAsset, "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.extrinsics.WithLabelValues(session.CallAddValidatorAgain, "failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.events.WithLabelValues("IrisAssets.DataQueued")))
}

func TestRetrieveBytesMissing(t *testing.T) {
	n, _ := newTestNode(t, nil)
	data, err := n.RetrieveBytes(testCid)
	require.NoError(t, err)
	assert.Empty(t, data)
}
