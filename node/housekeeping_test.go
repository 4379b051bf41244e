/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"context"
	"strings"
	"testing"

	"github.com/CESSProject/iris-node/internal/session"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bootstrapProfile(t *testing.T, replace ...string) ([]string, []string) {
	t.Helper()
	pid, _ := newPeer(t)
	addrs := []string{
		"/ip4/10.0.0.1/tcp/4001/p2p/" + pid.String(),
		"/ip4/10.0.0.2/tcp/4001/p2p/" + pid.String(),
		"/ip4/10.0.0.3/tcp/4001/p2p/" + pid.String(),
	}
	list := `bootstrap: ["` + strings.Join(addrs, `", "`) + `"]`
	return addrs, append([]string{"bootstrap: []", list}, replace...)
}

func TestConnectionHousekeeping(t *testing.T) {
	addrs, replace := bootstrapProfile(t)
	n, fake := newTestNode(t, testProfile(t, replace...))
	fake.connectErr[addrs[2]] = errors.New("connection refused")

	n.OffchainWorker(context.Background(), 5)

	// the last address failed, the next-to-last one is tried once
	assert.Equal(t, []string{addrs[1]}, fake.connected)
	xs := n.pool.Drain(5)
	require.Len(t, xs, 1)
	require.NotNil(t, xs[0].Signer)
	assert.Equal(t, alice, *xs[0].Signer)
	assert.Equal(t, session.SubmitIpfsIdentity{PublicKey: localKey, Multiaddresses: fake.addrs}, xs[0].Call)

	// once registered nothing is dialled or submitted
	require.NoError(t, n.session.Dispatch(xs[0].Origin(), xs[0].Call))
	fake.connected = nil
	n.OffchainWorker(context.Background(), 10)
	assert.Empty(t, fake.connected)
	assert.Zero(t, n.pool.Len())
}

func TestConnectionHousekeepingDepth(t *testing.T) {
	addrs, replace := bootstrapProfile(t)
	n, fake := newTestNode(t, testProfile(t, replace...))
	for _, addr := range addrs {
		fake.connectErr[addr] = errors.New("connection refused")
	}

	n.OffchainWorker(context.Background(), 5)

	var dials int
	for _, c := range fake.Calls() {
		if c == "connect" {
			dials++
		}
	}
	assert.Equal(t, bootstrapDepth, dials)
	// the identity is published whatever the outcome
	assert.Equal(t, 1, n.pool.Len())
}

func TestConnectionHousekeepingWithoutAccount(t *testing.T) {
	cfg := testProfile(t)
	cfg.Mnemonic = ""
	n, fake := newTestNode(t, cfg)

	n.OffchainWorker(context.Background(), 5)
	assert.Contains(t, fake.Calls(), "identity")
	assert.Zero(t, n.pool.Len())
}

func TestPrintMetadata(t *testing.T) {
	n, fake := newTestNode(t, nil)
	fake.peers = []string{"/ip4/10.0.0.1/tcp/4001/p2p/a"}

	require.NoError(t, n.printMetadata(context.Background()))
	assert.Equal(t, 1, n.GetPeerCount())
	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.peers))

	fake.peers = append(fake.peers, "/ip4/10.0.0.2/tcp/4001/p2p/b", "/ip4/10.0.0.3/tcp/4001/p2p/c")
	n.OffchainWorker(context.Background(), 5)
	assert.Equal(t, 3, n.GetPeerCount())
	assert.Equal(t, uint32(5), n.GetLastWorkerBlock())
}
