/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"context"
	"fmt"

	"github.com/CESSProject/iris-node/internal/session"
	"github.com/CESSProject/iris-node/pkg/ipfs"
	"github.com/mr-tron/base58"
)

// bootstrapDepth bounds the addresses tried per housekeeping round.
const bootstrapDepth = 2

// connectionHousekeeping makes sure the local storage node is known to the
// network. An unregistered node dials the first bootstrap node and then
// publishes its identity.
func (n *Node) connectionHousekeeping(ctx context.Context, number uint32) error {
	id, err := ipfs.Identity(ctx, n.ipfs, n.timeout)
	if err != nil {
		return err
	}
	ok, err := n.session.IsBootstrapNode(id.PublicKey)
	if err != nil || ok {
		return err
	}

	nodes, err := n.session.BootstrapNodes()
	if err != nil {
		return err
	}
	if len(nodes) > 0 {
		n.connectBootstrap(ctx, nodes[0])
	}

	if !n.signer.CanSign() {
		n.Boot("err", "No local accounts available, consider adding a mnemonic to the configuration file")
		return nil
	}
	err = n.signer.SubmitSigned(number, session.SubmitIpfsIdentity{
		PublicKey:      id.PublicKey,
		Multiaddresses: id.Addrs,
	})
	if err != nil {
		n.Boot("err", fmt.Sprintf("Failed to submit transaction: %v", err))
		return nil
	}
	n.Boot("info", fmt.Sprintf("Submitted ipfs identity %s", base58.Encode(id.PublicKey)))
	return nil
}

// connectBootstrap dials the addresses of node from the last one backwards,
// stopping at the first success or after bootstrapDepth attempts.
func (n *Node) connectBootstrap(ctx context.Context, node session.BootstrapNode) bool {
	for i := 0; i < bootstrapDepth && i < len(node.Addrs); i++ {
		addr := node.Addrs[len(node.Addrs)-1-i]
		if err := ipfs.Connect(ctx, n.ipfs, addr, n.timeout); err != nil {
			n.Boot("warn", fmt.Sprintf("Failed to connect to the bootstrap node with multiaddress %s: %v", addr, err))
			continue
		}
		n.Boot("info", fmt.Sprintf("Successfully connected to a bootstrap node: %s", addr))
		return true
	}
	return false
}

func (n *Node) printMetadata(ctx context.Context) error {
	peers, err := ipfs.Peers(ctx, n.ipfs, n.timeout)
	if err != nil {
		return err
	}
	count := len(peers)
	if count == 1 {
		n.Boot("info", "Currently connected to 1 peer")
	} else {
		n.Boot("info", fmt.Sprintf("Currently connected to %d peers", count))
	}
	n.SetPeerCount(count)
	n.metrics.peers.Set(float64(count))
	return nil
}
