/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"bytes"
	"context"
	"fmt"

	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/internal/session"
	"github.com/CESSProject/iris-node/pkg/ipfs"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/CESSProject/iris-node/pkg/utils"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

// handleDataRequests executes the data commands queued in block number, in
// order. A failed command is logged and dropped.
func (n *Node) handleDataRequests(ctx context.Context, number uint32, queue []assets.DataCommand) {
	if len(queue) == 0 {
		return
	}
	if len(queue) == 1 {
		n.Pipeline("info", "1 entry in the data queue")
	} else {
		n.Pipeline("info", fmt.Sprintf("%d entries in the data queue", len(queue)))
	}

	for _, cmd := range queue {
		var result string
		switch c := cmd.(type) {
		case assets.AddBytes:
			result = n.outcome(cmd, n.addBytes(ctx, number, c))
		case assets.CatBytes:
			result = n.outcome(cmd, n.catBytes(ctx, number, c))
		case assets.PinCID:
			result = n.outcome(cmd, n.pinCID(ctx, number, c))
		default:
			result = n.outcome(cmd, errors.Errorf("unknown data command %T", cmd))
		}
		n.metrics.commands.WithLabelValues(cmd.Kind(), result).Inc()
	}
}

var errNotValidator = errors.New("not a validator")

func (n *Node) outcome(cmd assets.DataCommand, err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errNotValidator):
		return "skipped"
	case errors.Is(err, ipfs.ErrRequestTimeout):
		n.Pipeline("warn", fmt.Sprintf("[%s] %v", cmd.Kind(), err))
		return "timeout"
	default:
		n.Pipeline("err", fmt.Sprintf("[%s] %v", cmd.Kind(), err))
		return "failed"
	}
}

// addBytes fetches the content from the node at c.Addr, publishes it through
// the local storage node and reports the new CID.
func (n *Node) addBytes(ctx context.Context, number uint32, c assets.AddBytes) error {
	if !n.ReadValidatorMode() {
		return errNotValidator
	}
	if err := ipfs.Connect(ctx, n.ipfs, c.Addr, n.timeout); err != nil {
		return err
	}
	n.Pipeline("info", fmt.Sprintf("Connected to %s", c.Addr))

	data, err := ipfs.CatBytes(ctx, n.ipfs, c.CID, n.timeout)
	if err != nil {
		return err
	}
	n.Pipeline("info", fmt.Sprintf("Fetched data with cid %s", c.CID))

	if err = ipfs.Disconnect(ctx, n.ipfs, c.Addr, n.timeout); err != nil {
		return err
	}
	n.Pipeline("info", fmt.Sprintf("Disconnected from %s", c.Addr))

	newCid, err := ipfs.AddBytes(ctx, n.ipfs, data, n.timeout)
	if err != nil {
		return err
	}
	n.Pipeline("info", fmt.Sprintf("Added data with cid %s", newCid))

	err = n.signer.SubmitSigned(number, session.SubmitIpfsAddResults{
		Admin:   c.Admin,
		CID:     newCid,
		AssetID: c.AssetID,
		Balance: c.Balance,
	})
	if err != nil {
		return errors.Wrap(err, "[SubmitIpfsAddResults]")
	}
	return nil
}

// catBytes serves a fetch requested by the account whose storage node is
// the local one, caches the content and reports it ready.
func (n *Node) catBytes(ctx context.Context, number uint32, c assets.CatBytes) error {
	if err := n.checkIdentity(ctx, c.Requestor); err != nil {
		return err
	}
	var (
		cid   string
		owner types.AccountID
	)
	err := n.state.View(func(tx *storage.Tx) error {
		var err error
		if cid, err = n.assets.Metadata(tx, c.AssetID); err != nil {
			return err
		}
		owner, err = n.assets.AssetAccess(tx, c.Requestor, c.AssetID)
		return err
	})
	if err != nil {
		return err
	}
	if owner != c.Owner {
		return errors.Wrapf(session.ErrInsufficientBalance, "%s has no access to asset %d", utils.AccountString(c.Requestor), c.AssetID)
	}

	data, err := ipfs.CatBytes(ctx, n.ipfs, cid, n.timeout)
	if err != nil {
		return err
	}
	if err = n.local.Put([]byte(cid), data); err != nil {
		return errors.Wrap(err, "[Put]")
	}
	n.Pipeline("info", fmt.Sprintf("Cached %d bytes of %s", len(data), cid))

	if err = n.signer.SubmitUnsigned(number, session.SubmitRpcReady{AssetID: c.AssetID}); err != nil {
		return errors.Wrap(err, "[SubmitRpcReady]")
	}
	return nil
}

// pinCID pins the content of an asset on behalf of the account whose
// storage node is the local one.
func (n *Node) pinCID(ctx context.Context, number uint32, c assets.PinCID) error {
	if !n.ReadValidatorMode() {
		return errNotValidator
	}
	if err := n.checkIdentity(ctx, c.Account); err != nil {
		return err
	}
	if err := ipfs.InsertPin(ctx, n.ipfs, c.CID, false, n.timeout); err != nil {
		return err
	}
	n.Pipeline("info", fmt.Sprintf("Pinned %s", c.CID))

	err := n.signer.SubmitSigned(number, session.SubmitIpfsPinResult{AssetID: c.AssetID, Pinner: c.Account})
	if err != nil {
		return errors.Wrap(err, "[SubmitIpfsPinResult]")
	}
	return nil
}

// checkIdentity fails unless the local storage node is the one who registered.
func (n *Node) checkIdentity(ctx context.Context, who types.AccountID) error {
	id, err := ipfs.Identity(ctx, n.ipfs, n.timeout)
	if err != nil {
		return err
	}
	registered, err := n.session.SubstrateIpfsBridge(who)
	if err != nil {
		return err
	}
	if !bytes.Equal(id.PublicKey, registered) {
		return errors.Wrapf(session.ErrBadOrigin, "storage node of %s is not local", utils.AccountString(who))
	}
	return nil
}
