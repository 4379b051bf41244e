/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package assets

import (
	"github.com/CESSProject/iris-node/internal/chain"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

const (
	CallCreateStorageAsset = PalletName + ".create_storage_asset"
	CallRequestBytes       = PalletName + ".request_bytes"
	CallGrantAccess        = PalletName + ".grant_access"
)

type CreateStorageAsset struct {
	Addr    string
	CID     string
	Name    []byte
	AssetID AssetID
	Balance types.U128
}

type RequestBytes struct {
	Owner   types.AccountID
	AssetID AssetID
}

type GrantAccess struct {
	Target  types.AccountID
	AssetID AssetID
}

func (CreateStorageAsset) CallName() string { return CallCreateStorageAsset }
func (RequestBytes) CallName() string       { return CallRequestBytes }
func (GrantAccess) CallName() string        { return CallGrantAccess }

// Dispatch applies a signed assets call as one unit of work.
func (p *Pallet) Dispatch(origin chain.Origin, call chain.Call) error {
	who, ok := origin.Signer()
	if !ok {
		return ErrBadOrigin
	}
	return p.store.Update(func(tx *storage.Tx) error {
		switch c := call.(type) {
		case CreateStorageAsset:
			return p.CreateAsset(tx, who, c.Addr, c.CID, c.Name, c.AssetID, c.Balance)
		case RequestBytes:
			return p.RequestBytes(tx, who, c.Owner, c.AssetID)
		case GrantAccess:
			return p.GrantAccess(tx, who, c.Target, c.AssetID)
		}
		return ErrUnknownCall
	})
}
