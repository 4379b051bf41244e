/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/internal/chain"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

const (
	CallAddValidator         = PalletName + ".add_validator"
	CallRemoveValidator      = PalletName + ".remove_validator"
	CallAddValidatorAgain    = PalletName + ".add_validator_again"
	CallJoinStoragePool      = PalletName + ".join_storage_pool"
	CallSubmitIpfsAddResults = PalletName + ".submit_ipfs_add_results"
	CallSubmitIpfsIdentity   = PalletName + ".submit_ipfs_identity"
	CallSubmitIpfsPinResult  = PalletName + ".submit_ipfs_pin_result"
	CallSubmitRpcReady       = PalletName + ".submit_rpc_ready"
)

// AddValidator adds a validator and approves it. Root only.
type AddValidator struct {
	ValidatorID types.AccountID
}

// RemoveValidator removes and unapproves a validator. Root only.
type RemoveValidator struct {
	ValidatorID types.AccountID
}

// AddValidatorAgain lets an approved validator rejoin the set.
type AddValidatorAgain struct {
	ValidatorID types.AccountID
}

type JoinStoragePool struct {
	PoolOwner types.AccountID
	PoolID    assets.AssetID
}

type SubmitIpfsAddResults struct {
	Admin   types.AccountID
	CID     string
	AssetID assets.AssetID
	Balance types.U128
}

type SubmitIpfsIdentity struct {
	PublicKey      []byte
	Multiaddresses []string
}

type SubmitIpfsPinResult struct {
	AssetID assets.AssetID
	Pinner  types.AccountID
}

type SubmitRpcReady struct {
	AssetID assets.AssetID
}

func (AddValidator) CallName() string         { return CallAddValidator }
func (RemoveValidator) CallName() string      { return CallRemoveValidator }
func (AddValidatorAgain) CallName() string    { return CallAddValidatorAgain }
func (JoinStoragePool) CallName() string      { return CallJoinStoragePool }
func (SubmitIpfsAddResults) CallName() string { return CallSubmitIpfsAddResults }
func (SubmitIpfsIdentity) CallName() string   { return CallSubmitIpfsIdentity }
func (SubmitIpfsPinResult) CallName() string  { return CallSubmitIpfsPinResult }
func (SubmitRpcReady) CallName() string       { return CallSubmitRpcReady }

// Dispatch applies call as one unit of work. A failed call leaves no trace.
func (p *Pallet) Dispatch(origin chain.Origin, call chain.Call) error {
	return p.store.Update(func(tx *storage.Tx) error {
		return p.dispatch(tx, origin, call)
	})
}

func (p *Pallet) dispatch(tx *storage.Tx, origin chain.Origin, call chain.Call) error {
	switch c := call.(type) {
	case AddValidator:
		if !origin.IsRoot() {
			return ErrBadOrigin
		}
		return p.addValidator(tx, c.ValidatorID)

	case RemoveValidator:
		if !origin.IsRoot() {
			return ErrBadOrigin
		}
		return p.removeValidator(tx, c.ValidatorID)

	case AddValidatorAgain:
		who, ok := origin.Signer()
		if !ok {
			return ErrBadOrigin
		}
		return p.addValidatorAgain(tx, who, c.ValidatorID)

	case JoinStoragePool:
		who, ok := origin.Signer()
		if !ok {
			return ErrBadOrigin
		}
		return p.joinStoragePool(tx, who, c.PoolOwner, c.PoolID)

	case SubmitIpfsAddResults:
		who, ok := origin.Signer()
		if !ok {
			return ErrBadOrigin
		}
		if err := p.ledger.SubmitIpfsAddResults(tx, who, c.Admin, c.CID, c.AssetID, c.Balance); err != nil {
			return err
		}
		vals, err := validators.Get(tx)
		if err != nil {
			return err
		}
		return p.creditAll(tx, c.AssetID, vals)

	case SubmitIpfsIdentity:
		who, ok := origin.Signer()
		if !ok {
			return ErrBadOrigin
		}
		if err := bootstrapNodes.Insert(tx, c.PublicKey, c.Multiaddresses); err != nil {
			return err
		}
		if err := substrateIpfsBridge.Insert(tx, who, c.PublicKey); err != nil {
			return err
		}
		p.deposit(tx, PublishedIdentity{Who: who})
		return nil

	case SubmitIpfsPinResult:
		if _, ok := origin.Signer(); !ok {
			return ErrBadOrigin
		}
		return p.confirmPin(tx, c.AssetID, c.Pinner)

	case SubmitRpcReady:
		providers, err := storageProviders.Get(tx, c.AssetID)
		if err != nil {
			return err
		}
		return p.creditAll(tx, c.AssetID, providers)
	}
	return ErrUnknownCall
}
