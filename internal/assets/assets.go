/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package assets is the ledger side of stored content: asset metadata,
// access grants, balances and the queue of data commands consumed by the
// offchain worker.
package assets

import (
	"math/big"
	"sync"

	"github.com/CESSProject/iris-node/internal/chain"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

const PalletName = "IrisAssets"

var (
	dataQueue   = storage.NewValue[[]command](PalletName, "DataQueue")
	metadata    = storage.NewMap[AssetID, string](PalletName, "Metadata")
	assetAdmin  = storage.NewMap[AssetID, types.AccountID](PalletName, "AssetAdmin")
	assetAccess = storage.NewDoubleMap[types.AccountID, AssetID, types.AccountID](PalletName, "AssetAccess")
	balances    = storage.NewDoubleMap[AssetID, types.AccountID, types.U128](PalletName, "Balances")
	assetIDs    = storage.NewValue[[]AssetID](PalletName, "AssetIds")
)

type Pallet struct {
	store  *storage.Store
	lock   sync.Mutex
	events []chain.Event
}

func New(store *storage.Store) *Pallet {
	return &Pallet{store: store}
}

func (p *Pallet) deposit(tx *storage.Tx, ev chain.Event) {
	tx.OnCommit(func() {
		p.lock.Lock()
		p.events = append(p.events, ev)
		p.lock.Unlock()
	})
}

// TakeEvents returns the events deposited since the last call.
func (p *Pallet) TakeEvents() []chain.Event {
	p.lock.Lock()
	defer p.lock.Unlock()
	evs := p.events
	p.events = nil
	return evs
}

// OnInitialize clears the data queue at the start of every block.
func (p *Pallet) OnInitialize(tx *storage.Tx) error {
	return dataQueue.Kill(tx)
}

func (p *Pallet) enqueue(tx *storage.Tx, who types.AccountID, cmd DataCommand) error {
	err := dataQueue.Mutate(tx, func(q *[]command) error {
		*q = append(*q, command{cmd})
		return nil
	})
	if err != nil {
		return err
	}
	p.deposit(tx, DataQueued{Who: who, Kind: cmd.Kind()})
	return nil
}

// DataQueue returns the queued commands in submission order.
func (p *Pallet) DataQueue(tx *storage.Tx) ([]DataCommand, error) {
	q, err := dataQueue.Get(tx)
	if err != nil {
		return nil, err
	}
	out := make([]DataCommand, 0, len(q))
	for _, c := range q {
		out = append(out, c.DataCommand)
	}
	return out, nil
}

// CreateAsset queues the content at cid, reachable through addr, to be
// added to the network with who as admin.
func (p *Pallet) CreateAsset(tx *storage.Tx, who types.AccountID, addr, cid string, name []byte, id AssetID, balance types.U128) error {
	ok, err := metadata.Contains(tx, id)
	if err != nil {
		return err
	}
	if ok {
		return ErrAssetExists
	}
	return p.enqueue(tx, who, AddBytes{
		Addr:    addr,
		CID:     cid,
		Admin:   who,
		Name:    name,
		AssetID: id,
		Balance: addU128(balance, 0),
	})
}

// RequestBytes queues a fetch of asset id, owned by owner, for who.
func (p *Pallet) RequestBytes(tx *storage.Tx, who, owner types.AccountID, id AssetID) error {
	ok, err := metadata.Contains(tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSuchAsset
	}
	return p.enqueue(tx, who, CatBytes{Requestor: who, Owner: owner, AssetID: id})
}

// GrantAccess lets target request the content of an asset administered by owner.
func (p *Pallet) GrantAccess(tx *storage.Tx, owner, target types.AccountID, id AssetID) error {
	admin, ok, err := assetAdmin.TryGet(tx, id)
	if err != nil {
		return err
	}
	if !ok || admin != owner {
		return ErrNoSuchOwnedContent
	}
	if err = assetAccess.Insert(tx, target, id, owner); err != nil {
		return err
	}
	err = balances.Mutate(tx, id, target, func(b *types.U128) error {
		*b = addU128(*b, 1)
		return nil
	})
	if err != nil {
		return err
	}
	p.deposit(tx, AccessGranted{Owner: owner, Target: target, AssetID: id})
	return nil
}

// InsertPinRequest queues a pin of the content of asset id for who. The
// asset must be administered by owner.
func (p *Pallet) InsertPinRequest(tx *storage.Tx, who, owner types.AccountID, id AssetID) error {
	admin, ok, err := assetAdmin.TryGet(tx, id)
	if err != nil {
		return err
	}
	if !ok || admin != owner {
		return ErrNoSuchOwnedContent
	}
	cid, err := metadata.Get(tx, id)
	if err != nil {
		return err
	}
	return p.enqueue(tx, who, PinCID{Account: who, AssetID: id, CID: cid})
}

// SubmitIpfsAddResults records content published by the offchain worker
// and creates the asset class with admin as owner.
func (p *Pallet) SubmitIpfsAddResults(tx *storage.Tx, who, admin types.AccountID, cid string, id AssetID, balance types.U128) error {
	ok, err := metadata.Contains(tx, id)
	if err != nil {
		return err
	}
	if ok {
		return ErrAssetExists
	}
	if err = metadata.Insert(tx, id, cid); err != nil {
		return err
	}
	if err = assetAdmin.Insert(tx, id, admin); err != nil {
		return err
	}
	if err = assetAccess.Insert(tx, admin, id, admin); err != nil {
		return err
	}
	if err = balances.Insert(tx, id, admin, addU128(balance, 0)); err != nil {
		return err
	}
	err = assetIDs.Mutate(tx, func(ids *[]AssetID) error {
		*ids = append(*ids, id)
		return nil
	})
	if err != nil {
		return err
	}
	p.deposit(tx, AssetCreated{Admin: admin, AssetID: id})
	return nil
}

// Metadata returns the CID of asset id, empty when unknown.
func (p *Pallet) Metadata(tx *storage.Tx, id AssetID) (string, error) {
	return metadata.Get(tx, id)
}

// AssetAccess returns the owner who granted who access to asset id, the
// zero account when none did.
func (p *Pallet) AssetAccess(tx *storage.Tx, who types.AccountID, id AssetID) (types.AccountID, error) {
	return assetAccess.Get(tx, who, id)
}

func (p *Pallet) AssetIDs(tx *storage.Tx) ([]AssetID, error) {
	return assetIDs.Get(tx)
}

func (p *Pallet) Balance(tx *storage.Tx, id AssetID, who types.AccountID) (types.U128, error) {
	b, ok, err := balances.TryGet(tx, id, who)
	if err != nil || !ok {
		return types.NewU128(*big.NewInt(0)), err
	}
	return b, nil
}

func addU128(a types.U128, n int64) types.U128 {
	sum := big.NewInt(n)
	if a.Int != nil {
		sum.Add(sum, a.Int)
	}
	return types.NewU128(*sum)
}
