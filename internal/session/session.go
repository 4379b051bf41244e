/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package session manages the validator set and the storage provider pools
// across session rotations, and accounts reward points per era and asset.
package session

import (
	"sync"

	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/internal/chain"
	"github.com/CESSProject/iris-node/pkg/logger"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/CESSProject/iris-node/pkg/utils"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

const PalletName = "IrisSession"

type (
	EraIndex     = uint32
	SessionIndex = uint32
	RewardPoint  = uint32
)

var (
	bootstrapNodes         = storage.NewMap[[]byte, []string](PalletName, "BootstrapNodes")
	substrateIpfsBridge    = storage.NewMap[types.AccountID, []byte](PalletName, "SubstrateIpfsBridge")
	queuedStorageProviders = storage.NewMap[assets.AssetID, []types.AccountID](PalletName, "QueuedStorageProviders")
	storageProviders       = storage.NewMap[assets.AssetID, []types.AccountID](PalletName, "StorageProviders")
	pinners                = storage.NewMap[assets.AssetID, []types.AccountID](PalletName, "Pinners")
	currentEra             = storage.NewValue[EraIndex](PalletName, "CurrentEra")
	activeEra              = storage.NewValue[EraIndex](PalletName, "ActiveEra")
	erasRewardPoints       = storage.NewDoubleMap[EraIndex, assets.AssetID, EraRewardPoints](PalletName, "ErasRewardPoints")
	validators             = storage.NewValue[[]types.AccountID](PalletName, "Validators")
	approvedValidators     = storage.NewValue[[]types.AccountID](PalletName, "ApprovedValidators")
	offlineValidators      = storage.NewValue[[]types.AccountID](PalletName, "OfflineValidators")
	sessionParticipation   = storage.NewMap[EraIndex, []types.AccountID](PalletName, "SessionParticipation")
	unproductiveSessions   = storage.NewMap[types.AccountID, uint32](PalletName, "UnproductiveSessions")
)

// Ledger is the asset ledger the session pallet works with.
type Ledger interface {
	AssetIDs(tx *storage.Tx) ([]assets.AssetID, error)
	InsertPinRequest(tx *storage.Tx, who, owner types.AccountID, id assets.AssetID) error
	SubmitIpfsAddResults(tx *storage.Tx, who, admin types.AccountID, cid string, id assets.AssetID, balance types.U128) error
	DataQueue(tx *storage.Tx) ([]assets.DataCommand, error)
	Metadata(tx *storage.Tx, id assets.AssetID) (string, error)
	AssetAccess(tx *storage.Tx, who types.AccountID, id assets.AssetID) (types.AccountID, error)
}

var _ Ledger = (*assets.Pallet)(nil)

type Config struct {
	// MinAuthorities is the floor applied to manual and unproductive removals
	MinAuthorities uint32
	// MaxDeadSession is the number of unproductive eras tolerated
	MaxDeadSession uint32
}

type Pallet struct {
	store  *storage.Store
	ledger Ledger
	cfg    Config
	log    logger.Logger

	lock   sync.Mutex
	events []chain.Event
}

func New(store *storage.Store, ledger Ledger, cfg Config, log logger.Logger) *Pallet {
	if log == nil {
		log = logger.Discard()
	}
	return &Pallet{
		store:  store,
		ledger: ledger,
		cfg:    cfg,
		log:    log,
	}
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

func view[T any](p *Pallet, fn func(tx *storage.Tx) (T, error)) (T, error) {
	var out T
	err := p.store.View(func(tx *storage.Tx) error {
		var err error
		out, err = fn(tx)
		return err
	})
	return out, err
}

func (p *Pallet) Validators() ([]types.AccountID, error) {
	return view(p, validators.Get)
}

func (p *Pallet) ApprovedValidators() ([]types.AccountID, error) {
	return view(p, approvedValidators.Get)
}

func (p *Pallet) OfflineValidators() ([]types.AccountID, error) {
	return view(p, offlineValidators.Get)
}

// CurrentEra returns the era planned by the last NewSession.
func (p *Pallet) CurrentEra() (EraIndex, bool, error) {
	var (
		era EraIndex
		ok  bool
	)
	err := p.store.View(func(tx *storage.Tx) error {
		var err error
		era, ok, err = currentEra.TryGet(tx)
		return err
	})
	return era, ok, err
}

// ActiveEra returns the era started by the last StartSession.
func (p *Pallet) ActiveEra() (EraIndex, bool, error) {
	var (
		era EraIndex
		ok  bool
	)
	err := p.store.View(func(tx *storage.Tx) error {
		var err error
		era, ok, err = activeEra.TryGet(tx)
		return err
	})
	return era, ok, err
}

func (p *Pallet) QueuedStorageProviders(id assets.AssetID) ([]types.AccountID, error) {
	return view(p, func(tx *storage.Tx) ([]types.AccountID, error) {
		return queuedStorageProviders.Get(tx, id)
	})
}

func (p *Pallet) StorageProviders(id assets.AssetID) ([]types.AccountID, error) {
	return view(p, func(tx *storage.Tx) ([]types.AccountID, error) {
		return storageProviders.Get(tx, id)
	})
}

func (p *Pallet) Pinners(id assets.AssetID) ([]types.AccountID, error) {
	return view(p, func(tx *storage.Tx) ([]types.AccountID, error) {
		return pinners.Get(tx, id)
	})
}

// SubstrateIpfsBridge returns the storage node public key registered by who.
func (p *Pallet) SubstrateIpfsBridge(who types.AccountID) ([]byte, error) {
	return view(p, func(tx *storage.Tx) ([]byte, error) {
		return substrateIpfsBridge.Get(tx, who)
	})
}

type BootstrapNode struct {
	PublicKey []byte
	Addrs     []string
}

// BootstrapNodes lists the registered storage nodes in storage order.
func (p *Pallet) BootstrapNodes() ([]BootstrapNode, error) {
	return view(p, func(tx *storage.Tx) ([]BootstrapNode, error) {
		var out []BootstrapNode
		err := bootstrapNodes.Iter(tx, func(k []byte, v []string) bool {
			out = append(out, BootstrapNode{PublicKey: k, Addrs: v})
			return true
		})
		return out, err
	})
}

func (p *Pallet) IsBootstrapNode(publicKey []byte) (bool, error) {
	return view(p, func(tx *storage.Tx) (bool, error) {
		return bootstrapNodes.Contains(tx, publicKey)
	})
}

func contains(list []types.AccountID, acc types.AccountID) bool {
	for _, v := range list {
		if v == acc {
			return true
		}
	}
	return false
}

func without(list []types.AccountID, acc types.AccountID) []types.AccountID {
	out := make([]types.AccountID, 0, len(list))
	for _, v := range list {
		if v != acc {
			out = append(out, v)
		}
	}
	return out
}

func accountString(acc types.AccountID) string {
	return utils.AccountString(acc)
}
