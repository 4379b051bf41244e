/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"fmt"

	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

// joinStoragePool queues who as a candidate provider of asset id and asks
// the ledger for a pin of the content owned by owner.
func (p *Pallet) joinStoragePool(tx *storage.Tx, who, owner types.AccountID, id assets.AssetID) error {
	queued, err := queuedStorageProviders.Get(tx, id)
	if err != nil {
		return err
	}
	if contains(queued, who) {
		return ErrAlreadyACandidate
	}
	active, err := storageProviders.Get(tx, id)
	if err != nil {
		return err
	}
	if contains(active, who) {
		return ErrAlreadyPinned
	}
	if err = p.ledger.InsertPinRequest(tx, who, owner, id); err != nil {
		return errors.Wrapf(ErrCantCreateRequest, "%v", err)
	}
	if err = queuedStorageProviders.Insert(tx, id, append(queued, who)); err != nil {
		return err
	}
	p.deposit(tx, RequestJoinStoragePoolSuccess{Who: who, AssetID: id})
	return nil
}

// confirmPin records that pinner holds the content of asset id.
func (p *Pallet) confirmPin(tx *storage.Tx, id assets.AssetID, pinner types.AccountID) error {
	queued, err := queuedStorageProviders.Get(tx, id)
	if err != nil {
		return err
	}
	if !contains(queued, pinner) {
		return ErrNotACandidate
	}
	current, err := pinners.Get(tx, id)
	if err != nil {
		return err
	}
	if contains(current, pinner) {
		return ErrAlreadyPinned
	}
	if err = pinners.Insert(tx, id, append(current, pinner)); err != nil {
		return err
	}
	return p.creditPoint(tx, id, pinner)
}

// selectCandidateStorageProviders promotes, for every asset with queued
// candidates, the candidates that have pinned the content. The queue is
// cleared whether or not a candidate was promoted.
func (p *Pallet) selectCandidateStorageProviders(tx *storage.Tx) error {
	ids, err := p.ledger.AssetIDs(tx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		candidates, ok, err := queuedStorageProviders.TryGet(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		pinned, err := pinners.Get(tx, id)
		if err != nil {
			return err
		}
		var promoted []types.AccountID
		for _, c := range candidates {
			if contains(pinned, c) {
				promoted = append(promoted, c)
			}
		}
		err = storageProviders.Mutate(tx, id, func(sps *[]types.AccountID) error {
			*sps = append(*sps, promoted...)
			return nil
		})
		if err != nil {
			return err
		}
		if err = queuedStorageProviders.Remove(tx, id); err != nil {
			return err
		}
		if len(promoted) > 0 {
			p.log.Session("info", fmt.Sprintf("Promoted %d storage providers for asset %d", len(promoted), id))
		}
	}
	return nil
}
