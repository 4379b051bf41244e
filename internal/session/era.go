/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"fmt"

	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// SessionManager is driven by the session rotation.
type SessionManager interface {
	// NewSession plans session index and returns the validators for it.
	NewSession(index SessionIndex) ([]types.AccountID, error)
	// EndSession closes session index.
	EndSession(index SessionIndex) error
	// StartSession activates session index.
	StartSession(index SessionIndex) error
}

var _ SessionManager = (*Pallet)(nil)

func (p *Pallet) NewSession(index SessionIndex) ([]types.AccountID, error) {
	p.log.Session("info", fmt.Sprintf("Starting new session with index: %d", index))
	var vals []types.AccountID
	err := p.store.Update(func(tx *storage.Tx) error {
		if err := currentEra.Put(tx, index); err != nil {
			return err
		}
		if err := p.removeOfflineValidators(tx); err != nil {
			return err
		}
		if err := p.selectCandidateStorageProviders(tx); err != nil {
			return err
		}
		var err error
		vals, err = validators.Get(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vals, nil
}

func (p *Pallet) EndSession(index SessionIndex) error {
	p.log.Session("info", fmt.Sprintf("Ending session with index: %d", index))
	return p.store.Update(func(tx *storage.Tx) error {
		return p.markDeadValidators(tx, index)
	})
}

func (p *Pallet) StartSession(index SessionIndex) error {
	p.log.Session("info", fmt.Sprintf("Starting session with index: %d", index))
	return p.store.Update(func(tx *storage.Tx) error {
		return activeEra.Put(tx, index)
	})
}
