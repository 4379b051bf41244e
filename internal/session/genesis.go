/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

type GenesisConfig struct {
	InitialValidators []types.AccountID
	BootstrapNodes    []BootstrapNode
}

// Initialized reports whether a validator set has been stored.
func (p *Pallet) Initialized() (bool, error) {
	vals, err := p.Validators()
	return len(vals) > 0, err
}

// BuildGenesis stores the initial validators, all approved, and the
// bootstrap storage nodes.
func (p *Pallet) BuildGenesis(g GenesisConfig) error {
	return p.store.Update(func(tx *storage.Tx) error {
		if err := initializeValidators(tx, g.InitialValidators); err != nil {
			return err
		}
		for _, n := range g.BootstrapNodes {
			if err := bootstrapNodes.Insert(tx, n.PublicKey, n.Addrs); err != nil {
				return err
			}
		}
		return nil
	})
}

func initializeValidators(tx *storage.Tx, list []types.AccountID) error {
	if len(list) < 2 {
		return ErrTooFewGenesisValidators
	}
	current, err := validators.Get(tx)
	if err != nil {
		return err
	}
	if len(current) > 0 {
		return ErrAlreadyInitialized
	}
	if err = validators.Put(tx, list); err != nil {
		return err
	}
	return approvedValidators.Put(tx, list)
}
