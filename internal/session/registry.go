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

func (p *Pallet) addValidator(tx *storage.Tx, id types.AccountID) error {
	if err := p.doAddValidator(tx, id); err != nil {
		return err
	}
	return p.approveValidator(tx, id)
}

func (p *Pallet) removeValidator(tx *storage.Tx, id types.AccountID) error {
	if err := p.doRemoveValidator(tx, id); err != nil {
		return err
	}
	return p.unapproveValidator(tx, id)
}

func (p *Pallet) addValidatorAgain(tx *storage.Tx, who, id types.AccountID) error {
	if who != id {
		return ErrBadOrigin
	}
	approved, err := approvedValidators.Get(tx)
	if err != nil {
		return err
	}
	if !contains(approved, id) {
		return ErrValidatorNotApproved
	}
	return p.doAddValidator(tx, id)
}

func (p *Pallet) doAddValidator(tx *storage.Tx, id types.AccountID) error {
	vals, err := validators.Get(tx)
	if err != nil {
		return err
	}
	if contains(vals, id) {
		return ErrDuplicate
	}
	if err = validators.Put(tx, append(vals, id)); err != nil {
		return err
	}
	if err = unproductiveSessions.Insert(tx, id, 0); err != nil {
		return err
	}
	p.deposit(tx, ValidatorAdditionInitiated{Who: id})
	p.log.Session("info", fmt.Sprintf("Validator addition initiated: %s", accountString(id)))
	return nil
}

func (p *Pallet) doRemoveValidator(tx *storage.Tx, id types.AccountID) error {
	vals, err := validators.Get(tx)
	if err != nil {
		return err
	}
	if !p.aboveFloor(len(vals)) {
		return ErrTooLowValidatorCount
	}
	if err = validators.Put(tx, without(vals, id)); err != nil {
		return err
	}
	p.deposit(tx, ValidatorRemovalInitiated{Who: id})
	p.log.Session("info", fmt.Sprintf("Validator removal initiated: %s", accountString(id)))
	return nil
}

// aboveFloor reports whether a set of n validators may lose one member.
func (p *Pallet) aboveFloor(n int) bool {
	if n == 0 {
		return false
	}
	return uint32(n-1) >= p.cfg.MinAuthorities
}

func (p *Pallet) approveValidator(tx *storage.Tx, id types.AccountID) error {
	approved, err := approvedValidators.Get(tx)
	if err != nil {
		return err
	}
	if contains(approved, id) {
		p.log.Session("warn", fmt.Sprintf("Validator %s is already approved", accountString(id)))
		return nil
	}
	return approvedValidators.Put(tx, append(approved, id))
}

func (p *Pallet) unapproveValidator(tx *storage.Tx, id types.AccountID) error {
	approved, err := approvedValidators.Get(tx)
	if err != nil {
		return err
	}
	return approvedValidators.Put(tx, without(approved, id))
}

// markForRemoval queues id for removal at the next NewSession.
func (p *Pallet) markForRemoval(tx *storage.Tx, id types.AccountID) error {
	err := offlineValidators.Mutate(tx, func(v *[]types.AccountID) error {
		*v = append(*v, id)
		return nil
	})
	if err != nil {
		return err
	}
	p.log.Session("info", fmt.Sprintf("Offline validator marked for auto removal: %s", accountString(id)))
	return nil
}

// removeOfflineValidators drops every queued offline validator from the
// active set without applying the MinAuthorities floor, then clears the queue.
func (p *Pallet) removeOfflineValidators(tx *storage.Tx) error {
	offline, err := offlineValidators.Get(tx)
	if err != nil {
		return err
	}
	vals, err := validators.Get(tx)
	if err != nil {
		return err
	}
	kept := make([]types.AccountID, 0, len(vals))
	for _, v := range vals {
		if !contains(offline, v) {
			kept = append(kept, v)
		}
	}
	if err = validators.Put(tx, kept); err != nil {
		return err
	}
	if len(offline) > 0 {
		p.log.Session("info", fmt.Sprintf("Initiated removal of %d offline validators", len(offline)))
	}
	return offlineValidators.Put(tx, []types.AccountID{})
}
