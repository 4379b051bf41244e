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

// ReportOffence marks every offender for removal at the next NewSession.
func (p *Pallet) ReportOffence(reporters []types.AccountID, offenders []types.AccountID) error {
	return p.store.Update(func(tx *storage.Tx) error {
		for _, v := range offenders {
			if err := p.markForRemoval(tx, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Pallet) IsKnownOffence(offenders []types.AccountID, timeSlot uint64) bool {
	return false
}
