/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

type IndividualPoints struct {
	Account types.AccountID
	Points  RewardPoint
}

// EraRewardPoints holds the points earned during one era for one asset.
// Individual is kept sorted by account.
type EraRewardPoints struct {
	Total      RewardPoint
	Individual []IndividualPoints
}

func (e *EraRewardPoints) add(acc types.AccountID, n RewardPoint) {
	e.Total += n
	i := sort.Search(len(e.Individual), func(i int) bool {
		return bytes.Compare(e.Individual[i].Account[:], acc[:]) >= 0
	})
	if i < len(e.Individual) && e.Individual[i].Account == acc {
		e.Individual[i].Points += n
		return
	}
	e.Individual = append(e.Individual, IndividualPoints{})
	copy(e.Individual[i+1:], e.Individual[i:])
	e.Individual[i] = IndividualPoints{Account: acc, Points: n}
}

// Points returns the points earned by acc.
func (e EraRewardPoints) Points(acc types.AccountID) RewardPoint {
	for _, v := range e.Individual {
		if v.Account == acc {
			return v.Points
		}
	}
	return 0
}

// creditPoint awards one point to acc for asset id in the active era and
// records its participation. Without an active era nothing is credited.
func (p *Pallet) creditPoint(tx *storage.Tx, id assets.AssetID, acc types.AccountID) error {
	era, ok, err := activeEra.TryGet(tx)
	if err != nil || !ok {
		return err
	}
	return p.credit(tx, era, id, acc)
}

func (p *Pallet) credit(tx *storage.Tx, era EraIndex, id assets.AssetID, acc types.AccountID) error {
	err := sessionParticipation.Mutate(tx, era, func(v *[]types.AccountID) error {
		*v = append(*v, acc)
		return nil
	})
	if err != nil {
		return err
	}
	return erasRewardPoints.Mutate(tx, era, id, func(e *EraRewardPoints) error {
		e.add(acc, 1)
		return nil
	})
}

// creditAll awards one point to each of accs.
func (p *Pallet) creditAll(tx *storage.Tx, id assets.AssetID, accs []types.AccountID) error {
	era, ok, err := activeEra.TryGet(tx)
	if err != nil || !ok {
		return err
	}
	for _, acc := range accs {
		if err = p.credit(tx, era, id, acc); err != nil {
			return err
		}
	}
	return nil
}

// markDeadValidators counts one more unproductive era for every validator
// that did not participate in era. Validators past MaxDeadSession are
// removed while the set stays above MinAuthorities.
func (p *Pallet) markDeadValidators(tx *storage.Tx, era EraIndex) error {
	participants, err := sessionParticipation.Get(tx, era)
	if err != nil {
		return err
	}
	vals, err := validators.Get(tx)
	if err != nil {
		return err
	}
	for _, acc := range vals {
		if contains(participants, acc) {
			continue
		}
		count, err := unproductiveSessions.Get(tx, acc)
		if err != nil {
			return err
		}
		if count <= p.cfg.MaxDeadSession {
			if err = unproductiveSessions.Insert(tx, acc, count+1); err != nil {
				return err
			}
			continue
		}
		current, err := validators.Get(tx)
		if err != nil {
			return err
		}
		if !p.aboveFloor(len(current)) {
			continue
		}
		if err = validators.Put(tx, without(current, acc)); err != nil {
			return err
		}
		p.log.Session("info", fmt.Sprintf("Unproductive validator removed: %s", accountString(acc)))
	}
	return nil
}

func (p *Pallet) ErasRewardPoints(era EraIndex, id assets.AssetID) (EraRewardPoints, error) {
	return view(p, func(tx *storage.Tx) (EraRewardPoints, error) {
		return erasRewardPoints.Get(tx, era, id)
	})
}

func (p *Pallet) SessionParticipation(era EraIndex) ([]types.AccountID, error) {
	return view(p, func(tx *storage.Tx) ([]types.AccountID, error) {
		return sessionParticipation.Get(tx, era)
	})
}

func (p *Pallet) UnproductiveSessions(acc types.AccountID) (uint32, error) {
	return view(p, func(tx *storage.Tx) (uint32, error) {
		return unproductiveSessions.Get(tx, acc)
	})
}
