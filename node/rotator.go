/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"fmt"

	"github.com/CESSProject/iris-node/internal/session"
	"github.com/CESSProject/iris-node/pkg/logger"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

const rotatorPallet = "Session"

var (
	currentIndex     = storage.NewValue[session.SessionIndex](rotatorPallet, "CurrentIndex")
	activeValidators = storage.NewValue[[]types.AccountID](rotatorPallet, "Validators")
	queuedValidators = storage.NewValue[[]types.AccountID](rotatorPallet, "QueuedValidators")
	rotationStage    = storage.NewValue[rotation](rotatorPallet, "RotationStage")
	lastRotation     = storage.NewValue[uint32](rotatorPallet, "LastRotationBlock")
)

const (
	stageIdle uint8 = iota
	stageEnded
	stageAdvanced
	stageStarted
)

// rotation is the progress of an unfinished rotation out of session From.
type rotation struct {
	From  session.SessionIndex
	Block uint32
	Stage uint8
}

// Rotator drives a SessionManager every period blocks. The set returned by
// NewSession is queued and becomes active one session later.
type Rotator struct {
	store   *storage.Store
	manager session.SessionManager
	period  uint32
	log     logger.Logger
}

func NewRotator(store *storage.Store, manager session.SessionManager, period uint32, log logger.Logger) *Rotator {
	if log == nil {
		log = logger.Discard()
	}
	return &Rotator{
		store:   store,
		manager: manager,
		period:  period,
		log:     log,
	}
}

// Genesis plans and starts session 0 and queues the set for session 1.
func (r *Rotator) Genesis() error {
	active, err := r.manager.NewSession(0)
	if err != nil {
		return errors.Wrap(err, "[NewSession]")
	}
	if err = r.manager.StartSession(0); err != nil {
		return errors.Wrap(err, "[StartSession]")
	}
	queued, err := r.manager.NewSession(1)
	if err != nil {
		return errors.Wrap(err, "[NewSession]")
	}
	return r.store.Update(func(tx *storage.Tx) error {
		if err := currentIndex.Put(tx, 0); err != nil {
			return err
		}
		if err := activeValidators.Put(tx, active); err != nil {
			return err
		}
		return queuedValidators.Put(tx, queued)
	})
}

// ShouldEndSession reports whether the session ends at block number.
func (r *Rotator) ShouldEndSession(number uint32) bool {
	return number > 0 && r.period > 0 && number%r.period == 0
}

// Rotate ends the current session at block number and starts the next one
// with the queued validators, then plans the session after it. Progress is
// recorded after every step, so calling Rotate again for the same block
// resumes an interrupted rotation and never repeats a finished one.
func (r *Rotator) Rotate(number uint32) error {
	var (
		rot  rotation
		done bool
	)
	err := r.store.View(func(tx *storage.Tx) error {
		last, ok, err := lastRotation.TryGet(tx)
		if err != nil {
			return err
		}
		if ok && last == number {
			done = true
			return nil
		}
		var pending bool
		if rot, pending, err = rotationStage.TryGet(tx); err != nil {
			return err
		}
		if !pending {
			rot = rotation{Block: number, Stage: stageIdle}
			rot.From, err = currentIndex.Get(tx)
		}
		return err
	})
	if err != nil || done {
		return err
	}
	if rot.Block != number {
		return errors.Errorf("rotation of block %d is still pending at block %d", rot.Block, number)
	}
	next := rot.From + 1

	if rot.Stage < stageEnded {
		if err = r.manager.EndSession(rot.From); err != nil {
			return errors.Wrap(err, "[EndSession]")
		}
		if err = r.setStage(&rot, stageEnded, nil); err != nil {
			return err
		}
	}

	if rot.Stage < stageAdvanced {
		err = r.setStage(&rot, stageAdvanced, func(tx *storage.Tx) error {
			active, err := queuedValidators.Get(tx)
			if err != nil {
				return err
			}
			if err = currentIndex.Put(tx, next); err != nil {
				return err
			}
			return activeValidators.Put(tx, active)
		})
		if err != nil {
			return err
		}
	}

	if rot.Stage < stageStarted {
		if err = r.manager.StartSession(next); err != nil {
			return errors.Wrap(err, "[StartSession]")
		}
		if err = r.setStage(&rot, stageStarted, nil); err != nil {
			return err
		}
	}

	queued, err := r.manager.NewSession(next + 1)
	if err != nil {
		return errors.Wrap(err, "[NewSession]")
	}
	err = r.store.Update(func(tx *storage.Tx) error {
		if err := queuedValidators.Put(tx, queued); err != nil {
			return err
		}
		if err := rotationStage.Kill(tx); err != nil {
			return err
		}
		return lastRotation.Put(tx, number)
	})
	if err != nil {
		return err
	}
	active, err := r.Validators()
	if err != nil {
		return err
	}
	r.log.Session("info", fmt.Sprintf("Rotated to session %d with %d validators, %d queued", next, len(active), len(queued)))
	return nil
}

func (r *Rotator) setStage(rot *rotation, stage uint8, fn func(tx *storage.Tx) error) error {
	err := r.store.Update(func(tx *storage.Tx) error {
		if fn != nil {
			if err := fn(tx); err != nil {
				return err
			}
		}
		return rotationStage.Put(tx, rotation{From: rot.From, Block: rot.Block, Stage: stage})
	})
	if err != nil {
		return err
	}
	rot.Stage = stage
	return nil
}

// Initialized reports whether Genesis ran against the store.
func (r *Rotator) Initialized() (bool, error) {
	var ok bool
	err := r.store.View(func(tx *storage.Tx) error {
		var err error
		ok, err = currentIndex.Exists(tx)
		return err
	})
	return ok, err
}

func (r *Rotator) SessionIndex() (session.SessionIndex, error) {
	var index session.SessionIndex
	err := r.store.View(func(tx *storage.Tx) error {
		var err error
		index, err = currentIndex.Get(tx)
		return err
	})
	return index, err
}

// Validators returns the active set of the current session.
func (r *Rotator) Validators() ([]types.AccountID, error) {
	var vals []types.AccountID
	err := r.store.View(func(tx *storage.Tx) error {
		var err error
		vals, err = activeValidators.Get(tx)
		return err
	})
	return vals, err
}

// QueuedValidators returns the set that becomes active at the next rotation.
func (r *Rotator) QueuedValidators() ([]types.AccountID, error) {
	var vals []types.AccountID
	err := r.store.View(func(tx *storage.Tx) error {
		var err error
		vals, err = queuedValidators.Get(tx)
		return err
	})
	return vals, err
}

// AverageSessionLength is not estimated.
func (r *Rotator) AverageSessionLength() uint32 {
	return 0
}

// EstimateNextSessionRotation always reports the next rotation as unknown.
func (r *Rotator) EstimateNextSessionRotation(now uint32) (uint32, bool) {
	return 0, false
}
