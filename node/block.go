/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"fmt"

	"github.com/CESSProject/iris-node/internal/chain"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/pkg/errors"
)

var blockNumber = storage.NewValue[uint32]("System", "Number")

// ImportBlock executes block number: session rotation when due, the start
// of block hooks, then every extrinsic waiting in the pool.
func (n *Node) ImportBlock(number uint32) error {
	if n.rotator.ShouldEndSession(number) {
		if err := n.rotateSession(number); err != nil {
			return err
		}
	}
	err := n.state.Update(func(tx *storage.Tx) error {
		if err := blockNumber.Put(tx, number); err != nil {
			return err
		}
		return n.assets.OnInitialize(tx)
	})
	if err != nil {
		return errors.Wrap(err, "[OnInitialize]")
	}
	for _, x := range n.pool.Drain(number) {
		n.apply(x)
	}
	n.depositEvents()

	n.SetBlock(number)
	n.metrics.block.Set(float64(number))
	return nil
}

// BlockNumber returns the number of the last imported block.
func (n *Node) BlockNumber() (uint32, error) {
	var number uint32
	err := n.state.View(func(tx *storage.Tx) error {
		var err error
		number, err = blockNumber.Get(tx)
		return err
	})
	return number, err
}

func (n *Node) rotateSession(number uint32) error {
	if err := n.rotator.Rotate(number); err != nil {
		n.Session("err", fmt.Sprintf("[Rotate] %v", err))
		return err
	}
	index, err := n.rotator.SessionIndex()
	if err != nil {
		return err
	}
	vals, err := n.rotator.Validators()
	if err != nil {
		return err
	}
	n.SetSessionIndex(index)
	n.metrics.sessionIndex.Set(float64(index))
	n.metrics.validators.Set(float64(len(vals)))
	return nil
}

func (n *Node) apply(x chain.Extrinsic) {
	name := x.Call.CallName()
	if err := chain.Verify(x); err != nil {
		n.Log("err", fmt.Sprintf("[%s] %v", name, err))
		n.metrics.extrinsics.WithLabelValues(name, "invalid").Inc()
		return
	}
	if x.Signer == nil {
		if _, err := n.session.ValidateUnsigned(x.Call); err != nil {
			n.Log("err", fmt.Sprintf("[%s] %v", name, err))
			n.metrics.extrinsics.WithLabelValues(name, "invalid").Inc()
			return
		}
	}
	dispatch, ok := n.dispatchers[palletOf(x.Call)]
	if !ok {
		n.Log("err", fmt.Sprintf("[%s] no pallet for call", name))
		n.metrics.extrinsics.WithLabelValues(name, "invalid").Inc()
		return
	}
	if err := dispatch(x.Origin(), x.Call); err != nil {
		n.Log("warn", fmt.Sprintf("[%s] dispatch failed: %v", name, err))
		n.metrics.extrinsics.WithLabelValues(name, "failed").Inc()
		return
	}
	n.metrics.extrinsics.WithLabelValues(name, "ok").Inc()
}

func (n *Node) depositEvents() {
	events := append(n.session.TakeEvents(), n.assets.TakeEvents()...)
	for _, ev := range events {
		n.Log("info", fmt.Sprintf("Event %s: %+v", ev.EventName(), ev))
		n.metrics.events.WithLabelValues(ev.EventName()).Inc()
	}
}
