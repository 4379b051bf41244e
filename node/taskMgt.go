/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"context"
	"fmt"
	"time"

	"github.com/CESSProject/iris-node/pkg/utils"
)

func (n *Node) TaskMgt(ctx context.Context) {
	var (
		ch_blockMgt    = make(chan bool, 1)
		ch_offchainMgt = make(chan bool, 1)
	)

	go n.blockMgt(ctx, ch_blockMgt)
	go n.offchainMgt(ctx, ch_offchainMgt)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ch_blockMgt:
			go n.blockMgt(ctx, ch_blockMgt)
		case <-ch_offchainMgt:
			go n.offchainMgt(ctx, ch_offchainMgt)
		}
	}
}

// blockMgt imports one block per block time and queues its offchain work.
func (n *Node) blockMgt(ctx context.Context, ch chan bool) {
	defer func() {
		if err := recover(); err != nil {
			n.Pnc(utils.RecoverError(err))
		}
		ch <- true
	}()

	number, err := n.BlockNumber()
	if err != nil {
		n.Log("err", fmt.Sprintf("[BlockNumber] %v", err))
		return
	}

	tick := time.NewTicker(n.ReadBlockTime())
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			number++
			if err = n.ImportBlock(number); err != nil {
				n.Log("err", fmt.Sprintf("[ImportBlock] %d: %v", number, err))
				number--
				continue
			}
			if !n.enqueueOffchain(ctx, number) {
				return
			}
		}
	}
}

// offchainMgt runs the queued offchain work one block at a time.
func (n *Node) offchainMgt(ctx context.Context, ch chan bool) {
	defer func() {
		if err := recover(); err != nil {
			n.Pnc(utils.RecoverError(err))
		}
		ch <- true
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-n.offchainJobs:
			n.metrics.pending.Set(float64(len(n.offchainJobs)))
			n.runOffchain(ctx, job)
		}
	}
}
