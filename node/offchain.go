/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"context"
	"fmt"

	"github.com/CESSProject/iris-node/configs"
	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/CESSProject/iris-node/pkg/utils"
)

// offchainJob is the offchain work of one block with the data commands that
// block queued, captured before the next block clears them.
type offchainJob struct {
	number   uint32
	commands []assets.DataCommand
}

func (n *Node) snapshotOffchain(number uint32) offchainJob {
	job := offchainJob{number: number}
	err := n.state.View(func(tx *storage.Tx) error {
		var err error
		job.commands, err = n.assets.DataQueue(tx)
		return err
	})
	if err != nil {
		n.Pipeline("err", fmt.Sprintf("[DataQueue] %v", err))
	}
	return job
}

// enqueueOffchain hands the work of block number to the offchain worker. It
// blocks while the worker is configs.OffchainQueueSize blocks behind.
func (n *Node) enqueueOffchain(ctx context.Context, number uint32) bool {
	job := n.snapshotOffchain(number)
	select {
	case n.offchainJobs <- job:
		n.metrics.pending.Set(float64(len(n.offchainJobs)))
		return true
	case <-ctx.Done():
		return false
	}
}

// OffchainWorker runs the offchain work of block number against the data
// queue as it is now. Runs never overlap; a run waits for the previous one.
func (n *Node) OffchainWorker(ctx context.Context, number uint32) {
	n.runOffchain(ctx, n.snapshotOffchain(number))
}

func (n *Node) runOffchain(ctx context.Context, job offchainJob) {
	n.offchainLock.Lock()
	defer n.offchainLock.Unlock()
	n.SetWorking(true)
	defer n.SetWorking(false)
	defer func() {
		if err := recover(); err != nil {
			n.Pnc(utils.RecoverError(err))
		}
	}()

	if job.number%configs.HousekeepingInterval == 0 {
		if err := n.connectionHousekeeping(ctx, job.number); err != nil {
			n.Boot("err", fmt.Sprintf("Encountered an error during connection housekeeping: %v", err))
		}
	}

	n.handleDataRequests(ctx, job.number, job.commands)

	if job.number%configs.MetadataInterval == 0 {
		if err := n.printMetadata(ctx); err != nil {
			n.Boot("err", fmt.Sprintf("Encountered an error while obtaining metadata: %v", err))
		}
	}
	n.SetLastWorkerBlock(job.number)
}
