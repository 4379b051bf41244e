/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package chain

import (
	"github.com/pkg/errors"
)

var ErrPoolFull = errors.New("transaction pool is full")

// Pool buffers extrinsics between the offchain worker and the block loop.
type Pool struct {
	ch chan Extrinsic
}

func NewPool(size int) *Pool {
	return &Pool{ch: make(chan Extrinsic, size)}
}

// Push never blocks.
func (p *Pool) Push(x Extrinsic) error {
	select {
	case p.ch <- x:
		return nil
	default:
		return ErrPoolFull
	}
}

// Drain returns every buffered extrinsic still valid at block now, in
// submission order.
func (p *Pool) Drain(now uint32) []Extrinsic {
	var out []Extrinsic
	for {
		select {
		case x := <-p.ch:
			if x.Expired(now) {
				continue
			}
			out = append(out, x)
		default:
			return out
		}
	}
}

func (p *Pool) Len() int {
	return len(p.ch)
}
