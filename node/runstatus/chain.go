/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package runstatus

import (
	"sync"
)

type Chainst interface {
	SetBlock(number uint32)
	SetSessionIndex(index uint32)
	SetSignAcc(acc string)
	SetValidator(st bool)

	GetBlock() uint32
	GetSessionIndex() uint32
	GetSignAcc() string
	GetValidator() bool
}

type ChainSt struct {
	lock         *sync.RWMutex
	block        uint32
	sessionIndex uint32
	signAcc      string
	validator    bool
}

func NewChainSt() *ChainSt {
	return &ChainSt{
		lock: new(sync.RWMutex),
	}
}

func (c *ChainSt) SetBlock(number uint32) {
	c.lock.Lock()
	c.block = number
	c.lock.Unlock()
}

func (c *ChainSt) GetBlock() uint32 {
	c.lock.RLock()
	value := c.block
	c.lock.RUnlock()
	return value
}

func (c *ChainSt) SetSessionIndex(index uint32) {
	c.lock.Lock()
	c.sessionIndex = index
	c.lock.Unlock()
}

func (c *ChainSt) GetSessionIndex() uint32 {
	c.lock.RLock()
	value := c.sessionIndex
	c.lock.RUnlock()
	return value
}

func (c *ChainSt) SetSignAcc(acc string) {
	c.lock.Lock()
	c.signAcc = acc
	c.lock.Unlock()
}

func (c *ChainSt) GetSignAcc() string {
	c.lock.RLock()
	value := c.signAcc
	c.lock.RUnlock()
	return value
}

func (c *ChainSt) SetValidator(st bool) {
	c.lock.Lock()
	c.validator = st
	c.lock.Unlock()
}

func (c *ChainSt) GetValidator() bool {
	c.lock.RLock()
	value := c.validator
	c.lock.RUnlock()
	return value
}
