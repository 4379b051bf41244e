/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package runstatus

import (
	"sync"
)

type Offchainst interface {
	SetIpfsApi(api string)
	SetPeerCount(n int)
	SetLastWorkerBlock(number uint32)

	GetIpfsApi() string
	GetPeerCount() int
	GetLastWorkerBlock() uint32

	SetWorking(working bool)
	GetWorking() bool
}

type OffchainSt struct {
	lock            *sync.RWMutex
	ipfsApi         string
	peerCount       int
	lastWorkerBlock uint32
	working         bool
}

func NewOffchainSt() *OffchainSt {
	return &OffchainSt{
		lock: new(sync.RWMutex),
	}
}

func (o *OffchainSt) SetIpfsApi(api string) {
	o.lock.Lock()
	o.ipfsApi = api
	o.lock.Unlock()
}

func (o *OffchainSt) GetIpfsApi() string {
	o.lock.RLock()
	value := o.ipfsApi
	o.lock.RUnlock()
	return value
}

func (o *OffchainSt) SetPeerCount(n int) {
	o.lock.Lock()
	o.peerCount = n
	o.lock.Unlock()
}

func (o *OffchainSt) GetPeerCount() int {
	o.lock.RLock()
	value := o.peerCount
	o.lock.RUnlock()
	return value
}

func (o *OffchainSt) SetLastWorkerBlock(number uint32) {
	o.lock.Lock()
	o.lastWorkerBlock = number
	o.lock.Unlock()
}

func (o *OffchainSt) GetLastWorkerBlock() uint32 {
	o.lock.RLock()
	value := o.lastWorkerBlock
	o.lock.RUnlock()
	return value
}

func (o *OffchainSt) SetWorking(working bool) {
	o.lock.Lock()
	o.working = working
	o.lock.Unlock()
}

func (o *OffchainSt) GetWorking() bool {
	o.lock.RLock()
	value := o.working
	o.lock.RUnlock()
	return value
}
