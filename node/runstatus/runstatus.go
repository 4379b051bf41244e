/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package runstatus

type Runstatus interface {
	Processst
	Chainst
	Offchainst
}

type runstatus struct {
	*ProcessSt
	*ChainSt
	*OffchainSt
}

var _ Runstatus = (*runstatus)(nil)

func NewRunstatus() Runstatus {
	return &runstatus{
		ProcessSt:  NewProcessSt(),
		ChainSt:    NewChainSt(),
		OffchainSt: NewOffchainSt(),
	}
}
