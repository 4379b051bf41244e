/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package chain

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

type OriginKind uint8

const (
	OriginNone OriginKind = iota
	OriginRoot
	OriginSigned
)

// Origin is the dispatch origin of a call.
type Origin struct {
	Kind OriginKind
	Who  types.AccountID
}

func RootOrigin() Origin {
	return Origin{Kind: OriginRoot}
}

func SignedOrigin(who types.AccountID) Origin {
	return Origin{Kind: OriginSigned, Who: who}
}

func NoneOrigin() Origin {
	return Origin{Kind: OriginNone}
}

func (o Origin) IsRoot() bool {
	return o.Kind == OriginRoot
}

// Signer returns the signing account of a signed origin.
func (o Origin) Signer() (types.AccountID, bool) {
	if o.Kind != OriginSigned {
		return types.AccountID{}, false
	}
	return o.Who, true
}

// Call is a dispatchable pallet call, named "Pallet.call_name".
type Call interface {
	CallName() string
}

// Event is deposited by a successful call or hook.
type Event interface {
	EventName() string
}

// ValidTransaction is the verdict for an accepted unsigned call.
type ValidTransaction struct {
	TagPrefix string
	Longevity uint32
	Propagate bool
}

// UnsignedValidator accepts or rejects unsigned calls before they enter the pool.
type UnsignedValidator func(call Call) (ValidTransaction, error)

// Extrinsic is a call submitted to the pool.
type Extrinsic struct {
	// Signer is nil for unsigned extrinsics
	Signer    *types.AccountID
	Signature []byte
	Call      Call
	// Block is the block the extrinsic was built at
	Block     uint32
	Longevity uint32
}

func (x Extrinsic) Origin() Origin {
	if x.Signer == nil {
		return NoneOrigin()
	}
	return SignedOrigin(*x.Signer)
}

// Expired reports whether an unsigned extrinsic has outlived its longevity.
func (x Extrinsic) Expired(now uint32) bool {
	if x.Signer != nil || x.Longevity == 0 {
		return false
	}
	return now > x.Block+x.Longevity
}
