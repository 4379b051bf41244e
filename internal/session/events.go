/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// New validator addition initiated. Effective in ~2 sessions.
type ValidatorAdditionInitiated struct {
	Who types.AccountID
}

// Validator removal initiated. Effective in ~2 sessions.
type ValidatorRemovalInitiated struct {
	Who types.AccountID
}

// Validator published their storage node public key and multiaddrs.
type PublishedIdentity struct {
	Who types.AccountID
}

// A node requested to join a storage pool.
type RequestJoinStoragePoolSuccess struct {
	Who     types.AccountID
	AssetID assets.AssetID
}

func (ValidatorAdditionInitiated) EventName() string { return PalletName + ".ValidatorAdditionInitiated" }
func (ValidatorRemovalInitiated) EventName() string  { return PalletName + ".ValidatorRemovalInitiated" }
func (PublishedIdentity) EventName() string          { return PalletName + ".PublishedIdentity" }
func (RequestJoinStoragePoolSuccess) EventName() string {
	return PalletName + ".RequestJoinStoragePoolSuccess"
}
