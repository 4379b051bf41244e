/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package assets

import "github.com/centrifuge/go-substrate-rpc-client/v4/types"

type DataQueued struct {
	Who  types.AccountID
	Kind string
}

type AssetCreated struct {
	Admin   types.AccountID
	AssetID AssetID
}

type AccessGranted struct {
	Owner   types.AccountID
	Target  types.AccountID
	AssetID AssetID
}

func (DataQueued) EventName() string    { return "IrisAssets.DataQueued" }
func (AssetCreated) EventName() string  { return "IrisAssets.AssetCreated" }
func (AccessGranted) EventName() string { return "IrisAssets.AccessGranted" }
