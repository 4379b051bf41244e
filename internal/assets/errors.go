/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package assets

import "github.com/pkg/errors"

var (
	ErrBadOrigin          = errors.New("BadOrigin")
	ErrNoSuchOwnedContent = errors.New("NoSuchOwnedContent")
	ErrNoSuchAsset        = errors.New("NoSuchAsset")
	ErrAssetExists        = errors.New("AssetExists")
	ErrUnknownCall        = errors.New("UnknownCall")
)
