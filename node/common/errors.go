/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package common

const (
	// ok
	OK = "ok"

	// server err
	ERR_SystemErr = "system error"

	// client err
	ERR_NotFound   = "not found"
	ERR_InvalidCid = "invalid cid"
)
