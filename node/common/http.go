/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package common

const (
	Header_Account         = "Account"
	Header_ContentType     = "Content-Type"
	Header_X_Forwarded_For = "X-Forwarded-For"
)
