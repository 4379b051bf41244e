/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"github.com/CESSProject/iris-node/configs"
	"github.com/CESSProject/iris-node/internal/chain"
)

// ValidateUnsigned admits the calls the offchain worker may submit without
// a signature.
func (p *Pallet) ValidateUnsigned(call chain.Call) (chain.ValidTransaction, error) {
	switch call.(type) {
	case SubmitRpcReady, SubmitIpfsIdentity:
		return chain.ValidTransaction{
			TagPrefix: configs.UnsignedTagPrefix,
			Longevity: configs.UnsignedLongevity,
			Propagate: true,
		}, nil
	}
	return chain.ValidTransaction{}, ErrInvalidTransactionCall
}
