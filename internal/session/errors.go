/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"github.com/CESSProject/iris-node/pkg/ipfs"
	"github.com/pkg/errors"
)

// Pallet errors, named after the ledger error variants.
var (
	ErrTooLowValidatorCount = errors.New("TooLowValidatorCount")
	ErrDuplicate            = errors.New("Duplicate")
	ErrValidatorNotApproved = errors.New("ValidatorNotApproved")
	ErrBadOrigin            = errors.New("BadOrigin")
	ErrNoSuchOwnedContent   = errors.New("NoSuchOwnedContent")
	ErrInsufficientBalance  = errors.New("InsufficientBalance")
	ErrAlreadyACandidate    = errors.New("AlreadyACandidate")
	ErrAlreadyPinned        = errors.New("AlreadyPinned")
	ErrNotACandidate        = errors.New("NotACandidate")
)

// Storage node errors surfaced by the data pipeline.
var (
	ErrCantCreateRequest = ipfs.ErrCantCreateRequest
	ErrRequestTimeout    = ipfs.ErrRequestTimeout
	ErrRequestFailed     = ipfs.ErrRequestFailed
)

var (
	ErrInvalidTransactionCall  = errors.New("invalid transaction call")
	ErrUnknownCall             = errors.New("UnknownCall")
	ErrTooFewGenesisValidators = errors.New("at least 2 validators should be initialized")
	ErrAlreadyInitialized      = errors.New("validators are already initialized")
)
