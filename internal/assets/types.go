/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package assets

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

type AssetID uint32

// DataCommand is work queued for the offchain worker.
type DataCommand interface {
	Kind() string
	isDataCommand()
}

// AddBytes asks a validator to fetch CID from Addr and publish it locally.
type AddBytes struct {
	Addr    string
	CID     string
	Admin   types.AccountID
	Name    []byte
	AssetID AssetID
	Balance types.U128
}

// CatBytes asks the requestor's node to fetch the asset into local storage.
type CatBytes struct {
	Requestor types.AccountID
	Owner     types.AccountID
	AssetID   AssetID
}

// PinCID asks Account's storage node to pin the asset content.
type PinCID struct {
	Account types.AccountID
	AssetID AssetID
	CID     string
}

func (AddBytes) Kind() string { return "AddBytes" }
func (CatBytes) Kind() string { return "CatBytes" }
func (PinCID) Kind() string   { return "PinCID" }

func (AddBytes) isDataCommand() {}
func (CatBytes) isDataCommand() {}
func (PinCID) isDataCommand()   {}

const (
	tagAddBytes byte = iota
	tagCatBytes
	tagPinCID
)

// command is the SCALE enum form of a DataCommand.
type command struct {
	DataCommand
}

func (c command) Encode(enc scale.Encoder) error {
	var tag byte
	switch c.DataCommand.(type) {
	case AddBytes:
		tag = tagAddBytes
	case CatBytes:
		tag = tagCatBytes
	case PinCID:
		tag = tagPinCID
	default:
		return errors.Errorf("unknown data command %T", c.DataCommand)
	}
	if err := enc.PushByte(tag); err != nil {
		return err
	}
	return enc.Encode(c.DataCommand)
}

func (c *command) Decode(dec scale.Decoder) error {
	tag, err := dec.ReadOneByte()
	if err != nil {
		return err
	}
	switch tag {
	case tagAddBytes:
		var v AddBytes
		err = dec.Decode(&v)
		c.DataCommand = v
	case tagCatBytes:
		var v CatBytes
		err = dec.Decode(&v)
		c.DataCommand = v
	case tagPinCID:
		var v PinCID
		err = dec.Decode(&v)
		c.DataCommand = v
	default:
		return errors.Errorf("unknown data command tag %d", tag)
	}
	return err
}
