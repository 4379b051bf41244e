/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package ipfs

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multiaddr"
	"github.com/pkg/errors"
)

// Request is one of the operations a storage node accepts.
type Request interface {
	Name() string
	Validate() error
	isRequest()
}

type IdentityRequest struct{}

type ConnectRequest struct {
	Addr string
}

type DisconnectRequest struct {
	Addr string
}

type CatBytesRequest struct {
	CID string
}

type AddBytesRequest struct {
	Data []byte
}

type InsertPinRequest struct {
	CID       string
	Recursive bool
}

type PeersRequest struct{}

func (IdentityRequest) Name() string   { return "identity" }
func (ConnectRequest) Name() string    { return "connect" }
func (DisconnectRequest) Name() string { return "disconnect" }
func (CatBytesRequest) Name() string   { return "cat_bytes" }
func (AddBytesRequest) Name() string   { return "add_bytes" }
func (InsertPinRequest) Name() string  { return "insert_pin" }
func (PeersRequest) Name() string      { return "peers" }

func (IdentityRequest) Validate() error { return nil }
func (PeersRequest) Validate() error    { return nil }

func (r ConnectRequest) Validate() error    { return validateAddr(r.Addr) }
func (r DisconnectRequest) Validate() error { return validateAddr(r.Addr) }
func (r CatBytesRequest) Validate() error   { return validateCid(r.CID) }
func (r InsertPinRequest) Validate() error  { return validateCid(r.CID) }

func (r AddBytesRequest) Validate() error {
	if r.Data == nil {
		return errors.New("no data to add")
	}
	return nil
}

func (IdentityRequest) isRequest()   {}
func (ConnectRequest) isRequest()    {}
func (DisconnectRequest) isRequest() {}
func (CatBytesRequest) isRequest()   {}
func (AddBytesRequest) isRequest()   {}
func (InsertPinRequest) isRequest()  {}
func (PeersRequest) isRequest()      {}

func validateAddr(s string) error {
	if _, err := multiaddr.NewMultiaddr(s); err != nil {
		return errors.Wrapf(err, "invalid multiaddr %q", s)
	}
	return nil
}

func validateCid(s string) error {
	if _, err := cid.Decode(s); err != nil {
		return errors.Wrapf(err, "invalid cid %q", s)
	}
	return nil
}

// Response is the result of a successful Request.
type Response interface {
	isResponse()
}

// IdentityResponse carries the node's public key and listen addresses.
type IdentityResponse struct {
	ID        string
	PublicKey []byte
	Addrs     []string
}

type SuccessResponse struct{}

type CatBytesResponse struct {
	Data []byte
}

type AddBytesResponse struct {
	CID string
}

type PeersResponse struct {
	Peers []string
}

func (IdentityResponse) isResponse() {}
func (SuccessResponse) isResponse()  {}
func (CatBytesResponse) isResponse() {}
func (AddBytesResponse) isResponse() {}
func (PeersResponse) isResponse()    {}
