/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package ipfs

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrCantCreateRequest  = errors.New("can't create request")
	ErrRequestTimeout     = errors.New("request timeout")
	ErrRequestFailed      = errors.New("request failed")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// Node executes requests against a storage node. Implementations must
// honour ctx cancellation.
type Node interface {
	Do(ctx context.Context, req Request) (Response, error)
}

type result struct {
	resp Response
	err  error
}

// Call runs req on n and gives up once timeout has elapsed.
func Call(ctx context.Context, n Node, req Request, timeout time.Duration) (Response, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrapf(ErrCantCreateRequest, "%s: %v", req.Name(), err)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan result, 1)
	go func() {
		resp, err := n.Do(ctx, req)
		ch <- result{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrapf(ErrRequestTimeout, "%s", req.Name())
	case r := <-ch:
		if r.err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrapf(ErrRequestTimeout, "%s", req.Name())
			}
			return nil, errors.Wrapf(ErrRequestFailed, "%s: %v", req.Name(), r.err)
		}
		return r.resp, nil
	}
}

func Identity(ctx context.Context, n Node, timeout time.Duration) (IdentityResponse, error) {
	resp, err := Call(ctx, n, IdentityRequest{}, timeout)
	if err != nil {
		return IdentityResponse{}, err
	}
	id, ok := resp.(IdentityResponse)
	if !ok {
		return IdentityResponse{}, unexpected(IdentityRequest{}, resp)
	}
	return id, nil
}

func Connect(ctx context.Context, n Node, addr string, timeout time.Duration) error {
	return expectSuccess(ctx, n, ConnectRequest{Addr: addr}, timeout)
}

func Disconnect(ctx context.Context, n Node, addr string, timeout time.Duration) error {
	return expectSuccess(ctx, n, DisconnectRequest{Addr: addr}, timeout)
}

func InsertPin(ctx context.Context, n Node, c string, recursive bool, timeout time.Duration) error {
	return expectSuccess(ctx, n, InsertPinRequest{CID: c, Recursive: recursive}, timeout)
}

func CatBytes(ctx context.Context, n Node, c string, timeout time.Duration) ([]byte, error) {
	req := CatBytesRequest{CID: c}
	resp, err := Call(ctx, n, req, timeout)
	if err != nil {
		return nil, err
	}
	data, ok := resp.(CatBytesResponse)
	if !ok {
		return nil, unexpected(req, resp)
	}
	return data.Data, nil
}

func AddBytes(ctx context.Context, n Node, data []byte, timeout time.Duration) (string, error) {
	req := AddBytesRequest{Data: data}
	resp, err := Call(ctx, n, req, timeout)
	if err != nil {
		return "", err
	}
	added, ok := resp.(AddBytesResponse)
	if !ok {
		return "", unexpected(req, resp)
	}
	return added.CID, nil
}

func Peers(ctx context.Context, n Node, timeout time.Duration) ([]string, error) {
	resp, err := Call(ctx, n, PeersRequest{}, timeout)
	if err != nil {
		return nil, err
	}
	peers, ok := resp.(PeersResponse)
	if !ok {
		return nil, unexpected(PeersRequest{}, resp)
	}
	return peers.Peers, nil
}

func expectSuccess(ctx context.Context, n Node, req Request, timeout time.Duration) error {
	resp, err := Call(ctx, n, req, timeout)
	if err != nil {
		return err
	}
	if _, ok := resp.(SuccessResponse); !ok {
		return unexpected(req, resp)
	}
	return nil
}

func unexpected(req Request, resp Response) error {
	return errors.Wrapf(ErrUnexpectedResponse, "%s answered with %T", req.Name(), resp)
}
