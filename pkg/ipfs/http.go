/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package ipfs

import (
	"bytes"
	"context"
	"io"
	"net/http"

	httpapi "github.com/ipfs/go-ipfs-http-client"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/pkg/errors"
)

// HTTPNode drives a storage node through its RPC api.
type HTTPNode struct {
	api *httpapi.HttpApi
}

var _ Node = (*HTTPNode)(nil)

func NewHTTPNode(url string) (*HTTPNode, error) {
	api, err := httpapi.NewURLApiWithClient(url, &http.Client{
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "[NewURLApiWithClient]")
	}
	return &HTTPNode{api: api}, nil
}

type idOutput struct {
	ID        string
	PublicKey string
	Addresses []string
}

type addOutput struct {
	Hash string
}

type peersOutput struct {
	Peers []struct {
		Addr string
		Peer string
	}
}

func (h *HTTPNode) Do(ctx context.Context, req Request) (Response, error) {
	switch r := req.(type) {
	case IdentityRequest:
		var out idOutput
		if err := h.api.Request("id").Exec(ctx, &out); err != nil {
			return nil, err
		}
		pub, err := publicKeyBytes(out.ID, out.PublicKey)
		if err != nil {
			return nil, err
		}
		return IdentityResponse{ID: out.ID, PublicKey: pub, Addrs: out.Addresses}, nil

	case ConnectRequest:
		if err := h.api.Request("swarm/connect", r.Addr).Exec(ctx, nil); err != nil {
			return nil, err
		}
		return SuccessResponse{}, nil

	case DisconnectRequest:
		if err := h.api.Request("swarm/disconnect", r.Addr).Exec(ctx, nil); err != nil {
			return nil, err
		}
		return SuccessResponse{}, nil

	case CatBytesRequest:
		resp, err := h.api.Request("cat", r.CID).Send(ctx)
		if err != nil {
			return nil, err
		}
		defer resp.Close()
		if resp.Error != nil {
			return nil, resp.Error
		}
		data, err := io.ReadAll(resp.Output)
		if err != nil {
			return nil, err
		}
		return CatBytesResponse{Data: data}, nil

	case AddBytesRequest:
		var out addOutput
		err := h.api.Request("add").
			Option("pin", true).
			FileBody(bytes.NewReader(r.Data)).
			Exec(ctx, &out)
		if err != nil {
			return nil, err
		}
		return AddBytesResponse{CID: out.Hash}, nil

	case InsertPinRequest:
		err := h.api.Request("pin/add", r.CID).
			Option("recursive", r.Recursive).
			Exec(ctx, nil)
		if err != nil {
			return nil, err
		}
		return SuccessResponse{}, nil

	case PeersRequest:
		var out peersOutput
		if err := h.api.Request("swarm/peers").Exec(ctx, &out); err != nil {
			return nil, err
		}
		peers := make([]string, 0, len(out.Peers))
		for _, p := range out.Peers {
			peers = append(peers, p.Addr+"/p2p/"+p.Peer)
		}
		return PeersResponse{Peers: peers}, nil
	}
	return nil, errors.Errorf("unsupported request %T", req)
}

// publicKeyBytes prefers the advertised key and falls back to the key
// inlined in the peer id.
func publicKeyBytes(id, encoded string) ([]byte, error) {
	if encoded != "" {
		b, err := crypto.ConfigDecodeKey(encoded)
		if err == nil {
			pk, err := crypto.UnmarshalPublicKey(b)
			if err == nil {
				return pk.Raw()
			}
		}
	}
	pid, err := peer.Decode(id)
	if err != nil {
		return nil, errors.Wrapf(err, "[peer.Decode]")
	}
	pk, err := pid.ExtractPublicKey()
	if err != nil {
		return nil, errors.Wrapf(err, "[ExtractPublicKey]")
	}
	return pk.Raw()
}
