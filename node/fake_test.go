/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/CESSProject/iris-node/pkg/cache"
	"github.com/CESSProject/iris-node/pkg/confile"
	"github.com/CESSProject/iris-node/pkg/ipfs"
	"github.com/CESSProject/iris-node/pkg/utils"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	testCid  = "QmPZ9gcCEpqKTo6aq61g2nXGUhM4iCL3ewB6LDXZCtioEB"
	addedCid = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

var (
	alice = accountOf(signature.TestKeyringPairAlice.PublicKey)
	bob   = mustAccount("5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty")

	localKey = []byte("local-storage-node-public-key-00")
)

func accountOf(pub []byte) types.AccountID {
	var acc types.AccountID
	copy(acc[:], pub)
	return acc
}

func mustAccount(s string) types.AccountID {
	acc, err := utils.DecodeAccount(s)
	if err != nil {
		panic(err)
	}
	return acc
}

// fakeIpfs is a scripted storage node.
type fakeIpfs struct {
	lock       sync.Mutex
	publicKey  []byte
	addrs      []string
	content    map[string][]byte
	connectErr map[string]error
	pinErr     error
	hang       map[string]bool
	peers      []string

	calls     []string
	connected []string
	pinned    []string
}

func newFakeIpfs() *fakeIpfs {
	return &fakeIpfs{
		publicKey:  localKey,
		addrs:      []string{"/ip4/127.0.0.1/tcp/4001"},
		content:    map[string][]byte{testCid: []byte("hello iris")},
		connectErr: map[string]error{},
		hang:       map[string]bool{},
	}
}

func (f *fakeIpfs) Do(ctx context.Context, req ipfs.Request) (ipfs.Response, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, req.Name())
	if f.hang[req.Name()] {
		f.lock.Unlock()
		<-ctx.Done()
		f.lock.Lock()
		return nil, ctx.Err()
	}

	switch r := req.(type) {
	case ipfs.IdentityRequest:
		return ipfs.IdentityResponse{ID: "local", PublicKey: f.publicKey, Addrs: f.addrs}, nil
	case ipfs.ConnectRequest:
		if err := f.connectErr[r.Addr]; err != nil {
			return nil, err
		}
		f.connected = append(f.connected, r.Addr)
		return ipfs.SuccessResponse{}, nil
	case ipfs.DisconnectRequest:
		return ipfs.SuccessResponse{}, nil
	case ipfs.CatBytesRequest:
		data, ok := f.content[r.CID]
		if !ok {
			return nil, errors.Errorf("%s not found", r.CID)
		}
		return ipfs.CatBytesResponse{Data: data}, nil
	case ipfs.AddBytesRequest:
		f.content[addedCid] = r.Data
		return ipfs.AddBytesResponse{CID: addedCid}, nil
	case ipfs.InsertPinRequest:
		if f.pinErr != nil {
			return nil, f.pinErr
		}
		f.pinned = append(f.pinned, r.CID)
		return ipfs.SuccessResponse{}, nil
	case ipfs.PeersRequest:
		return ipfs.PeersResponse{Peers: f.peers}, nil
	}
	return nil, errors.Errorf("unexpected request %s", req.Name())
}

func (f *fakeIpfs) Calls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.calls...)
}

func testProfile(t *testing.T, replace ...string) *confile.Confile {
	t.Helper()
	dir := t.TempDir()
	content := strings.ReplaceAll(confile.TempleteProfile, `workspace: "/"`, `workspace: "`+filepath.Join(dir, "ws")+`"`)
	content = strings.Replace(content, `mnemonic: ""`, `mnemonic: "`+signature.TestKeyringPairAlice.URI+`"`, 1)
	for i := 0; i+1 < len(replace); i += 2 {
		content = strings.Replace(content, replace[i], replace[i+1], 1)
	}
	fpath := filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.WriteFile(fpath, []byte(content), 0644))

	cfg := confile.NewConfigFile()
	require.NoError(t, cfg.Parse(fpath))
	return cfg
}

func newTestNode(t *testing.T, cfg *confile.Confile) (*Node, *fakeIpfs) {
	t.Helper()
	if cfg == nil {
		cfg = testProfile(t)
	}
	db, err := cache.NewMemCache()
	require.NoError(t, err)
	local, err := cache.NewMemCache()
	require.NoError(t, err)

	fake := newFakeIpfs()
	n, err := New(cfg, nil, db, local, fake)
	require.NoError(t, err)
	t.Cleanup(func() { n.Close() })
	return n, fake
}
