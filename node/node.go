/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"bytes"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/CESSProject/iris-node/configs"
	"github.com/CESSProject/iris-node/internal/assets"
	"github.com/CESSProject/iris-node/internal/chain"
	"github.com/CESSProject/iris-node/internal/session"
	"github.com/CESSProject/iris-node/node/runstatus"
	"github.com/CESSProject/iris-node/pkg/cache"
	"github.com/CESSProject/iris-node/pkg/confile"
	"github.com/CESSProject/iris-node/pkg/ipfs"
	"github.com/CESSProject/iris-node/pkg/logger"
	"github.com/CESSProject/iris-node/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"
	"github.com/pkg/errors"
)

type Node struct {
	confile.Confiler
	logger.Logger
	runstatus.Runstatus

	state   *storage.Store
	local   cache.Cache
	assets  *assets.Pallet
	session *session.Pallet
	rotator *Rotator
	pool    *chain.Pool
	signer  *chain.Signer
	ipfs    ipfs.Node
	metrics *Metrics
	engine  *gin.Engine
	timeout time.Duration

	dispatchers map[string]dispatcher

	offchainJobs chan offchainJob
	offchainLock sync.Mutex
}

type dispatcher func(origin chain.Origin, call chain.Call) error

// New wires a node over the state database db, the offchain local storage
// local and the storage node ipfsNode. The genesis state is built from cfg
// when db is empty.
func New(cfg confile.Confiler, log logger.Logger, db, local cache.Cache, ipfsNode ipfs.Node) (*Node, error) {
	if log == nil {
		log = logger.Discard()
	}
	state := storage.New(db)
	n := &Node{
		Confiler:  cfg,
		Logger:    log,
		Runstatus: runstatus.NewRunstatus(),
		state:     state,
		local:     local,
		assets:    assets.New(state),
		pool:      chain.NewPool(configs.TxPoolSize),
		ipfs:      ipfsNode,
		metrics:   NewMetrics(),
		timeout:   cfg.ReadIpfsTimeout(),

		offchainJobs: make(chan offchainJob, configs.OffchainQueueSize),
	}
	if n.timeout <= 0 {
		n.timeout = configs.RequestTimeout
	}
	n.session = session.New(state, n.assets, session.Config{
		MinAuthorities: cfg.ReadMinAuthorities(),
		MaxDeadSession: cfg.ReadMaxDeadSession(),
	}, log)
	n.rotator = NewRotator(state, n.session, cfg.ReadSessionPeriod(), log)
	n.dispatchers = map[string]dispatcher{
		assets.PalletName:  n.assets.Dispatch,
		session.PalletName: n.session.Dispatch,
	}

	signer, err := chain.NewSigner(cfg.ReadMnemonic(), n.pool, n.session.ValidateUnsigned)
	if err != nil {
		return nil, err
	}
	n.signer = signer

	if err = n.genesis(); err != nil {
		return nil, err
	}

	n.SetPID(os.Getpid())
	n.SetCpucores(runtime.NumCPU())
	n.SetStartTime(time.Now().Format(time.DateTime))
	n.SetSignAcc(cfg.ReadSignatureAccount())
	n.SetValidator(cfg.ReadValidatorMode())
	n.SetIpfsApi(cfg.ReadIpfsApi())
	index, err := n.rotator.SessionIndex()
	if err != nil {
		return nil, err
	}
	n.SetSessionIndex(index)
	n.metrics.sessionIndex.Set(float64(index))
	return n, nil
}

func (n *Node) genesis() error {
	ok, err := n.session.Initialized()
	if err != nil {
		return err
	}
	if !ok {
		nodes, err := BootstrapNodes(n.ReadBootstrap())
		if err != nil {
			return err
		}
		err = n.session.BuildGenesis(session.GenesisConfig{
			InitialValidators: n.ReadGenesisValidators(),
			BootstrapNodes:    nodes,
		})
		if err != nil {
			return errors.Wrap(err, "[BuildGenesis]")
		}
		n.Log("info", "Genesis state built")
	}
	ok, err = n.rotator.Initialized()
	if err != nil || ok {
		return err
	}
	return n.rotator.Genesis()
}

// BootstrapNodes groups bootstrap multiaddresses by the peer they dial and
// keys each group by that peer's public key. Every address must end with
// a /p2p component.
func BootstrapNodes(addrs []string) ([]session.BootstrapNode, error) {
	var (
		keys   = make(map[string][]byte)
		groups = make(map[string][]string)
	)
	for _, s := range addrs {
		maddr, err := multiaddr.NewMultiaddr(s)
		if err != nil {
			return nil, errors.Wrapf(err, "[NewMultiaddr] %s", s)
		}
		info, err := peer.AddrInfoFromP2pAddr(maddr)
		if err != nil {
			return nil, errors.Wrapf(err, "[AddrInfoFromP2pAddr] %s", s)
		}
		pub, err := info.ID.ExtractPublicKey()
		if err != nil {
			return nil, errors.Wrapf(err, "[ExtractPublicKey] %s", info.ID)
		}
		raw, err := pub.Raw()
		if err != nil {
			return nil, errors.Wrapf(err, "[Raw] %s", info.ID)
		}
		id := info.ID.String()
		keys[id] = raw
		groups[id] = append(groups[id], s)
	}
	out := make([]session.BootstrapNode, 0, len(keys))
	for id, key := range keys {
		out = append(out, session.BootstrapNode{PublicKey: key, Addrs: groups[id]})
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].PublicKey, out[j].PublicKey) < 0
	})
	return out, nil
}

// SubmitExtrinsic checks x and queues it for the next block.
func (n *Node) SubmitExtrinsic(x chain.Extrinsic) error {
	if err := chain.Verify(x); err != nil {
		return err
	}
	if x.Signer == nil {
		if _, err := n.session.ValidateUnsigned(x.Call); err != nil {
			return err
		}
	}
	if _, ok := n.dispatchers[palletOf(x.Call)]; !ok {
		return errors.Errorf("unknown pallet for call %s", x.Call.CallName())
	}
	return n.pool.Push(x)
}

// RetrieveBytes returns the content cached under c by the offchain worker,
// or nothing when none was fetched.
func (n *Node) RetrieveBytes(c string) ([]byte, error) {
	data, err := n.local.Get([]byte(c))
	if err != nil {
		if errors.Is(err, cache.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (n *Node) SessionPallet() *session.Pallet {
	return n.session
}

func (n *Node) AssetsPallet() *assets.Pallet {
	return n.assets
}

func (n *Node) Rotator() *Rotator {
	return n.rotator
}

func (n *Node) Signer() *chain.Signer {
	return n.signer
}

func (n *Node) Close() error {
	n.local.Close()
	return n.state.Close()
}

func palletOf(call chain.Call) string {
	name := call.CallName()
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
