/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/CESSProject/iris-node/node/common"
	"github.com/CESSProject/iris-node/node/web"
	"github.com/CESSProject/iris-node/node/workspace"
	"github.com/CESSProject/iris-node/pkg/cache"
	"github.com/CESSProject/iris-node/pkg/confile"
	out "github.com/CESSProject/iris-node/pkg/fout"
	"github.com/CESSProject/iris-node/pkg/ipfs"
	"github.com/CESSProject/iris-node/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitNode builds a node from cfg, exiting the process on failure.
func InitNode(cfg confile.Confiler) *Node {
	ws := workspace.NewWorkspace(cfg.ReadWorkspace())
	if err := ws.Build(); err != nil {
		out.Err(fmt.Sprintf("[Build] %v", err))
		os.Exit(1)
	}
	lg := InitLogs(ws.GetLogDir())
	db := InitCache(ws.GetDbDir())
	local := InitCache(ws.GetOffchainDir())

	ipfsNode, err := ipfs.NewHTTPNode(cfg.ReadIpfsApi())
	if err != nil {
		out.Err(fmt.Sprintf("[NewHTTPNode] %v", err))
		os.Exit(1)
	}

	n, err := New(cfg, lg, db, local, ipfsNode)
	if err != nil {
		out.Err(fmt.Sprintf("[New] %v", err))
		os.Exit(1)
	}
	n.InitWebServer(
		InitMiddlewares(),
		web.NewHandler(n.Runstatus, n, n.metrics.Handler()),
	)
	return n
}

func InitCache(dir string) cache.Cache {
	cace, err := cache.NewCache(dir, 0, 0)
	if err != nil {
		out.Err(fmt.Sprintf("[NewCache] %v", err))
		os.Exit(1)
	}
	return cace
}

func InitLogs(dir string) logger.Logger {
	var logs_info = make(map[string]string)
	for _, v := range logger.LogFiles {
		logs_info[v] = filepath.Join(dir, v+".log")
	}
	lg, err := logger.NewLogs(logs_info)
	if err != nil {
		out.Err(fmt.Sprintf("[NewLogs] %v", err))
		os.Exit(1)
	}
	return lg
}

func (n *Node) InitWebServer(mdls []gin.HandlerFunc, hdl *web.Handler) {
	gin.SetMode(gin.ReleaseMode)
	n.engine = gin.Default()
	n.engine.Use(mdls...)
	hdl.RegisterRoutes(n.engine)
	go func() {
		listenerAddr := fmt.Sprintf(":%d", n.ReadServicePort())
		err := n.engine.Run(listenerAddr)
		if err != nil {
			log.Fatal(err)
		}
	}()
	time.Sleep(time.Millisecond * 10)
}

func InitMiddlewares() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowHeaders: []string{
				common.Header_Account,
				common.Header_ContentType,
				common.Header_X_Forwarded_For,
			},
			AllowMethods: []string{"GET", "OPTION"},
		}),
	}
}

// Run drives the node until ctx is done.
func (n *Node) Run(ctx context.Context) {
	index, _ := n.rotator.SessionIndex()
	number, _ := n.BlockNumber()
	out.Ok(fmt.Sprintf("Start successfully, block %d, session %d", number, index))
	n.TaskMgt(ctx)
	if err := n.Close(); err != nil {
		out.Err(fmt.Sprintf("[Close] %v", err))
	}
}
