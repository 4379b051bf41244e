/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/http"

	"github.com/CESSProject/iris-node/node/common"
	"github.com/CESSProject/iris-node/node/runstatus"
	"github.com/CESSProject/iris-node/pkg/utils"
	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	runstatus.Runstatus
}

func NewStatusHandler(rs runstatus.Runstatus) *StatusHandler {
	return &StatusHandler{Runstatus: rs}
}

func (s *StatusHandler) RegisterRoutes(server *gin.Engine) {
	group := server.Group("/status")
	group.GET("", s.getStatus)
}

type StatusData struct {
	PID       int    `json:"pid"`
	Cores     int    `json:"cores"`
	StartTime string `json:"start_time"`

	Block        uint32 `json:"block"`
	SessionIndex uint32 `json:"session_index"`
	SignatureAcc string `json:"signature_acc"`
	Validator    bool   `json:"validator"`

	IpfsApi         string `json:"ipfs_api"`
	PeerCount       int    `json:"peer_count"`
	OffchainWorking bool   `json:"offchain_working"`
	LastWorkerBlock uint32 `json:"last_worker_block"`

	Usage *utils.SysUsage `json:"usage,omitempty"`
}

func (s *StatusHandler) getStatus(c *gin.Context) {
	var data = StatusData{
		PID:       s.GetPID(),
		Cores:     s.GetCpucores(),
		StartTime: s.GetStartTime(),

		Block:        s.GetBlock(),
		SessionIndex: s.GetSessionIndex(),
		SignatureAcc: s.GetSignAcc(),
		Validator:    s.GetValidator(),

		IpfsApi:         s.GetIpfsApi(),
		PeerCount:       s.GetPeerCount(),
		OffchainWorking: s.GetWorking(),
		LastWorkerBlock: s.GetLastWorkerBlock(),
	}
	if usage, err := utils.GetSysUsage(); err == nil {
		data.Usage = &usage
	}

	c.JSON(http.StatusOK, common.RespType{
		Code: http.StatusOK,
		Msg:  common.OK,
		Data: data,
	})
}
