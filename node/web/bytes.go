/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/http"

	"github.com/CESSProject/iris-node/node/common"
	"github.com/gin-gonic/gin"
	"github.com/ipfs/go-cid"
)

// BytesRetriever reads content fetched by the offchain worker.
type BytesRetriever interface {
	RetrieveBytes(c string) ([]byte, error)
}

type BytesHandler struct {
	BytesRetriever
}

func NewBytesHandler(br BytesRetriever) *BytesHandler {
	return &BytesHandler{BytesRetriever: br}
}

func (b *BytesHandler) RegisterRoutes(server *gin.Engine) {
	group := server.Group("/bytes")
	group.GET("/:cid", b.getBytes)
}

func (b *BytesHandler) getBytes(c *gin.Context) {
	id := c.Param("cid")
	if _, err := cid.Decode(id); err != nil {
		c.JSON(http.StatusBadRequest, common.RespType{Code: http.StatusBadRequest, Msg: common.ERR_InvalidCid})
		return
	}
	data, err := b.RetrieveBytes(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.RespType{Code: http.StatusInternalServerError, Msg: common.ERR_SystemErr})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, common.RespType{Code: http.StatusNotFound, Msg: common.ERR_NotFound})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}
