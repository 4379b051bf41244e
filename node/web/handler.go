/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/http"

	"github.com/CESSProject/iris-node/node/runstatus"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	*BytesHandler
	*StatusHandler
	*MetricsHandler
}

func NewHandler(rs runstatus.Runstatus, br BytesRetriever, metrics http.Handler) *Handler {
	return &Handler{
		BytesHandler:   NewBytesHandler(br),
		StatusHandler:  NewStatusHandler(rs),
		MetricsHandler: NewMetricsHandler(metrics),
	}
}

func (h *Handler) RegisterRoutes(server *gin.Engine) {
	h.BytesHandler.RegisterRoutes(server)
	h.StatusHandler.RegisterRoutes(server)
	h.MetricsHandler.RegisterRoutes(server)
}
