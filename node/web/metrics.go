/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	h http.Handler
}

func NewMetricsHandler(h http.Handler) *MetricsHandler {
	return &MetricsHandler{h: h}
}

func (m *MetricsHandler) RegisterRoutes(server *gin.Engine) {
	if m.h == nil {
		return
	}
	server.GET("/metrics", gin.WrapH(m.h))
}
