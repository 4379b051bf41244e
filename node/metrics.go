/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are registered on a registry owned by the node.
type Metrics struct {
	registry *prometheus.Registry

	block        prometheus.Gauge
	sessionIndex prometheus.Gauge
	validators   prometheus.Gauge
	peers        prometheus.Gauge
	extrinsics   *prometheus.CounterVec
	events       *prometheus.CounterVec
	commands     *prometheus.CounterVec
	pending      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		block: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iris_block_number",
			Help: "Number of the last imported block.",
		}),
		sessionIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iris_session_index",
			Help: "Index of the current session.",
		}),
		validators: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iris_session_validators",
			Help: "Size of the validator set of the current session.",
		}),
		peers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iris_ipfs_peers",
			Help: "Peers connected to the local storage node.",
		}),
		extrinsics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iris_extrinsics_total",
			Help: "Extrinsics applied by outcome.",
		}, []string{"call", "result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iris_events_total",
			Help: "Events deposited by name.",
		}, []string{"event"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iris_data_commands_total",
			Help: "Data commands handled by the offchain worker, by kind and outcome.",
		}, []string{"kind", "result"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iris_offchain_pending_blocks",
			Help: "Blocks whose offchain work is waiting for the worker.",
		}),
	}
	m.registry.MustRegister(
		m.block,
		m.sessionIndex,
		m.validators,
		m.peers,
		m.extrinsics,
		m.events,
		m.commands,
		m.pending,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
