// Package service provides Prometheus metrics for refresh and estimate runs.
package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// refreshesTotal tracks successful snapshot refreshes
	refreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_refreshes_total",
			Help: "Total number of successful snapshot refreshes",
		},
		[]string{"market"},
	)

	// refreshFailuresTotal tracks failed snapshot refreshes
	refreshFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_refresh_failures_total",
			Help: "Total number of failed snapshot refreshes",
		},
		[]string{"market"},
	)

	// snapshotHitsTotal tracks estimate requests that found a snapshot
	snapshotHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_hits_total",
			Help: "Estimate requests that found a cached snapshot",
		},
		[]string{"market"},
	)

	// snapshotMissesTotal tracks estimate requests with no snapshot cached
	snapshotMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_misses_total",
			Help: "Estimate requests that found no cached snapshot",
		},
		[]string{"market"},
	)

	// snapshotAgeSeconds tracks the age of the snapshot observed last
	snapshotAgeSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_age_seconds",
			Help: "Age of the most recently observed snapshot",
		},
		[]string{"market"},
	)

	// snapshotPlayers tracks how many players the latest snapshot carries
	snapshotPlayers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_players",
			Help: "Player count in the most recently written snapshot",
		},
		[]string{"market"},
	)
)
