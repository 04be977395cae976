// Package metrics exposes the Prometheus endpoint for the estimator.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// App-level gauges. Component counters live next to the code that
// increments them (pipeline, service).
var (
	SchedulerNextRun = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "scheduler_next_run_timestamp",
		Help:      "Unix timestamp of the next scheduled refresh run",
	})
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "build_info",
		Help:      "Build information",
	}, []string{"version", "commit"})
)

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve starts the metrics endpoint in the background.
func Serve(addr, path string, logger *logrus.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr": addr,
			"path": path,
		}).Info("Metrics endpoint starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics endpoint error")
		}
	}()

	return server
}
