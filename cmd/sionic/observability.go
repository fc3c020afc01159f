package main

import (
	"fmt"
	"os"

	"github.com/pzverkov/sionic/pkg/metrics"
)

// startObservability constructs a fresh metrics.Collector and serves its
// Prometheus/health endpoints on addr in the background, returning the
// collector for the caller to wire into a channel via stream.WithMetrics.
func startObservability(addr string) *metrics.Collector {
	collector := metrics.NewCollector(metrics.Labels{"command": os.Args[1]})

	srv := metrics.NewServer(metrics.ServerConfig{
		Collector:        collector,
		Version:          getVersion(),
		Namespace:        "sionic",
		EnablePrometheus: true,
		EnableHealth:     true,
	})

	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			fmt.Fprintf(os.Stderr, "metrics server on %s stopped: %v\n", addr, err)
		}
	}()

	fmt.Fprintf(os.Stderr, "metrics: /metrics, /health, /healthz, /readyz on %s\n", addr)
	return collector
}
