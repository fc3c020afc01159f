// Package metrics provides observability primitives for the sionic streaming
// AEAD library.
//
// The package includes:
//   - A Collector of atomic counters and gauges, and a Histogram type
//   - Prometheus-compatible metrics export
//   - OpenTelemetry tracing support
//   - Structured logging with levels
//   - Health check functionality
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector aggregates metrics from stream channels.
type Collector struct {
	// Channel lifecycle metrics
	channelsActive       atomic.Uint64
	channelsTotal        atomic.Uint64
	channelsFailed        atomic.Uint64
	keyExchangeLatency   *Histogram

	// Traffic metrics
	bytesIn          atomic.Uint64
	bytesOut         atomic.Uint64
	fragmentsSealed  atomic.Uint64
	fragmentsOpened  atomic.Uint64

	// Security metrics
	authFailures     atomic.Uint64
	counterExhausted atomic.Uint64

	// Error metrics
	sealErrors     atomic.Uint64
	openErrors     atomic.Uint64
	protocolErrors atomic.Uint64

	// Performance histograms
	sealLatency *Histogram
	openLatency *Histogram

	// Creation time for uptime tracking
	createdAt time.Time

	// Labels for this collector instance
	labels Labels
}

// Labels represents key-value pairs for metric labeling.
type Labels map[string]string

// NewCollector creates a new metrics collector.
func NewCollector(labels Labels) *Collector {
	if labels == nil {
		labels = make(Labels)
	}

	return &Collector{
		keyExchangeLatency: NewHistogram(KeyExchangeLatencyBuckets),
		sealLatency:        NewHistogram(LatencyBuckets),
		openLatency:        NewHistogram(LatencyBuckets),
		createdAt:          time.Now(),
		labels:             labels,
	}
}

// Default bucket configurations for histograms.
var (
	// KeyExchangeLatencyBuckets for hybrid key exchange duration (milliseconds).
	KeyExchangeLatencyBuckets = []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

	// LatencyBuckets for seal/open operations (microseconds).
	LatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}
)

// --- Channel Metrics ---

// ChannelOpened increments active and total channel counters.
func (c *Collector) ChannelOpened() {
	c.channelsActive.Add(1)
	c.channelsTotal.Add(1)
}

// ChannelClosed decrements the active channel counter.
func (c *Collector) ChannelClosed() {
	for {
		current := c.channelsActive.Load()
		if current == 0 {
			return
		}
		if c.channelsActive.CompareAndSwap(current, current-1) {
			return
		}
	}
}

// ChannelFailed records a failed channel construction.
func (c *Collector) ChannelFailed() {
	c.channelsFailed.Add(1)
}

// RecordKeyExchangeLatency records a hybrid key exchange duration.
func (c *Collector) RecordKeyExchangeLatency(d time.Duration) {
	c.keyExchangeLatency.Observe(float64(d.Milliseconds()))
}

// --- Traffic Metrics ---

// RecordBytesIn adds to the plaintext bytes written counter.
func (c *Collector) RecordBytesIn(n uint64) {
	c.bytesIn.Add(n)
}

// RecordBytesOut adds to the ciphertext bytes written counter.
func (c *Collector) RecordBytesOut(n uint64) {
	c.bytesOut.Add(n)
}

// RecordFragmentSealed increments the sealed fragment counter.
func (c *Collector) RecordFragmentSealed() {
	c.fragmentsSealed.Add(1)
}

// RecordFragmentOpened increments the opened fragment counter.
func (c *Collector) RecordFragmentOpened() {
	c.fragmentsOpened.Add(1)
}

// --- Security Metrics ---

// RecordAuthFailure increments the fragment authentication failure counter.
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Add(1)
}

// RecordCounterExhausted increments the fragment counter overflow counter.
func (c *Collector) RecordCounterExhausted() {
	c.counterExhausted.Add(1)
}

// --- Error Metrics ---

// RecordSealError increments the seal error counter.
func (c *Collector) RecordSealError() {
	c.sealErrors.Add(1)
}

// RecordOpenError increments the open error counter.
func (c *Collector) RecordOpenError() {
	c.openErrors.Add(1)
}

// RecordProtocolError increments the protocol error counter.
func (c *Collector) RecordProtocolError() {
	c.protocolErrors.Add(1)
}

// --- Performance Metrics ---

// RecordSealLatency records fragment seal operation latency.
func (c *Collector) RecordSealLatency(d time.Duration) {
	c.sealLatency.Observe(float64(d.Microseconds()))
}

// RecordOpenLatency records fragment open operation latency.
func (c *Collector) RecordOpenLatency(d time.Duration) {
	c.openLatency.Observe(float64(d.Microseconds()))
}

// --- Snapshot ---

// Snapshot returns a point-in-time snapshot of all metrics.
type Snapshot struct {
	// Timestamp of the snapshot
	Timestamp time.Time

	// Uptime since collector creation
	Uptime time.Duration

	// Channel metrics
	ChannelsActive uint64
	ChannelsTotal  uint64
	ChannelsFailed uint64

	// Traffic metrics
	BytesIn         uint64
	BytesOut        uint64
	FragmentsSealed uint64
	FragmentsOpened uint64

	// Security metrics
	AuthFailures     uint64
	CounterExhausted uint64

	// Error metrics
	SealErrors     uint64
	OpenErrors     uint64
	ProtocolErrors uint64

	// Histogram summaries
	KeyExchangeLatency HistogramSummary
	SealLatency        HistogramSummary
	OpenLatency        HistogramSummary

	// Labels
	Labels Labels
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Timestamp:          time.Now(),
		Uptime:             time.Since(c.createdAt),
		ChannelsActive:     c.channelsActive.Load(),
		ChannelsTotal:      c.channelsTotal.Load(),
		ChannelsFailed:     c.channelsFailed.Load(),
		BytesIn:            c.bytesIn.Load(),
		BytesOut:           c.bytesOut.Load(),
		FragmentsSealed:    c.fragmentsSealed.Load(),
		FragmentsOpened:    c.fragmentsOpened.Load(),
		AuthFailures:       c.authFailures.Load(),
		CounterExhausted:   c.counterExhausted.Load(),
		SealErrors:         c.sealErrors.Load(),
		OpenErrors:         c.openErrors.Load(),
		ProtocolErrors:     c.protocolErrors.Load(),
		KeyExchangeLatency: c.keyExchangeLatency.Summary(),
		SealLatency:        c.sealLatency.Summary(),
		OpenLatency:        c.openLatency.Summary(),
		Labels:             c.labels,
	}
}

// Reset clears all metrics (useful for testing).
func (c *Collector) Reset() {
	c.channelsActive.Store(0)
	c.channelsTotal.Store(0)
	c.channelsFailed.Store(0)
	c.bytesIn.Store(0)
	c.bytesOut.Store(0)
	c.fragmentsSealed.Store(0)
	c.fragmentsOpened.Store(0)
	c.authFailures.Store(0)
	c.counterExhausted.Store(0)
	c.sealErrors.Store(0)
	c.openErrors.Store(0)
	c.protocolErrors.Store(0)
	c.keyExchangeLatency.Reset()
	c.sealLatency.Reset()
	c.openLatency.Reset()
	c.createdAt = time.Now()
}

// --- Global Collector ---

var (
	globalCollector     *Collector
	globalCollectorOnce sync.Once
)

// Global returns the global metrics collector.
// Creates one with default settings if not already initialized.
func Global() *Collector {
	globalCollectorOnce.Do(func() {
		globalCollector = NewCollector(Labels{"instance": "default"})
	})
	return globalCollector
}

// SetGlobal sets the global metrics collector.
// Should be called during initialization before any metrics are recorded.
func SetGlobal(c *Collector) {
	globalCollectorOnce.Do(func() {})
	globalCollector = c
}
