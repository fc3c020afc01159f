package metrics

// ChannelObserver adapts a Collector to the fragment-event hooks a
// pkg/stream channel invokes (OnFragmentSealed, OnFragmentOpened,
// OnAuthFailure, OnClose), so a channel can be wired into the collector
// without pkg/stream importing anything beyond its own Observer
// interface.
type ChannelObserver struct {
	collector *Collector
}

// NewChannelObserver returns an Observer backed by c, marking a channel
// opened against c. Pass the result to a pkg/stream channel's
// WithObserver option, or use stream.WithMetrics if this package is
// already wired.
func NewChannelObserver(c *Collector) *ChannelObserver {
	c.ChannelOpened()
	return &ChannelObserver{collector: c}
}

// OnFragmentSealed records a sealed fragment and the plaintext bytes it carried.
func (o *ChannelObserver) OnFragmentSealed(index uint32, n int) {
	o.collector.RecordFragmentSealed()
	o.collector.RecordBytesIn(uint64(n))
}

// OnFragmentOpened records an opened fragment and the plaintext bytes it yielded.
func (o *ChannelObserver) OnFragmentOpened(index uint32, n int) {
	o.collector.RecordFragmentOpened()
	o.collector.RecordBytesOut(uint64(n))
}

// OnAuthFailure records a fragment that failed authentication.
func (o *ChannelObserver) OnAuthFailure(index uint32) {
	o.collector.RecordAuthFailure()
}

// OnClose records channel teardown, counting a non-nil err as a protocol error.
func (o *ChannelObserver) OnClose(err error) {
	if err != nil {
		o.collector.RecordProtocolError()
	}
	o.collector.ChannelClosed()
}
