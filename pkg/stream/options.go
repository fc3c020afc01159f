package stream

import (
	"context"

	"github.com/pzverkov/sionic/internal/constants"
	"github.com/pzverkov/sionic/pkg/crypto"
	"github.com/pzverkov/sionic/pkg/metrics"
)

// config collects the options a channel is constructed with. Both
// EncWriter and DecWriter share it.
type config struct {
	bufSize   int
	suite     constants.CipherSuite
	observer  Observer
	logger    *metrics.Logger
	tracer    metrics.Tracer
	pool      *crypto.BufferPool
	ctx       context.Context
	collector *metrics.Collector
}

func defaultConfig() *config {
	return &config{
		bufSize:  constants.DefaultBufSize,
		suite:    constants.DefaultCipherSuite,
		observer: NoOpObserver{},
		tracer:   metrics.NoOpTracer{},
		pool:     crypto.GlobalBufferPool(),
		ctx:      context.Background(),
	}
}

// Option configures an EncWriter or DecWriter at construction time.
type Option func(*config)

// WithBufferSize sets the fragment size (B). Must be in (0, MaxBufSize];
// violations surface as a *errors.ConstructError from the constructor.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufSize = n
	}
}

// WithCipherSuite selects the AEAD algorithm backing the channel.
func WithCipherSuite(suite constants.CipherSuite) Option {
	return func(c *config) {
		c.suite = suite
	}
}

// WithObserver registers a per-fragment event observer.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger attaches a structured logger the channel reports to.
func WithLogger(l *metrics.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTracer attaches a distributed tracer. Each fragment seal and open
// is wrapped in a metrics.SpanSeal or metrics.SpanOpen span. Close starts
// no span of its own (metrics.SpanClose is not used); its terminal
// fragment appears only as a seal or open span.
func WithTracer(t metrics.Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithBufferPool overrides the fragment buffer pool. Channels configured
// with a non-default buffer size never consult the pool regardless of
// this option, since the pool only serves constants.DefaultBufSize
// capacities.
func WithBufferPool(p *crypto.BufferPool) Option {
	return func(c *config) {
		if p != nil {
			c.pool = p
		}
	}
}

// WithContext sets the context passed to tracing spans started by the
// channel. Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithMetrics wires the channel to a metrics.Collector: a
// metrics.ChannelObserver feeds c from OnFragmentSealed/OnFragmentOpened/
// OnAuthFailure/OnClose, and the channel itself records seal/open
// latency and errors directly against c. Overrides any observer set by
// an earlier WithObserver.
func WithMetrics(c *metrics.Collector) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.collector = c
			cfg.observer = metrics.NewChannelObserver(c)
		}
	}
}
