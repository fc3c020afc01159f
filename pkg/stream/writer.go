package stream

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/pzverkov/sionic/internal/constants"
	sioerrors "github.com/pzverkov/sionic/internal/errors"
	"github.com/pzverkov/sionic/pkg/crypto"
	"github.com/pzverkov/sionic/pkg/metrics"
)

// asSink adapts a plain io.Writer into a Sink, wrapping it in a NopCloser
// unless it already satisfies Sink.
func asSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return NewNopCloser(w)
}

// EncWriter is the encrypting sink: plaintext written to it is
// accumulated into a fragment buffer of size B and sealed one fragment
// at a time to the downstream Sink. Close must be called exactly once
// to emit the terminal fragment; every other operation fails after a
// Close or after the first error.
type EncWriter struct {
	dst       Sink
	algo      crypto.Algorithm
	counter   *crypto.Counter
	header    []byte
	buf       []byte
	bufSize   int
	pool      *crypto.BufferPool
	pooled    bool
	observer  Observer
	logger    *metrics.Logger
	tracer    metrics.Tracer
	collector *metrics.Collector
	ctx       context.Context
	nextIndex uint32
	errored   bool
	closed    bool
}

// NewEncWriter constructs an encrypting sink over dst. key must be 32
// bytes; userNonce must be 8 bytes and unique per key across every
// channel the key is ever used with; userAAD is folded into the derived
// header and never written to dst. dst is wrapped in a NopCloser if it
// does not already implement Sink.
func NewEncWriter(dst io.Writer, key, userNonce, userAAD []byte, opts ...Option) (*EncWriter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.bufSize <= 0 || cfg.bufSize > constants.MaxBufSize {
		return nil, sioerrors.NewConstructError("bufSize", sioerrors.ErrInvalidBufferSize)
	}

	algo, err := crypto.NewAlgorithm(cfg.suite, key)
	if err != nil {
		return nil, err
	}
	counter, err := crypto.NewCounter(userNonce)
	if err != nil {
		return nil, err
	}
	header, err := deriveHeader(algo, counter, userAAD)
	if err != nil {
		return nil, err
	}

	pooled := cfg.bufSize == constants.DefaultBufSize
	var buf []byte
	if pooled {
		buf = cfg.pool.GetEncryptBuffer(cfg.bufSize)
	} else {
		buf = make([]byte, 0, cfg.bufSize+constants.TagLen)
	}

	w := &EncWriter{
		dst:       asSink(dst),
		algo:      algo,
		counter:   counter,
		header:    header,
		buf:       buf,
		bufSize:   cfg.bufSize,
		pool:      cfg.pool,
		pooled:    pooled,
		observer:  cfg.observer,
		logger:    cfg.logger,
		tracer:    cfg.tracer,
		collector: cfg.collector,
		ctx:       cfg.ctx,
		nextIndex: 1,
	}
	runtime.SetFinalizer(w, finalizeEncWriter)
	return w, nil
}

// Write accumulates p into the fragment buffer, sealing and emitting one
// fragment every time the buffer reaches exactly B bytes. It always
// consumes all of p on success.
func (w *EncWriter) Write(p []byte) (int, error) {
	if w.errored {
		return 0, sioerrors.ErrChannelErrored
	}
	if w.closed {
		return 0, sioerrors.ErrAlreadyClosed
	}

	total := len(p)
	for len(p) > 0 {
		free := w.bufSize - len(w.buf)
		n := len(p)
		if n > free {
			n = free
		}
		w.buf = append(w.buf, p[:n]...)
		p = p[n:]

		if len(w.buf) == w.bufSize {
			if err := w.sealFragment(); err != nil {
				w.errored = true
				return 0, err
			}
		}
	}
	return total, nil
}

// Flush forwards to the downstream sink without sealing the current
// partial fragment.
func (w *EncWriter) Flush() error {
	if w.errored {
		return sioerrors.ErrChannelErrored
	}
	if w.closed {
		return sioerrors.ErrAlreadyClosed
	}
	if err := w.dst.Flush(); err != nil {
		w.errored = true
		return sioerrors.NewStreamError("flush", err)
	}
	return nil
}

// Close seals the remaining buffered bytes (possibly zero) as the
// terminal fragment, marked with MarkerTerminal, then closes the
// downstream sink. Close must be called exactly once; calling it again
// returns ErrAlreadyClosed.
func (w *EncWriter) Close() (err error) {
	if w.errored {
		return sioerrors.ErrChannelErrored
	}
	if w.closed {
		return sioerrors.ErrAlreadyClosed
	}

	defer func() {
		w.observer.OnClose(err)
		if w.pooled {
			w.pool.PutEncryptBuffer(w.buf)
		}
		runtime.SetFinalizer(w, nil)
	}()

	w.header[0] = constants.MarkerTerminal
	if err = w.sealFragment(); err != nil {
		w.errored = true
		return err
	}
	if err = w.dst.Close(); err != nil {
		w.errored = true
		return sioerrors.NewStreamError("close", err)
	}
	w.closed = true
	return nil
}

// AsCloser wraps w in a Closer, whose Close closes w on the first call and
// returns nil on every later call instead of ErrAlreadyClosed. The Closer
// does no locking and is not safe for concurrent use.
func (w *EncWriter) AsCloser() *Closer {
	return newCloser(w)
}

func (w *EncWriter) sealFragment() error {
	_, end := w.tracer.StartSpan(w.ctx, metrics.SpanSeal)
	start := time.Now()
	var err error
	defer func() {
		end(err)
		if w.collector != nil {
			if err != nil {
				w.collector.RecordSealError()
			} else {
				w.collector.RecordSealLatency(time.Since(start))
			}
		}
	}()

	nonce, nerr := w.counter.Next()
	if nerr != nil {
		err = nerr
		return err
	}

	n := len(w.buf)
	ciphertext, serr := w.algo.SealInPlace(nonce, w.header, w.buf)
	if serr != nil {
		err = serr
		return err
	}
	if _, werr := w.dst.Write(ciphertext); werr != nil {
		err = sioerrors.NewStreamError("write", werr)
		return err
	}

	w.observer.OnFragmentSealed(w.nextIndex, n)
	if w.logger != nil {
		w.logger.Debug("fragment sealed", metrics.Fields{"index": w.nextIndex, "plaintext_len": n})
	}
	w.nextIndex++
	w.buf = w.buf[:0]
	return nil
}

func finalizeEncWriter(w *EncWriter) {
	if !w.closed && !w.errored {
		panic(fmt.Sprintf("sionic: EncWriter (bufSize=%d) dropped without Close", w.bufSize))
	}
}

// DecWriter is the decrypting sink: ciphertext written to it is
// accumulated into a buffer of size B+TAG_LEN and opened one fragment at
// a time, with plaintext forwarded to the downstream Sink. The most
// recently filled buffer is always held back rather than opened
// immediately, since a decrypting sink can never tell in advance whether
// a given chunk is the terminal one; it is only opened once a
// subsequent write or Close proves (respectively) that more ciphertext
// follows, or that it is in fact the terminator.
type DecWriter struct {
	dst       Sink
	algo      crypto.Algorithm
	counter   *crypto.Counter
	header    []byte
	buf       []byte
	capacity  int // bufSize + TagLen
	bufSize   int
	pool      *crypto.BufferPool
	pooled    bool
	observer  Observer
	logger    *metrics.Logger
	tracer    metrics.Tracer
	collector *metrics.Collector
	ctx       context.Context
	nextIndex uint32
	errored   bool
	closed    bool
}

// NewDecWriter constructs a decrypting sink over dst, the plaintext
// destination. key, userNonce, and userAAD must match the values used to
// construct the corresponding EncWriter exactly, or every fragment will
// fail authentication.
func NewDecWriter(dst io.Writer, key, userNonce, userAAD []byte, opts ...Option) (*DecWriter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.bufSize <= 0 || cfg.bufSize > constants.MaxBufSize {
		return nil, sioerrors.NewConstructError("bufSize", sioerrors.ErrInvalidBufferSize)
	}

	algo, err := crypto.NewAlgorithm(cfg.suite, key)
	if err != nil {
		return nil, err
	}
	counter, err := crypto.NewCounter(userNonce)
	if err != nil {
		return nil, err
	}
	header, err := deriveHeader(algo, counter, userAAD)
	if err != nil {
		return nil, err
	}

	pooled := cfg.bufSize == constants.DefaultBufSize
	var buf []byte
	if pooled {
		buf = cfg.pool.GetDecryptBuffer(cfg.bufSize)
	} else {
		buf = make([]byte, 0, cfg.bufSize+constants.TagLen)
	}

	w := &DecWriter{
		dst:       asSink(dst),
		algo:      algo,
		counter:   counter,
		header:    header,
		buf:       buf,
		capacity:  cfg.bufSize + constants.TagLen,
		bufSize:   cfg.bufSize,
		pool:      cfg.pool,
		pooled:    pooled,
		observer:  cfg.observer,
		logger:    cfg.logger,
		tracer:    cfg.tracer,
		collector: cfg.collector,
		ctx:       cfg.ctx,
		nextIndex: 1,
	}
	runtime.SetFinalizer(w, finalizeDecWriter)
	return w, nil
}

// Write accumulates p into the fragment buffer. A buffer that becomes
// exactly full is opened immediately only if p still has bytes left to
// deliver after filling it — proof that more ciphertext is coming and
// this fragment cannot be the terminator. A buffer that becomes exactly
// full with nothing left over is held back, since it might yet turn out
// to be the terminal fragment at Close.
func (w *DecWriter) Write(p []byte) (int, error) {
	if w.errored {
		return 0, sioerrors.ErrChannelErrored
	}
	if w.closed {
		return 0, sioerrors.ErrAlreadyClosed
	}

	total := len(p)
	for {
		free := w.capacity - len(w.buf)
		if len(p) <= free {
			w.buf = append(w.buf, p...)
			return total, nil
		}
		w.buf = append(w.buf, p[:free]...)
		p = p[free:]
		if err := w.openFragment(); err != nil {
			w.errored = true
			return 0, err
		}
	}
}

// Flush forwards to the downstream sink without opening the held-back
// fragment.
func (w *DecWriter) Flush() error {
	if w.errored {
		return sioerrors.ErrChannelErrored
	}
	if w.closed {
		return sioerrors.ErrAlreadyClosed
	}
	if err := w.dst.Flush(); err != nil {
		w.errored = true
		return sioerrors.NewStreamError("flush", err)
	}
	return nil
}

// Close opens the held-back buffer as the terminal fragment, marked
// with MarkerTerminal, then closes the downstream sink. A stream
// truncated before a single full terminator (16 bytes of tag) fails
// with ErrCiphertextTooShort.
func (w *DecWriter) Close() (err error) {
	if w.errored {
		return sioerrors.ErrChannelErrored
	}
	if w.closed {
		return sioerrors.ErrAlreadyClosed
	}

	defer func() {
		w.observer.OnClose(err)
		if w.pooled {
			w.pool.PutDecryptBuffer(w.buf)
		}
		runtime.SetFinalizer(w, nil)
	}()

	w.header[0] = constants.MarkerTerminal
	if err = w.openFragment(); err != nil {
		w.errored = true
		return err
	}
	if err = w.dst.Close(); err != nil {
		w.errored = true
		return sioerrors.NewStreamError("close", err)
	}
	w.closed = true
	return nil
}

// AsCloser wraps w in a Closer, whose Close closes w on the first call and
// returns nil on every later call instead of ErrAlreadyClosed. The Closer
// does no locking and is not safe for concurrent use.
func (w *DecWriter) AsCloser() *Closer {
	return newCloser(w)
}

func (w *DecWriter) openFragment() error {
	_, end := w.tracer.StartSpan(w.ctx, metrics.SpanOpen)
	start := time.Now()
	var err error
	defer func() {
		end(err)
		if w.collector != nil {
			if err != nil {
				w.collector.RecordOpenError()
			} else {
				w.collector.RecordOpenLatency(time.Since(start))
			}
		}
	}()

	nonce, nerr := w.counter.Next()
	if nerr != nil {
		err = nerr
		return err
	}

	plaintext, oerr := w.algo.OpenInPlace(nonce, w.header, w.buf)
	if oerr != nil {
		w.observer.OnAuthFailure(w.nextIndex)
		err = oerr
		return err
	}
	if _, werr := w.dst.Write(plaintext); werr != nil {
		err = sioerrors.NewStreamError("write", werr)
		return err
	}

	w.observer.OnFragmentOpened(w.nextIndex, len(plaintext))
	if w.logger != nil {
		w.logger.Debug("fragment opened", metrics.Fields{"index": w.nextIndex, "plaintext_len": len(plaintext)})
	}
	w.nextIndex++
	w.buf = w.buf[:0]
	return nil
}

func finalizeDecWriter(w *DecWriter) {
	if !w.closed && !w.errored {
		panic(fmt.Sprintf("sionic: DecWriter (bufSize=%d) dropped without Close", w.bufSize))
	}
}
