package stream

// Observer receives notifications about channel events, for callers that
// want per-fragment visibility without threading metrics plumbing through
// every Write call themselves.
type Observer interface {
	// OnFragmentSealed fires after a fragment is successfully sealed and
	// written downstream. index is the fragment's sequence number
	// (starting at 1; 0 is consumed by the header) and n is the
	// plaintext length sealed into that fragment.
	OnFragmentSealed(index uint32, n int)

	// OnFragmentOpened fires after a fragment is successfully opened and
	// the plaintext written downstream.
	OnFragmentOpened(index uint32, n int)

	// OnAuthFailure fires when a fragment fails authentication.
	OnAuthFailure(index uint32)

	// OnClose fires when Close completes, successfully or not.
	OnClose(err error)
}

// NoOpObserver discards every event. It is the default when a channel is
// constructed without WithObserver.
type NoOpObserver struct{}

func (NoOpObserver) OnFragmentSealed(index uint32, n int) {}
func (NoOpObserver) OnFragmentOpened(index uint32, n int) {}
func (NoOpObserver) OnAuthFailure(index uint32)           {}
func (NoOpObserver) OnClose(err error)                    {}
