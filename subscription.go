package observable

import "sync"

type state uint8

const (
	stateOpen state = iota
	stateClosed
)

// subscription owns the lifecycle of one producer/consumer pairing. It moves
// from open to closed exactly once and runs its teardown at most once.
//
// mu guards state and teardown only; it is never held while user code runs,
// so callbacks may unsubscribe re-entrantly.
type subscription struct {
	mu       sync.Mutex
	state    state
	teardown func() error
	cfg      config
}

func subscribe[T any](producer Producer[T], observer Observer[T], cfg config) *subscription {
	s := &subscription{cfg: cfg}
	sub := &Subscriber[T]{sub: s, observer: observer}

	if err := sub.start(s); err != nil {
		s.report(err)
		s.Unsubscribe()
		return s
	}
	if s.Closed() {
		return s
	}

	var teardown func() error
	err := guard(func() error {
		u, err := producer(sub)
		teardown = teardownOf(u)
		return err
	})
	s.setTeardown(teardown)
	if err != nil {
		// Already closed: the error has no listener left, but it must not
		// escape Subscribe.
		if err := sub.Error(err); err != nil {
			s.report(err)
		}
	}
	return s
}

func (s *subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateClosed
}

// Unsubscribe closes the subscription and runs its teardown. Calling it again
// is a no-op. It never notifies the observer.
func (s *subscription) Unsubscribe() {
	if s.close() {
		s.cleanup()
	}
}

// close moves the subscription to the closed state and reports whether this
// call made the transition.
func (s *subscription) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateClosed {
		return false
	}
	s.state = stateClosed
	return true
}

// cleanup runs the teardown if one is still pending. The slot is cleared
// before the call so a teardown that re-enters cleanup cannot run twice.
func (s *subscription) cleanup() {
	s.mu.Lock()
	fn := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	if fn == nil {
		return
	}
	s.report(guard(fn))
}

// setTeardown records the producer's teardown. If the producer already closed
// the subscription, the teardown runs immediately.
func (s *subscription) setTeardown(fn func() error) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.teardown = fn
	closed := s.state == stateClosed
	s.mu.Unlock()

	if closed {
		s.cleanup()
	}
}

func (s *subscription) report(err error) {
	report(s.cfg.errorSink(), s.cfg.log(), err)
}
