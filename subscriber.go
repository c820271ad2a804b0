package observable

import "github.com/rs/zerolog"

// Subscriber is what a Producer receives: a closed-state aware front for the
// consumer's Observer. Every emission goes through it and becomes a no-op once
// the subscription is closed.
//
// A Subscriber does not serialize calls. A producer that emits from several
// goroutines must order its own calls.
type Subscriber[T any] struct {
	sub      *subscription
	observer Observer[T]
}

// Closed reports whether the subscription has been closed, either by the
// consumer or by a terminal signal. Producers looping over a source should
// check it between elements.
func (s *Subscriber[T]) Closed() bool {
	return s.sub.Closed()
}

// Logger returns the logger configured for the observable with WithLogger,
// or the package logger. Asynchronous producers log through it.
func (s *Subscriber[T]) Logger() zerolog.Logger {
	return s.sub.cfg.log()
}

// Next delivers v to the observer. If the observer's Next fails, the
// subscription is closed, its teardown runs, and the failure is returned so
// the producer stops emitting.
func (s *Subscriber[T]) Next(v T) error {
	if s.sub.Closed() {
		return nil
	}
	next := s.observer.Next
	if next == nil {
		return nil
	}
	if err := guard(func() error { return next(v) }); err != nil {
		s.sub.cfg.log().Debug().Err(err).Msg("next callback failed, closing subscription")
		s.sub.Unsubscribe()
		return err
	}
	return nil
}

// Error terminates the subscription with err. If the subscription is already
// closed there is no one to receive err, so it is returned to the caller.
// Otherwise Error returns nil: failures of the observer's Error callback, or
// an observer without one, go to the error sink.
func (s *Subscriber[T]) Error(err error) error {
	if !s.sub.close() {
		return err
	}
	defer s.sub.cleanup()

	onError := s.observer.Error
	if onError == nil {
		s.sub.report(err)
		return nil
	}
	s.sub.report(guard(func() error { return onError(err) }))
	return nil
}

// Complete terminates the subscription successfully. It is a no-op if the
// subscription is already closed.
func (s *Subscriber[T]) Complete() {
	if !s.sub.close() {
		return
	}
	defer s.sub.cleanup()

	if onComplete := s.observer.Complete; onComplete != nil {
		s.sub.report(guard(onComplete))
	}
}

// Observer returns an Observer that forwards into s. It lets a producer
// re-subscribe s to another Subscribable.
func (s *Subscriber[T]) Observer() Observer[T] {
	return Observer[T]{
		Next:  s.Next,
		Error: s.Error,
		Complete: func() error {
			s.Complete()
			return nil
		},
	}
}

func (s *Subscriber[T]) start(sub Subscription) error {
	start := s.observer.Start
	if start == nil {
		return nil
	}
	return guard(func() error { return start(sub) })
}
