package observable

import (
	"fmt"
	"iter"
	"slices"
)

// From converts source into an Observable.
//
// A source implementing Interop is consulted first: if it already presents an
// *Observable[T], that same instance is returned; any other Subscribable is
// wrapped so subscribing re-subscribes through it. Otherwise source must be an
// iter.Seq[T], a func(func(T) bool) or a []T, whose elements are emitted in
// order followed by a single completion.
//
// Nil and unsupported sources are rejected before any subscription exists.
func From[T any](source any, opts ...Option) (*Observable[T], error) {
	switch src := source.(type) {
	case nil:
		return nil, ErrNilSource
	case Interop[T]:
		return fromInterop(src, opts)
	case iter.Seq[T]:
		if src == nil {
			return nil, ErrNilSource
		}
		return New(sequence(src), opts...), nil
	case func(func(T) bool):
		if src == nil {
			return nil, ErrNilSource
		}
		return New(sequence(iter.Seq[T](src)), opts...), nil
	case []T:
		return New(sequence(slices.Values(src)), opts...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotObservable, source)
	}
}

// Of returns an Observable that emits values in order and then completes.
func Of[T any](values ...T) *Observable[T] {
	return New(sequence(slices.Values(values)))
}

func fromInterop[T any](src Interop[T], opts []Option) (*Observable[T], error) {
	inner := src.ObservableInterop()
	if inner == nil {
		return nil, fmt.Errorf("%w: %T presented no observable", ErrNotObservable, src)
	}
	if o, ok := inner.(*Observable[T]); ok {
		return o, nil
	}
	return New[T](func(sub *Subscriber[T]) (Unsubscriber, error) {
		return inner.Subscribe(sub.Observer()), nil
	}, opts...), nil
}

// sequence emits every element of seq, stopping as soon as the subscriber is
// closed, and completes once seq is exhausted.
func sequence[T any](seq iter.Seq[T]) Producer[T] {
	return func(sub *Subscriber[T]) (Unsubscriber, error) {
		for v := range seq {
			if err := sub.Next(v); err != nil {
				return nil, err
			}
			if sub.Closed() {
				return nil, nil
			}
		}
		sub.Complete()
		return nil, nil
	}
}
