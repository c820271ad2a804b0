package observable

import (
	"errors"
	"sync"
)

var (
	errBoom  = errors.New("boom")
	errOther = errors.New("other")
)

type sinkRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *sinkRecorder) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *sinkRecorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// recorder collects every signal of one subscription.
type recorder[T any] struct {
	mu    sync.Mutex
	notes []Notification[T]
}

func (r *recorder[T]) observer() Observer[T] {
	return Notify(func(n Notification[T]) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.notes = append(r.notes, n)
		return nil
	})
}

func (r *recorder[T]) Notifications() []Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification[T](nil), r.notes...)
}

func (r *recorder[T]) Values() []T {
	var out []T
	for _, n := range r.Notifications() {
		if n.Kind == KindNext {
			out = append(out, n.Value)
		}
	}
	return out
}

// capture returns a producer that hands its Subscriber to the test and
// returns teardown.
func capture[T any](dst **Subscriber[T], teardown func()) Producer[T] {
	return func(sub *Subscriber[T]) (Unsubscriber, error) {
		*dst = sub
		return TeardownFunc(teardown), nil
	}
}
