package observable

import "reflect"

// Unsubscriber is anything that can release resources held for a
// subscription. Producers return one as their teardown.
type Unsubscriber interface {
	Unsubscribe()
}

// TeardownFunc adapts a plain function to Unsubscriber.
type TeardownFunc func()

func (f TeardownFunc) Unsubscribe() {
	f()
}

// Subscription is the handle returned by Subscribe. It is the only thing a
// consumer needs to cancel a stream.
type Subscription interface {
	Unsubscriber
	Closed() bool
}

// Subscribable is the subscribe contract: any value implementing it can act as
// a producer of T values.
type Subscribable[T any] interface {
	Subscribe(Observer[T]) Subscription
}

// Interop is the well-known capability through which a value declares that it
// can be viewed as an observable stream. From consults it before anything else.
type Interop[T any] interface {
	ObservableInterop() Subscribable[T]
}

// Producer is the setup routine of an Observable. It runs once per
// subscription, synchronously inside Subscribe, and may return a teardown.
// A non-nil error is delivered through the Subscriber's Error path.
type Producer[T any] func(*Subscriber[T]) (Unsubscriber, error)

// Observer is the set of callbacks a consumer supplies. Every field is
// optional; a nil callback is skipped.
type Observer[T any] struct {
	Start    func(Subscription) error
	Next     func(T) error
	Error    func(error) error
	Complete func() error
}

// teardownOf turns a producer return value into the action run on cleanup.
// A nil interface and a typed nil (a nil *Composite, a nil TeardownFunc) both
// mean there is nothing to release.
func teardownOf(u Unsubscriber) func() error {
	if isNil(u) {
		return nil
	}
	switch t := u.(type) {
	case TeardownFunc:
		return func() error {
			t()
			return nil
		}
	case *Composite:
		return t.Close
	default:
		return func() error {
			t.Unsubscribe()
			return nil
		}
	}
}

func isNil(u Unsubscriber) bool {
	if u == nil {
		return true
	}
	switch v := reflect.ValueOf(u); v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
