package observable

import "fmt"

// Kind identifies the signal carried by a Notification.
type Kind uint8

const (
	KindNext Kind = iota + 1
	KindError
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Notification is a single signal of a stream captured as a value.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

func NextNotification[T any](v T) Notification[T] {
	return Notification[T]{Kind: KindNext, Value: v}
}

func ErrorNotification[T any](err error) Notification[T] {
	return Notification[T]{Kind: KindError, Err: err}
}

func CompleteNotification[T any]() Notification[T] {
	return Notification[T]{Kind: KindComplete}
}

// Accept replays n onto o. An error notification for an Observer without an
// Error callback returns the carried error.
func (n Notification[T]) Accept(o Observer[T]) error {
	switch n.Kind {
	case KindNext:
		if o.Next != nil {
			return o.Next(n.Value)
		}
	case KindError:
		if o.Error != nil {
			return o.Error(n.Err)
		}
		return n.Err
	case KindComplete:
		if o.Complete != nil {
			return o.Complete()
		}
	default:
		return fmt.Errorf("observable: unknown notification %v", n.Kind)
	}
	return nil
}

// Notify builds an Observer that hands every signal to fn as a Notification.
func Notify[T any](fn func(Notification[T]) error) Observer[T] {
	return Observer[T]{
		Next: func(v T) error {
			return fn(NextNotification(v))
		},
		Error: func(err error) error {
			return fn(ErrorNotification[T](err))
		},
		Complete: func() error {
			return fn(CompleteNotification[T]())
		},
	}
}
