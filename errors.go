package observable

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrNilProducer is the panic value of New when given a nil producer.
	ErrNilProducer = errors.New("observable: nil producer")

	// ErrNilSource is returned by From for a nil source.
	ErrNilSource = errors.New("observable: nil source")

	// ErrNotObservable is returned by From when the source is neither an
	// Interop value nor a supported sequence.
	ErrNotObservable = errors.New("observable: source is not observable")
)

// PanicError wraps a value recovered from a panicking callback together with
// the stack trace captured at the point of the panic.
//
// Callbacks, producers and teardowns that panic are treated exactly as if they
// had returned a *PanicError.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// guard runs fn, converting a panic into a *PanicError.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return fn()
}
