/*
Package observable implements a minimal push-based stream: a producer emits
zero or more values to a single consumer, followed by at most one terminal
signal, and the consumer may cancel at any time.

# Producers and observers

An Observable wraps a Producer. Subscribe runs the producer synchronously with
a *Subscriber, the only way a producer talks to the consumer:

	obs := observable.New[int](func(sub *observable.Subscriber[int]) (observable.Unsubscriber, error) {
		for i := 0; i < 3; i++ {
			if err := sub.Next(i); err != nil {
				return nil, err
			}
			if sub.Closed() {
				return nil, nil
			}
		}
		sub.Complete()
		return nil, nil
	})

	sub := obs.Subscribe(observable.Observer[int]{
		Next: func(v int) error {
			fmt.Println(v)
			return nil
		},
	})
	defer sub.Unsubscribe()

All four Observer callbacks are optional. A callback fails by returning an
error or by panicking; panics are recovered as *PanicError.

# Lifecycle

A Subscription is open until the consumer unsubscribes or the producer calls
Error or Complete. It closes exactly once and never reopens. The teardown
returned by the producer runs exactly once when that happens, or immediately if
the subscription closed before the producer returned.

# Error routing

Errors raised while the producer is emitting are handed back to it: Next
returns the observer's failure after closing the subscription. Errors raised
while the consumer is being told about termination (a failing Error or
Complete callback, a failing teardown, an error nobody handles) go to the
ErrorSink, which by default logs them. The one exception is Error on an
already closed subscription, which returns the error to its caller.

# Interop

Any value implementing Interop can be converted with From. Sequences
(iter.Seq and slices) are converted too, and Of emits its arguments.
*/
package observable
