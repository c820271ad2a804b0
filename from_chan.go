package observable

import "context"

// FromChan returns an Observable that forwards values received from ch.
//
// Each subscription starts a goroutine that reads ch until it is closed, which
// completes the subscription, or until ctx is done, which terminates it with
// ctx.Err(). Unsubscribing stops the goroutine. Values are not shared between
// concurrent subscriptions: each receive goes to whichever one reads first.
func FromChan[T any](ctx context.Context, ch <-chan T, opts ...Option) *Observable[T] {
	return New[T](func(sub *Subscriber[T]) (Unsubscriber, error) {
		stop := make(chan struct{})
		go pumpChan(ctx, ch, stop, sub)
		return TeardownFunc(func() { close(stop) }), nil
	}, opts...)
}

func pumpChan[T any](ctx context.Context, ch <-chan T, stop <-chan struct{}, sub *Subscriber[T]) {
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			// Error hands the cause back only if the consumer unsubscribed
			// first, so nobody is waiting for it.
			if err := sub.Error(ctx.Err()); err != nil {
				sub.Logger().Debug().Err(err).Msg("context ended after unsubscribe")
			}
			return
		case v, ok := <-ch:
			if !ok {
				sub.Complete()
				return
			}
			if err := sub.Next(v); err != nil {
				return
			}
		}
	}
}
