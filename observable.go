package observable

// Observable is a cold stream of T values. Each call to Subscribe runs the
// producer once, on the caller's goroutine, with a fresh Subscriber.
type Observable[T any] struct {
	producer Producer[T]
	cfg      config
}

// New creates an Observable from a producer. It panics with ErrNilProducer if
// producer is nil.
func New[T any](producer Producer[T], opts ...Option) *Observable[T] {
	if producer == nil {
		panic(ErrNilProducer)
	}
	return &Observable[T]{producer: producer, cfg: newConfig(opts)}
}

// Subscribe runs the producer against observer and returns the handle used to
// cancel. Errors raised while setting up the subscription never escape
// Subscribe; they are delivered to observer.Error or the error sink.
func (o *Observable[T]) Subscribe(observer Observer[T]) Subscription {
	return subscribe(o.producer, observer, o.cfg)
}

// SubscribeFunc is Subscribe with positional callbacks. Any of them may be nil.
func (o *Observable[T]) SubscribeFunc(next func(T) error, onError func(error) error, onComplete func() error) Subscription {
	return o.Subscribe(Observer[T]{
		Next:     next,
		Error:    onError,
		Complete: onComplete,
	})
}

// ObservableInterop implements Interop.
func (o *Observable[T]) ObservableInterop() Subscribable[T] {
	if o == nil {
		return nil
	}
	return o
}

// WithOptions returns a copy of o with opts applied on top of its current
// configuration. The producer is shared.
func (o *Observable[T]) WithOptions(opts ...Option) *Observable[T] {
	cfg := o.cfg
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Observable[T]{producer: o.producer, cfg: cfg}
}
