package observable

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriber_NextForwardsToObserver(t *testing.T) {
	var sub *Subscriber[string]
	rec := &recorder[string]{}
	New(capture(&sub, func() {})).Subscribe(rec.observer())

	require.NoError(t, sub.Next("a"))
	require.NoError(t, sub.Next("b"))
	assert.Equal(t, []string{"a", "b"}, rec.Values())
}

func TestSubscriber_NextWithoutCallback(t *testing.T) {
	var sub *Subscriber[int]
	s := New(capture(&sub, func() {})).Subscribe(Observer[int]{})

	assert.NoError(t, sub.Next(1))
	assert.False(t, s.Closed())
}

func TestSubscriber_NextAfterUnsubscribeIsNoop(t *testing.T) {
	var sub *Subscriber[int]
	rec := &recorder[int]{}
	s := New(capture(&sub, func() {})).Subscribe(rec.observer())

	s.Unsubscribe()
	assert.True(t, sub.Closed())
	assert.NoError(t, sub.Next(1))
	assert.Empty(t, rec.Notifications())
}

func TestSubscriber_NextFailureClosesAndPropagates(t *testing.T) {
	var sub *Subscriber[int]
	var runs int
	rec := &recorder[int]{}
	observer := rec.observer()
	observer.Next = func(int) error { return errBoom }

	s := New(capture(&sub, func() { runs++ })).Subscribe(observer)
	require.False(t, s.Closed())

	err := sub.Next(1)
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, s.Closed())
	assert.Equal(t, 1, runs)
	assert.Empty(t, rec.Notifications(), "a failing next must not trigger error or complete")
}

func TestSubscriber_NextPanicPropagatesAsPanicError(t *testing.T) {
	var sub *Subscriber[int]
	s := New(capture(&sub, func() {})).Subscribe(Observer[int]{
		Next: func(int) error { panic("next") },
	})

	err := sub.Next(1)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "next", pe.Value)
	assert.True(t, s.Closed())
}

func TestSubscriber_NextFailureDuringSetupDoesNotEscapeSubscribe(t *testing.T) {
	sink := &sinkRecorder{}
	var runs int
	obs := New[int](func(sub *Subscriber[int]) (Unsubscriber, error) {
		if err := sub.Next(1); err != nil {
			return TeardownFunc(func() { runs++ }), err
		}
		return nil, nil
	}, WithErrorSink(sink))

	var s Subscription
	require.NotPanics(t, func() {
		s = obs.Subscribe(Observer[int]{Next: func(int) error { return errBoom }})
	})
	assert.True(t, s.Closed())
	assert.Equal(t, 1, runs)
	assert.Equal(t, []error{errBoom}, sink.Errors())
}

func TestSubscriber_ErrorOnClosedReturnsError(t *testing.T) {
	var sub *Subscriber[int]
	called := false
	s := New(capture(&sub, func() {})).Subscribe(Observer[int]{
		Error: func(error) error {
			called = true
			return nil
		},
	})

	s.Unsubscribe()
	assert.ErrorIs(t, sub.Error(errBoom), errBoom)
	assert.False(t, called)
}

func TestSubscriber_ErrorDeliversThenCleansUp(t *testing.T) {
	var sub *Subscriber[int]
	var order []string
	s := New(capture(&sub, func() { order = append(order, "teardown") })).Subscribe(Observer[int]{
		Error: func(err error) error {
			order = append(order, "error:"+err.Error())
			return nil
		},
	})

	assert.NoError(t, sub.Error(errBoom))
	assert.True(t, s.Closed())
	assert.Equal(t, []string{"error:boom", "teardown"}, order)
}

func TestSubscriber_ErrorWithoutHandlerIsReported(t *testing.T) {
	sink := &sinkRecorder{}
	var sub *Subscriber[int]
	var runs int
	New(capture(&sub, func() { runs++ }), WithErrorSink(sink)).Subscribe(Observer[int]{})

	assert.NoError(t, sub.Error(errBoom))
	assert.Equal(t, []error{errBoom}, sink.Errors())
	assert.Equal(t, 1, runs)
}

func TestSubscriber_ErrorHandlerFailureIsReported(t *testing.T) {
	sink := &sinkRecorder{}
	var sub *Subscriber[int]
	var runs int
	New(capture(&sub, func() { runs++ }), WithErrorSink(sink)).Subscribe(Observer[int]{
		Error: func(error) error { return errOther },
	})

	assert.NoError(t, sub.Error(errBoom))
	assert.Equal(t, []error{errOther}, sink.Errors())
	assert.Equal(t, 1, runs)
}

func TestSubscriber_CompleteOnce(t *testing.T) {
	var sub *Subscriber[int]
	var runs int
	rec := &recorder[int]{}
	s := New(capture(&sub, func() { runs++ })).Subscribe(rec.observer())

	sub.Complete()
	sub.Complete()
	assert.NoError(t, sub.Next(1))
	assert.ErrorIs(t, sub.Error(errBoom), errBoom)

	assert.True(t, s.Closed())
	assert.Equal(t, 1, runs)
	assert.Equal(t, []Notification[int]{CompleteNotification[int]()}, rec.Notifications())
}

func TestSubscriber_CompleteFailureIsReported(t *testing.T) {
	sink := &sinkRecorder{}
	var sub *Subscriber[int]
	var runs int
	New(capture(&sub, func() { runs++ }), WithErrorSink(sink)).Subscribe(Observer[int]{
		Complete: func() error { panic("complete") },
	})

	assert.NotPanics(t, sub.Complete)
	assert.Equal(t, 1, runs)
	require.Len(t, sink.Errors(), 1)
	var pe *PanicError
	require.ErrorAs(t, sink.Errors()[0], &pe)
	assert.Equal(t, "complete", pe.Value)
}

func TestSubscriber_UnsubscribeFromNextStopsLaterEmissions(t *testing.T) {
	var sub *Subscriber[int]
	var handle Subscription
	var got []int
	New(capture(&sub, func() {})).Subscribe(Observer[int]{
		Start: func(s Subscription) error {
			handle = s
			return nil
		},
		Next: func(v int) error {
			got = append(got, v)
			handle.Unsubscribe()
			return nil
		},
	})

	require.NoError(t, sub.Next(1))
	require.NoError(t, sub.Next(2))
	assert.Equal(t, []int{1}, got)
}

func TestSubscriber_SinkPanicIsContained(t *testing.T) {
	var buf bytes.Buffer
	obs := New[int](func(sub *Subscriber[int]) (Unsubscriber, error) {
		return nil, errBoom
	},
		WithErrorSink(ErrorSinkFunc(func(error) { panic("sink") })),
		WithLogger(zerolog.New(&buf)),
	)

	assert.NotPanics(t, func() { obs.Subscribe(Observer[int]{}) })
	assert.Contains(t, buf.String(), "error sink panicked")
}

func TestSubscriber_ObserverForwards(t *testing.T) {
	var sub *Subscriber[int]
	rec := &recorder[int]{}
	s := New(capture(&sub, func() {})).Subscribe(rec.observer())

	fwd := sub.Observer()
	require.NoError(t, fwd.Next(7))
	require.NoError(t, fwd.Complete())
	assert.ErrorIs(t, fwd.Error(errBoom), errBoom)

	assert.True(t, s.Closed())
	assert.Equal(t, []Notification[int]{
		NextNotification(7),
		CompleteNotification[int](),
	}, rec.Notifications())
}

func TestSubscriber_CompleteClosesBeforeCallbackAndCleansUpAfter(t *testing.T) {
	var sub *Subscriber[int]
	var order []string
	var closedInCallback bool
	var nextInCallback error
	nexts, completes := 0, 0

	New(capture(&sub, func() { order = append(order, "teardown") })).Subscribe(Observer[int]{
		Next: func(int) error { nexts++; return nil },
		Complete: func() error {
			completes++
			closedInCallback = sub.Closed()
			nextInCallback = sub.Next(1)
			sub.Complete()
			order = append(order, "complete")
			return nil
		},
	})
	sub.Complete()

	assert.True(t, closedInCallback)
	assert.NoError(t, nextInCallback)
	assert.Zero(t, nexts)
	assert.Equal(t, 1, completes)
	assert.Equal(t, []string{"complete", "teardown"}, order)
}

func TestSubscriber_ErrorClosesBeforeCallbackAndCleansUpAfter(t *testing.T) {
	var sub *Subscriber[int]
	var order []string
	var closedInCallback bool
	var nextInCallback, errorInCallback error
	nexts := 0

	New(capture(&sub, func() { order = append(order, "teardown") })).Subscribe(Observer[int]{
		Next: func(int) error { nexts++; return nil },
		Error: func(err error) error {
			closedInCallback = sub.Closed()
			nextInCallback = sub.Next(1)
			errorInCallback = sub.Error(errOther)
			order = append(order, "error")
			return nil
		},
	})
	require.NoError(t, sub.Error(errBoom))

	assert.True(t, closedInCallback)
	assert.NoError(t, nextInCallback)
	assert.ErrorIs(t, errorInCallback, errOther)
	assert.Zero(t, nexts)
	assert.Equal(t, []string{"error", "teardown"}, order)
}
