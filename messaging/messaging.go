// Package messaging bridges watermill topics and observables.
package messaging

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/nickrobson/observable"
)

// FromTopic returns an Observable of the messages published on topic.
//
// Every subscription opens its own watermill subscription. A message is
// acked once the observer's Next accepts it and nacked if Next fails, which
// also ends the subscription. The stream completes when watermill closes the
// message channel and fails with ctx.Err() when ctx is done.
func FromTopic(ctx context.Context, sub message.Subscriber, topic string, opts ...observable.Option) *observable.Observable[*message.Message] {
	return observable.New[*message.Message](func(s *observable.Subscriber[*message.Message]) (observable.Unsubscriber, error) {
		subCtx, cancel := context.WithCancel(ctx)
		messages, err := sub.Subscribe(subCtx, topic)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("subscribe to %q: %w", topic, err)
		}
		go forward(ctx, topic, messages, s)
		return observable.TeardownFunc(cancel), nil
	}, opts...)
}

func forward(ctx context.Context, topic string, messages <-chan *message.Message, s *observable.Subscriber[*message.Message]) {
	for msg := range messages {
		if s.Closed() {
			msg.Nack()
			return
		}
		if err := s.Next(msg); err != nil {
			s.Logger().Debug().
				Err(err).
				Str("topic", topic).
				Str("message_uuid", msg.UUID).
				Msg("observer rejected message")
			msg.Nack()
			return
		}
		msg.Ack()
	}

	// watermill also closes the channel when the subscription context ends.
	if err := ctx.Err(); err != nil {
		// Same as in FromChan: a returned error means the consumer already
		// unsubscribed and nobody is waiting for it.
		if err := s.Error(err); err != nil {
			s.Logger().Debug().Err(err).Str("topic", topic).Msg("context ended after unsubscribe")
		}
		return
	}
	s.Complete()
}

// PublishTo returns an Observer that publishes every value it receives to
// topic. A failed publish is returned from Next, which stops the producer.
func PublishTo(pub message.Publisher, topic string) observable.Observer[*message.Message] {
	return observable.Observer[*message.Message]{
		Next: func(msg *message.Message) error {
			if err := pub.Publish(topic, msg); err != nil {
				return fmt.Errorf("publish to %q: %w", topic, err)
			}
			return nil
		},
	}
}
