package observable

import (
	"errors"
	"sync"

	"github.com/samber/lo"

	"github.com/nickrobson/observable/internal/logging"
)

// Composite groups several teardowns behind one Subscription. A producer that
// holds more than one resource can return a *Composite as its teardown; the
// subscription then collects the failures through Close and reports them to
// its own error sink.
type Composite struct {
	mu     sync.Mutex
	closed bool
	items  []func() error
	sink   ErrorSink
}

// NewComposite returns a Composite holding items.
func NewComposite(items ...Unsubscriber) *Composite {
	c := new(Composite)
	for _, u := range items {
		c.Add(u)
	}
	return c
}

// SetErrorSink sets where Unsubscribe reports teardown failures. A nil sink
// means the process default.
func (c *Composite) SetErrorSink(sink ErrorSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

// Add registers u. If the composite is already closed, u is released
// immediately and any failure goes to the error sink.
func (c *Composite) Add(u Unsubscriber) {
	fn := teardownOf(u)
	if fn == nil {
		return
	}
	c.mu.Lock()
	if c.closed {
		sink := c.sink
		c.mu.Unlock()
		report(sink, logging.Logger, guard(fn))
		return
	}
	c.items = append(c.items, fn)
	c.mu.Unlock()
}

func (c *Composite) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close releases every registered teardown once, most recently added first.
// All of them run even if some fail; the failures are returned joined. Calls
// after the first return nil.
func (c *Composite) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	items := c.items
	c.items = nil
	c.mu.Unlock()

	var errs []error
	for _, fn := range lo.Reverse(items) {
		if err := guard(fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Unsubscribe is Close for callers that cannot handle an error. Failures go
// to the error sink and never panic.
func (c *Composite) Unsubscribe() {
	err := c.Close()
	c.mu.Lock()
	sink := c.sink
	c.mu.Unlock()
	report(sink, logging.Logger, err)
}
