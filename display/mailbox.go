// Package display is the player's display surface: a non-blocking frame
// mailbox the transport publishes into, and renderers that turn frames into
// terminal cells or still images.
package display

import (
	"sync/atomic"

	"github.com/enriquebris/goconcurrentqueue"

	"github.com/user/splice-cli/source"
)

// DefaultCapacity is the mailbox size used when none is given.
const DefaultCapacity = 4

// Mailbox buffers the most recent frames. Publish never blocks: when the
// mailbox is full the oldest frame is dropped.
type Mailbox struct {
	queue     *goconcurrentqueue.FixedFIFO
	published atomic.Int64
	dropped   atomic.Int64
}

// NewMailbox returns a mailbox holding up to capacity frames.
func NewMailbox(capacity int) *Mailbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Mailbox{queue: goconcurrentqueue.NewFixedFIFO(capacity)}
}

// Publish implements transport.Subscriber.
func (m *Mailbox) Publish(f source.Frame) {
	m.published.Add(1)
	for m.queue.Enqueue(f) != nil {
		if _, err := m.queue.Dequeue(); err == nil {
			m.dropped.Add(1)
		}
	}
}

// Latest drains the mailbox and returns the newest frame.
func (m *Mailbox) Latest() (source.Frame, bool) {
	var last source.Frame
	found := false
	for {
		v, err := m.queue.Dequeue()
		if err != nil {
			return last, found
		}
		if f, ok := v.(source.Frame); ok {
			last, found = f, true
		}
	}
}

// Len returns the number of buffered frames.
func (m *Mailbox) Len() int {
	return m.queue.GetLen()
}

// Stats returns how many frames were published and how many were dropped
// unseen.
func (m *Mailbox) Stats() (published, dropped int64) {
	return m.published.Load(), m.dropped.Load()
}
