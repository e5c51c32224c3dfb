package runtime

import "github.com/aretw0/marquee/pkg/domain"

// Queue buffers lifecycle events until the host drains them. Sequence
// numbers are assigned on push and never reset, so events from different
// drains can still be ordered.
type Queue struct {
	seq    uint64
	events []domain.LifecycleEvent
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends ev and stamps its sequence number.
func (q *Queue) Push(ev domain.LifecycleEvent) {
	q.seq++
	ev.Seq = q.seq
	q.events = append(q.events, ev)
}

// Drain returns the buffered events in emission order and empties the queue.
func (q *Queue) Drain() []domain.LifecycleEvent {
	out := q.events
	q.events = nil
	return out
}

// Len is the number of buffered events.
func (q *Queue) Len() int { return len(q.events) }
