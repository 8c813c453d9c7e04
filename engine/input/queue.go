package input

import "sync"

// Queue buffers events pushed from the windowing thread until the frame goroutine drains them.
type Queue interface {
	// Push appends an event. Safe for concurrent use.
	//
	// Parameters:
	//   - e: the event
	Push(e Event)

	// Drain returns every pending event in push order and empties the queue.
	//
	// Returns:
	//   - []Event: pending events, nil when none
	Drain() []Event

	// Len returns the number of pending events.
	//
	// Returns:
	//   - int: pending event count
	Len() int
}

type queueImpl struct {
	mu      *sync.Mutex
	pending []Event
	limit   int
}

var _ Queue = &queueImpl{}

// defaultQueueLimit bounds the queue so a stalled frame loop cannot grow it without limit.
const defaultQueueLimit = 1024

// NewQueue creates an empty event queue. When the queue is full, consecutive pointer moves
// are coalesced and other events evict the oldest entry.
//
// Returns:
//   - Queue: the queue
func NewQueue() Queue {
	return &queueImpl{mu: &sync.Mutex{}, limit: defaultQueueLimit}
}

func (q *queueImpl) Push(e Event) {
	if e == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	// only the latest pointer position matters
	if _, ok := e.(EventPointerMove); ok && len(q.pending) > 0 {
		if _, lastMove := q.pending[len(q.pending)-1].(EventPointerMove); lastMove {
			q.pending[len(q.pending)-1] = e
			return
		}
	}
	if len(q.pending) >= q.limit {
		q.pending = q.pending[1:]
	}
	q.pending = append(q.pending, e)
}

func (q *queueImpl) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *queueImpl) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
