package session

import "sync"

// EventType identifies what a queued event does when dispatched.
type EventType string

const (
	// EventObjective activates the objective.
	EventObjective EventType = "objective"
	// EventVictory declares victory.
	EventVictory EventType = "victory"
	// EventActivate calls Activate on Data, which must implement Activator.
	EventActivate EventType = "activate"
)

// Activator is anything that can be struck or used.
type Activator interface {
	Activate()
}

// Event is an externally raised request waiting for the tick thread.
type Event struct {
	Type EventType
	Data any
}

// eventQueue is a FIFO that may be pushed from any goroutine.
type eventQueue struct {
	mu    sync.Mutex
	items []Event
}

func (q *eventQueue) push(evt Event) {
	q.mu.Lock()
	q.items = append(q.items, evt)
	q.mu.Unlock()
}

// drain returns all events and clears the queue.
func (q *eventQueue) drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *eventQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
