package page

import "sync"

// MutationEvent is one structural change notification from the host.
// Significant marks changes that should count toward forced re-analysis
// (node insertion/removal, not attribute churn).
type MutationEvent struct {
	Significant bool
}

// Events is the explicit subscribe/unsubscribe notification surface the
// host environment drives. The pipeline's debouncing logic consumes it;
// tests feed synthetic event sequences.
type Events struct {
	mu   sync.Mutex
	next int
	subs map[int]func(MutationEvent)
}

// NewEvents returns an empty event feed.
func NewEvents() *Events {
	return &Events{subs: make(map[int]func(MutationEvent))}
}

// Subscribe registers fn and returns an unsubscribe func.
func (e *Events) Subscribe(fn func(MutationEvent)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.next
	e.next++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Publish delivers ev to all current subscribers.
func (e *Events) Publish(ev MutationEvent) {
	e.mu.Lock()
	fns := make([]func(MutationEvent), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
