package session

import "sync"

// Signal is a zero-argument broadcast owned by a Session. Subscribers run in
// subscription order on the goroutine that calls Emit.
type Signal struct {
	mu   sync.Mutex
	subs []subscriber
	next int
}

type subscriber struct {
	id int
	fn func()
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (s *Signal) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Emit calls every current subscriber. Subscriptions added or removed by a
// subscriber take effect on the next Emit.
func (s *Signal) Emit() {
	s.mu.Lock()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()
	for _, sub := range subs {
		sub.fn()
	}
}

func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Signal) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
