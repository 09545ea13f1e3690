package cart

import (
	"sync"
	"time"
)

// scheduler owns the controller's pending timers: deferred deletion
// completions and the undo-expiry countdown. Scheduling under a key that
// already has a pending timer replaces it, so a second deletion resets the
// undo window instead of letting the stale timer cut it short. close cancels
// everything, which is what lets a controller be torn down mid-transition
// without orphaning a pending deletion.
type scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func newScheduler() *scheduler {
	return &scheduler{timers: make(map[string]*time.Timer)}
}

func (s *scheduler) schedule(key string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, key)
		closed := s.closed
		s.mu.Unlock()
		if !closed {
			fn()
		}
	})
}

func (s *scheduler) cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

func (s *scheduler) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
