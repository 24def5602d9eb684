package chat

import (
	"sync"
	"time"
)

// Timer kinds used by the engine.
const (
	taskKindTyping  = "typing"
	taskKindTrigger = "trigger"
	taskKindReply   = "reply"
)

type taskKey struct {
	kind    string
	subject string
}

// Scheduler is a registry of cancellable one-shot timers keyed by
// (kind, subject). Scheduling a key that already has a pending timer cancels
// the prior one, which gives typing indicators their restart semantics.
// After Close, pending timers are stopped and late fires are inert.
type Scheduler struct {
	mu     sync.Mutex
	timers map[taskKey]*time.Timer
	closed bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[taskKey]*time.Timer),
	}
}

// Schedule arms fn to run once after delay. The callback only runs if its
// timer is still the current one for the key and the scheduler is open.
func (s *Scheduler) Schedule(kind, subject string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	key := taskKey{kind: kind, subject: subject}
	if prev, ok := s.timers[key]; ok {
		prev.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.closed || s.timers[key] != t {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()

		fn()
	})
	s.timers[key] = t
}

// Cancel stops the pending timer for the key, if any.
func (s *Scheduler) Cancel(kind, subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := taskKey{kind: kind, subject: subject}
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// Pending reports whether a timer is armed for the key.
func (s *Scheduler) Pending(kind, subject string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.timers[taskKey{kind: kind, subject: subject}]
	return ok
}

// Close stops every pending timer. Callbacks that already fired but have not
// acquired the lock yet become no-ops.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
