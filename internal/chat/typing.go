package chat

import (
	"sync"
	"time"
)

// TypingTimeout is how long a typing indicator stays up without being
// refreshed.
const TypingTimeout = 3000 * time.Millisecond

// TypingTracker keeps the per-user typing state. An entry self-removes after
// the timeout unless cleared first; setting it again while present restarts
// the timeout rather than stacking a second one.
type TypingTracker struct {
	timeout  time.Duration
	sched    *Scheduler
	onChange func(userID string, isTyping bool)

	mu     sync.RWMutex
	typing map[string]bool
}

// NewTypingTracker creates a tracker over the given timer registry. onChange
// may be nil; when set it is invoked for every visible state transition,
// including timer expiry.
func NewTypingTracker(timeout time.Duration, sched *Scheduler, onChange func(userID string, isTyping bool)) *TypingTracker {
	if timeout <= 0 {
		timeout = TypingTimeout
	}
	return &TypingTracker{
		timeout:  timeout,
		sched:    sched,
		onChange: onChange,
		typing:   make(map[string]bool),
	}
}

func (t *TypingTracker) SetTyping(userID string, isTyping bool) {
	if isTyping {
		t.mu.Lock()
		t.typing[userID] = true
		t.mu.Unlock()

		// Re-scheduling the same key replaces any prior timer
		t.sched.Schedule(taskKindTyping, userID, t.timeout, func() {
			t.expire(userID)
		})

		t.notify(userID, true)
		return
	}

	t.sched.Cancel(taskKindTyping, userID)

	t.mu.Lock()
	_, present := t.typing[userID]
	delete(t.typing, userID)
	t.mu.Unlock()

	if present {
		t.notify(userID, false)
	}
}

func (t *TypingTracker) expire(userID string) {
	t.mu.Lock()
	_, present := t.typing[userID]
	delete(t.typing, userID)
	t.mu.Unlock()

	if present {
		t.notify(userID, false)
	}
}

func (t *TypingTracker) IsTyping(userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.typing[userID]
}

// Typing returns a snapshot of the users currently typing.
func (t *TypingTracker) Typing() map[string]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]bool, len(t.typing))
	for id := range t.typing {
		out[id] = true
	}
	return out
}

func (t *TypingTracker) notify(userID string, isTyping bool) {
	if t.onChange != nil {
		t.onChange(userID, isTyping)
	}
}
