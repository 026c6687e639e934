package services

import (
	"sync"
	"time"
)

// StatusBoard holds at most one user-facing transient message. A new message
// replaces the old one and restarts the expiry timer; after the TTL the slot
// empties itself.
type StatusBoard struct {
	mu    sync.Mutex
	msg   string
	timer *time.Timer
	ttl   time.Duration
}

func NewStatusBoard(ttl time.Duration) *StatusBoard {
	return &StatusBoard{ttl: ttl}
}

// Set replaces the current message and restarts the expiry timer.
func (b *StatusBoard) Set(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msg = msg
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		// Only clear if no newer message replaced this timer.
		if b.msg == msg {
			b.msg = ""
		}
		b.mu.Unlock()
	})
}

// Message returns the active message, or "" when the slot is empty.
func (b *StatusBoard) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}

// Stop cancels the pending expiry timer. Called on session teardown.
func (b *StatusBoard) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.msg = ""
}
