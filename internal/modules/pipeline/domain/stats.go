package domain

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats holds process-lifetime pipeline counters. In memory only, reset on
// restart. Seen counts every channel post the bot observes, across all chats.
type Stats struct {
	Seen      atomic.Int64
	Matched   atomic.Int64
	Rewritten atomic.Int64
	Errors    atomic.Int64
}

// Snapshot is a point-in-time read of Stats.
type Snapshot struct {
	Seen      int64 `json:"seen"`
	Matched   int64 `json:"matched"`
	Rewritten int64 `json:"rewritten"`
	Errors    int64 `json:"errors"`
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Seen:      s.Seen.Load(),
		Matched:   s.Matched.Load(),
		Rewritten: s.Rewritten.Load(),
		Errors:    s.Errors.Load(),
	}
}

// Event records one successful message replacement.
type Event struct {
	ChatID    int64     `json:"chat_id"`
	MessageID int       `json:"message_id"`
	NewID     int       `json:"new_message_id"`
	Links     int       `json:"links"`
	Time      time.Time `json:"time"`
}

// EventRing keeps the most recent replacement events, newest first.
type EventRing struct {
	mu     sync.Mutex
	events []Event
	max    int
}

func NewEventRing(max int) *EventRing {
	return &EventRing{max: max}
}

func (r *EventRing) Add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append([]Event{e}, r.events...)
	if len(r.events) > r.max {
		r.events = r.events[:r.max]
	}
}

func (r *EventRing) List() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
