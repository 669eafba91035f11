// Package notify is the user-facing notification center. Simulation stores
// push notifications here; the HTTP layer reads and streams them. It is the
// only channel for surfacing admission rejections and completions to the
// player — simulation errors themselves stay in the logs.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Variant classifies a notification for presentation.
type Variant string

const (
	Success Variant = "success"
	Info    Variant = "info"
	Warning Variant = "warning"
)

// Notification is one piece of player feedback.
type Notification struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
	CreatedAt   int64   `json:"createdAt"`
}

// Center collects notifications and fans them out to subscribers.
type Center struct {
	mu    sync.Mutex
	items []Notification
	subs  []chan Notification
	now   func() int64
}

// NewCenter creates an empty notification center. The clock function
// supplies Unix-millisecond timestamps and exists so tests can pin time.
func NewCenter(now func() int64) *Center {
	return &Center{now: now}
}

// Push records a notification and delivers it to all subscribers.
// Subscribers with a full channel are skipped rather than blocked on.
func (c *Center) Push(title, description string, variant Variant) Notification {
	c.mu.Lock()
	n := Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   c.now(),
	}
	c.items = append(c.items, n)
	subs := make([]chan Notification, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- n:
		default:
		}
	}
	return n
}

// Recent returns the last limit notifications, newest last.
func (c *Center) Recent(limit int) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := 0
	if limit > 0 && len(c.items) > limit {
		start = len(c.items) - limit
	}
	out := make([]Notification, len(c.items)-start)
	copy(out, c.items[start:])
	return out
}

// Dismiss removes a notification by id. Unknown ids are a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Subscribe registers a delivery channel for future notifications and
// returns an unsubscribe function.
func (c *Center) Subscribe(buffer int) (<-chan Notification, func()) {
	ch := make(chan Notification, buffer)

	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subs {
			if sub == ch {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}
