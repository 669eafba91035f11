// Package engine provides the fixed-cadence simulation driver. One loop
// owns the tick ordering: colony reconciliation first (build queue, then
// energy and production), then missions, then the shipyard — all against
// the same timestamp.
package engine

import (
	"log/slog"
	"time"
)

// DefaultTickInterval is the base simulation cadence.
const DefaultTickInterval = time.Second

// Advancer is a simulation subsystem driven by wall-clock timestamps in
// Unix milliseconds.
type Advancer interface {
	Advance(now int64)
}

// AdvanceFunc adapts a plain function to the Advancer interface.
type AdvanceFunc func(now int64)

// Advance implements Advancer.
func (f AdvanceFunc) Advance(now int64) { f(now) }

// Engine drives the simulation forward at a fixed interval.
type Engine struct {
	Interval time.Duration

	// Subsystems in tick order. The colony advancer must come first:
	// production depends on building levels updated by queue completion.
	systems []Advancer

	ticks   uint64
	stop    chan struct{}
	stopped chan struct{}
	now     func() int64
}

// New creates an engine ticking the given subsystems in order.
func New(interval time.Duration, systems ...Advancer) *Engine {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Engine{
		Interval: interval,
		systems:  systems,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Ticks returns the number of ticks processed so far.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Run starts the simulation loop. Blocks until Stop is called.
func (e *Engine) Run() {
	slog.Info("simulation engine started", "interval", e.Interval)
	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()
	defer close(e.stopped)

	for {
		select {
		case <-e.stop:
			slog.Info("simulation engine stopped", "ticks", e.ticks)
			return
		case <-ticker.C:
			e.step(e.now())
		}
	}
}

// Stop halts the loop and waits for the current tick to finish.
func (e *Engine) Stop() {
	close(e.stop)
	<-e.stopped
}

// step advances every subsystem by one tick. A panic in one subsystem is
// logged and contained; a crash here would silently end the whole session.
func (e *Engine) step(now int64) {
	e.ticks++
	for _, sys := range e.systems {
		e.advance(sys, now)
	}
}

func (e *Engine) advance(sys Advancer, now int64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tick subsystem panicked", "panic", r, "tick", e.ticks)
		}
	}()
	sys.Advance(now)
}
