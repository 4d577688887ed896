// Package debounce coalesces bursts of query-change events into search calls.
package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultDelay is the quiet period before a pending query is searched
const DefaultDelay = 500 * time.Millisecond

// Key codes that trigger an immediate search
const (
	KeyEnter = 13
	KeySpace = 32
)

// Event is one raw query change
type Event struct {
	Query   string
	KeyCode int
}

// Immediate reports whether the event bypasses the debounce delay
func (e Event) Immediate() bool {
	return e.Query == "" || e.KeyCode == KeyEnter || e.KeyCode == KeySpace
}

// SearchFunc runs the search pipeline for a query
type SearchFunc func(query string)

// Option configures a Debouncer
type Option func(*Debouncer)

// WithDelay sets the quiet period. Non-positive values keep the default.
func WithDelay(delay time.Duration) Option {
	return func(d *Debouncer) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// WithClock sets the clock used for timers. Default is the wall clock.
func WithClock(c clock.Clock) Option {
	return func(d *Debouncer) {
		if c != nil {
			d.clock = c
		}
	}
}

// Debouncer holds at most one pending search and only ever searches the latest query
type Debouncer struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	search  SearchFunc
	pending *clock.Timer

	// generation invalidates a timer callback that already fired when it was stopped
	generation uint64
}

// New creates a Debouncer calling search
func New(search SearchFunc, opts ...Option) *Debouncer {
	d := &Debouncer{
		clock:  clock.New(),
		delay:  DefaultDelay,
		search: search,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the configured quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Handle processes one event. Immediate events search synchronously on the
// caller's goroutine; the rest are searched after the delay unless superseded.
func (d *Debouncer) Handle(event Event) {
	d.mu.Lock()
	d.cancelLocked()

	if event.Immediate() {
		d.mu.Unlock()
		d.search(event.Query)
		return
	}

	generation := d.generation
	query := event.Query
	d.pending = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if generation != d.generation {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()

		d.search(query)
	})
	d.mu.Unlock()
}

// Pending reports whether a delayed search is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Close cancels any pending search
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *Debouncer) cancelLocked() {
	d.generation++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
