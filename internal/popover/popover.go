// Package popover implements the hover-intent / click-toggle state machine behind
// the posts popover.
//
// The machine never sleeps. A hover-leave hands the host a Timer handle; the host
// schedules it however its event loop does (bubbletea uses tea.Tick) and reports
// back with TimerFired. Only the most recently issued handle can close the
// popover, so a stale tick is harmless.
package popover

import (
	"sync/atomic"
	"time"
)

// State is the visibility of a popover.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Pointer identifies the device behind a hover event. Only mouse hovers open or
// close a popover; touch and pen use Toggle.
type Pointer int

const (
	PointerMouse Pointer = iota
	PointerTouch
	PointerPen
)

// DefaultCloseDelay bridges the gap while the pointer travels from the trigger
// into the popover.
const DefaultCloseDelay = 200 * time.Millisecond

// timerSeq is shared by every popover so a handle never collides with one issued
// by a popover that was rebuilt after a refetch.
var timerSeq atomic.Uint64

// Timer is a pending close request.
type Timer struct {
	ID    uint64
	Delay time.Duration
}

// Bounds reports whether a point lies inside the popover's trigger or panel.
type Bounds func(x, y int) bool

// Option configures a Popover.
type Option func(*Popover)

// WithCloseDelay overrides the hover-leave grace period.
func WithCloseDelay(d time.Duration) Option {
	return func(p *Popover) {
		if d > 0 {
			p.delay = d
		}
	}
}

// WithDocument attaches the popover to a document so it receives outside
// pointer-down and Escape events while open.
func WithDocument(doc *Document) Option {
	return func(p *Popover) {
		p.doc = doc
	}
}

// WithBounds sets the hit-test used for outside pointer-down detection.
func WithBounds(b Bounds) Option {
	return func(p *Popover) {
		p.bounds = b
	}
}

// Popover tracks one posts cell. It is not safe for concurrent use; all calls
// come from the UI event loop.
type Popover struct {
	count   int
	state   State
	pinned  bool
	delay   time.Duration
	pending *Timer
	doc     *Document
	bounds  Bounds
}

// New returns a closed popover for count posts.
func New(count int, opts ...Option) *Popover {
	p := &Popover{
		count: count,
		delay: DefaultCloseDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Count returns the number of posts behind the popover.
func (p *Popover) Count() int { return p.count }

// State returns the current state.
func (p *Popover) State() State { return p.state }

// IsOpen reports whether the popover is open.
func (p *Popover) IsOpen() bool { return p.state == Open }

// Pinned reports whether the popover is open because of a click or tap.
func (p *Popover) Pinned() bool { return p.pinned }

// Pending returns the outstanding close timer, if any.
func (p *Popover) Pending() (Timer, bool) {
	if p.pending == nil {
		return Timer{}, false
	}
	return *p.pending, true
}

// SetBounds replaces the hit-test. The view calls it after every layout pass.
func (p *Popover) SetBounds(b Bounds) {
	p.bounds = b
}

// Contains reports whether (x, y) is inside the trigger or panel.
func (p *Popover) Contains(x, y int) bool {
	return p.bounds != nil && p.bounds(x, y)
}

// HoverEnter opens the popover for a mouse pointer and cancels any pending
// close. It reports whether the state changed.
func (p *Popover) HoverEnter(ptr Pointer) bool {
	if ptr != PointerMouse || p.count == 0 {
		return false
	}
	p.cancelTimer()
	if p.state == Open {
		return false
	}
	p.open(false)
	return true
}

// HoverLeave schedules a delayed close when a mouse leaves an unpinned open
// popover. ok is false when nothing new was scheduled, including when a close
// is already pending.
func (p *Popover) HoverLeave(ptr Pointer) (t Timer, ok bool) {
	if ptr != PointerMouse || p.state != Open || p.pinned {
		return Timer{}, false
	}
	if p.pending != nil {
		return Timer{}, false
	}
	p.pending = &Timer{ID: timerSeq.Add(1), Delay: p.delay}
	return *p.pending, true
}

// TimerFired closes the popover if id is the pending close timer. Stale ids are
// ignored. It reports whether the state changed.
func (p *Popover) TimerFired(id uint64) bool {
	if p.pending == nil || p.pending.ID != id {
		return false
	}
	p.pending = nil
	if p.state != Open {
		return false
	}
	p.close()
	return true
}

// Toggle flips the popover on click or tap. An open popover always closes; a
// closed one opens pinned. With no posts it does nothing.
func (p *Popover) Toggle() bool {
	if p.count == 0 {
		return false
	}
	p.cancelTimer()
	if p.state == Open {
		p.close()
	} else {
		p.open(true)
	}
	return true
}

// Close closes the popover and clears the pin.
func (p *Popover) Close() bool {
	p.cancelTimer()
	if p.state != Open {
		return false
	}
	p.close()
	return true
}

// Dispose detaches the popover from its document. Call it when the row goes
// away.
func (p *Popover) Dispose() {
	p.cancelTimer()
	p.state = Closed
	p.pinned = false
	if p.doc != nil {
		p.doc.unsubscribe(p)
	}
}

func (p *Popover) open(pinned bool) {
	p.state = Open
	p.pinned = pinned
	if p.doc != nil {
		p.doc.subscribe(p)
	}
}

func (p *Popover) close() {
	p.state = Closed
	p.pinned = false
	if p.doc != nil {
		p.doc.unsubscribe(p)
	}
}

func (p *Popover) cancelTimer() {
	p.pending = nil
}
