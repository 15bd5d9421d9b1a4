package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSearchDebounce is the recommended delay between the last keystroke
// and the search refetch.
const DefaultSearchDebounce = 250 * time.Millisecond

// debounceMsg is delivered when a debounce window elapses.
type debounceMsg struct {
	gen   uint64
	value string
}

// Debouncer collapses rapid input into one message. Each Trigger supersedes
// earlier ones; only the message from the latest Trigger is Current. It lives
// on the event loop, so no locking is needed.
type Debouncer struct {
	duration time.Duration
	gen      uint64
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultSearchDebounce
	}
	return &Debouncer{duration: duration}
}

// Trigger starts a new debounce window carrying value.
func (d *Debouncer) Trigger(value string) tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(d.duration, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen, value: value}
	})
}

// Cancel invalidates any pending window.
func (d *Debouncer) Cancel() {
	d.gen++
}

// Current reports whether msg came from the most recent Trigger.
func (d *Debouncer) Current(msg debounceMsg) bool {
	return msg.gen == d.gen
}
