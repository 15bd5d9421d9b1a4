// Package refresh turns a cron expression into bubbletea ticks that trigger
// network-only refetches of the grid.
package refresh

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
)

// TickMsg is delivered when a scheduled refresh is due.
type TickMsg struct {
	Generation uint64
	At         time.Time
}

// Scheduler computes refresh delays from a cron schedule.
type Scheduler struct {
	expr     string
	schedule cron.Schedule
	now      func() time.Time
	gen      uint64
}

// Parse accepts standard five-field specs and descriptors such as
// "@every 30s" or "@hourly". An empty expression yields a nil Scheduler,
// which never ticks.
func Parse(expr string) (*Scheduler, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	s, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", expr, err)
	}
	return &Scheduler{expr: expr, schedule: s, now: time.Now}, nil
}

// String returns the source expression.
func (s *Scheduler) String() string {
	if s == nil {
		return ""
	}
	return s.expr
}

// Delay returns how long until the next run after from.
func (s *Scheduler) Delay(from time.Time) time.Duration {
	next := s.schedule.Next(from)
	if next.IsZero() {
		return 0
	}
	d := next.Sub(from)
	if d < 0 {
		return 0
	}
	return d
}

// Next schedules the following tick. Calling Next again supersedes any tick
// still in flight; Current reports whether a received tick is the live one.
func (s *Scheduler) Next() tea.Cmd {
	if s == nil {
		return nil
	}
	s.gen++
	gen := s.gen
	d := s.Delay(s.now())
	if d == 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Generation: gen, At: t}
	})
}

// Current reports whether msg belongs to the most recent Next call.
func (s *Scheduler) Current(msg TickMsg) bool {
	return s != nil && msg.Generation == s.gen
}
