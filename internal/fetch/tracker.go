package fetch

import "sync/atomic"

// Tracker issues request generations for one query so that responses arriving
// out of order can be recognised. A response is applied only if its generation
// is the latest issued.
type Tracker struct {
	latest atomic.Uint64
}

// Next issues a new generation, superseding all earlier ones.
func (t *Tracker) Next() uint64 {
	return t.latest.Add(1)
}

// Latest returns the most recently issued generation.
func (t *Tracker) Latest() uint64 {
	return t.latest.Load()
}

// IsCurrent reports whether gen is the latest generation.
func (t *Tracker) IsCurrent(gen uint64) bool {
	return gen == t.latest.Load()
}
