// Package fetch models the lifecycle of an asynchronous query as an explicit
// tagged value owned by the view.
package fetch

// Status is the tag of a State.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// State is pending, ready with data, or failed with an error. Generation
// records which request produced it.
type State[T any] struct {
	Status     Status
	Data       T
	Err        error
	Generation uint64
}

// Pending returns a pending state for generation gen.
func Pending[T any](gen uint64) State[T] {
	return State[T]{Status: StatusPending, Generation: gen}
}

// Ready returns a ready state holding data.
func Ready[T any](gen uint64, data T) State[T] {
	return State[T]{Status: StatusReady, Data: data, Generation: gen}
}

// Failed returns a failed state holding err.
func Failed[T any](gen uint64, err error) State[T] {
	return State[T]{Status: StatusFailed, Err: err, Generation: gen}
}

// Resolve builds a ready or failed state from a call result.
func Resolve[T any](gen uint64, data T, err error) State[T] {
	if err != nil {
		return Failed[T](gen, err)
	}
	return Ready(gen, data)
}

// IsPending reports whether the request is still in flight.
func (s State[T]) IsPending() bool { return s.Status == StatusPending }

// IsReady reports whether data is available.
func (s State[T]) IsReady() bool { return s.Status == StatusReady }

// IsFailed reports whether the request failed.
func (s State[T]) IsFailed() bool { return s.Status == StatusFailed }

// Errorer is satisfied by every State regardless of its data type.
type Errorer interface {
	IsFailed() bool
	Error() error
}

// Error returns the failure, or nil.
func (s State[T]) Error() error {
	if s.Status != StatusFailed {
		return nil
	}
	return s.Err
}

// FirstError returns the message of the first failed state, in argument order.
// ok is false when none failed.
func FirstError(states ...Errorer) (msg string, ok bool) {
	for _, s := range states {
		if s.IsFailed() && s.Error() != nil {
			return s.Error().Error(), true
		}
	}
	return "", false
}
