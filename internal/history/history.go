// Package history provides generic reducer decorators: an undo/redo
// wrapper and a change-detection wrapper. Both compose over any
// state-transition function without the inner function knowing about
// them.
package history

// Reducer is a pure state-transition function: next state from previous
// state and an action. A reducer must return the identical previous value
// for actions it ignores.
type Reducer[S any] func(S, any) S

// Undo and Redo are the actions the history wrapper itself consumes.
// They never reach the inner reducer.
type Undo struct{}

type Redo struct{}

// History decorates a value with its undo/redo stacks.
type History[S any] struct {
	Past    []S
	Present S
	Future  []S
}

// NewHistory wraps an initial present value.
func NewHistory[S any](present S) History[S] {
	return History[S]{Present: present}
}

func (h History[S]) CanUndo() bool { return len(h.Past) > 0 }
func (h History[S]) CanRedo() bool { return len(h.Future) > 0 }

// Options configures a wrapper. ShouldReset marks the action kinds that
// rebase the wrapper: history is cleared (undo cannot cross a reset) and
// the dirty baseline is recaptured.
type Options struct {
	ShouldReset func(action any) bool
}

func (o Options) isReset(action any) bool {
	return o.ShouldReset != nil && o.ShouldReset(action)
}

// WithHistory decorates inner with undo/redo bookkeeping. Undo and Redo
// only reshuffle recorded snapshots and never invoke inner, so each
// step is O(1) and exactly reverses a prior transition's observable
// value. A transition that leaves the present value identical records
// nothing.
func WithHistory[S comparable](inner Reducer[S], opts Options) Reducer[History[S]] {
	return func(h History[S], action any) History[S] {
		switch action.(type) {
		case Undo:
			if len(h.Past) == 0 {
				return h
			}
			last := len(h.Past) - 1
			return History[S]{
				Past:    h.Past[:last:last],
				Present: h.Past[last],
				Future:  prepend(h.Present, h.Future),
			}
		case Redo:
			if len(h.Future) == 0 {
				return h
			}
			return History[S]{
				Past:    appendCap(h.Past, h.Present),
				Present: h.Future[0],
				Future:  h.Future[1:],
			}
		}

		next := inner(h.Present, action)
		if opts.isReset(action) {
			return History[S]{Present: next}
		}
		if next == h.Present {
			return h
		}
		return History[S]{
			Past:    appendCap(h.Past, h.Present),
			Present: next,
		}
	}
}

// appendCap appends without sharing spare capacity with the input, so two
// histories never alias each other's stacks.
func appendCap[S any](s []S, v S) []S {
	return append(s[:len(s):len(s)], v)
}

func prepend[S any](v S, s []S) []S {
	out := make([]S, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}
