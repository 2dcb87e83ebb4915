package history

import "reflect"

// Tracked decorates a value with a dirty flag derived by comparing the
// value against a hidden baseline captured at init and at every reset
// action.
type Tracked[S any] struct {
	Value S
	Dirty bool

	baseline S
}

// NewTracked wraps an initial value as its own clean baseline.
func NewTracked[S any](value S) Tracked[S] {
	return Tracked[S]{Value: value, baseline: value}
}

// ChangeOptions configures WithChangeDetection. Equal is the structural
// equality used against the baseline; when nil, reflect.DeepEqual is
// used. ShouldReset marks the actions that recapture the baseline.
type ChangeOptions[S any] struct {
	ShouldReset func(action any) bool
	Equal       func(a, b S) bool
}

// WithChangeDetection decorates inner with unsaved-changes tracking. The
// wrapped value passes through unaltered; only the derived flag is added.
// A second reset always returns the flag to false, even when the content
// differs from the original baseline.
func WithChangeDetection[S any](inner Reducer[S], opts ChangeOptions[S]) Reducer[Tracked[S]] {
	equal := opts.Equal
	if equal == nil {
		equal = func(a, b S) bool { return reflect.DeepEqual(a, b) }
	}
	return func(t Tracked[S], action any) Tracked[S] {
		next := inner(t.Value, action)
		if opts.ShouldReset != nil && opts.ShouldReset(action) {
			return Tracked[S]{Value: next, baseline: next}
		}
		return Tracked[S]{
			Value:    next,
			Dirty:    !equal(next, t.baseline),
			baseline: t.baseline,
		}
	}
}
