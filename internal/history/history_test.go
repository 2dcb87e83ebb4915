package history

import "testing"

type push struct{ v int }
type reset struct{ v int }

// counting reducer over *int snapshots; pointer identity doubles as the
// no-op contract
func newCounter() (Reducer[*int], *int) {
	calls := 0
	red := func(s *int, action any) *int {
		calls++
		switch a := action.(type) {
		case push:
			v := a.v
			return &v
		case reset:
			v := a.v
			return &v
		}
		return s
	}
	return red, &calls
}

func isReset(action any) bool {
	_, ok := action.(reset)
	return ok
}

func TestHistoryRecordsOnChange(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithHistory(red, Options{ShouldReset: isReset})

	zero := 0
	h := NewHistory(&zero)
	h = wrapped(h, push{1})
	h = wrapped(h, push{2})
	if len(h.Past) != 2 || *h.Present != 2 {
		t.Fatalf("past=%d present=%d", len(h.Past), *h.Present)
	}
}

func TestHistoryIgnoresNoops(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithHistory(red, Options{})
	zero := 0
	h := NewHistory(&zero)
	type unknown struct{}
	next := wrapped(h, unknown{})
	if len(next.Past) != 0 || next.Present != h.Present {
		t.Fatalf("no-op transition must record nothing")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithHistory(red, Options{})
	zero := 0
	h := NewHistory(&zero)

	h = wrapped(h, push{7})
	after := h.Present

	h = wrapped(h, Undo{})
	if *h.Present != 0 {
		t.Fatalf("undo should restore 0, got %d", *h.Present)
	}
	if !h.CanRedo() {
		t.Fatalf("expected redo available")
	}

	h = wrapped(h, Redo{})
	if h.Present != after {
		t.Fatalf("redo must restore the exact snapshot")
	}
}

func TestUndoRedoNeverInvokeInner(t *testing.T) {
	red, calls := newCounter()
	wrapped := WithHistory(red, Options{})
	zero := 0
	h := NewHistory(&zero)
	h = wrapped(h, push{1})
	before := *calls
	h = wrapped(h, Undo{})
	h = wrapped(h, Redo{})
	if *calls != before {
		t.Fatalf("undo/redo invoked the inner reducer %d times", *calls-before)
	}
}

func TestUndoAtBottomIsNoop(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithHistory(red, Options{})
	zero := 0
	h := NewHistory(&zero)
	next := wrapped(h, Undo{})
	if next.Present != h.Present || len(next.Future) != 0 {
		t.Fatalf("undo with empty past must be a no-op")
	}
}

func TestNewTransitionClearsFuture(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithHistory(red, Options{})
	zero := 0
	h := NewHistory(&zero)
	h = wrapped(h, push{1})
	h = wrapped(h, Undo{})
	h = wrapped(h, push{2})
	if h.CanRedo() {
		t.Fatalf("a fresh transition must clear the redo stack")
	}
	if *h.Present != 2 {
		t.Fatalf("present = %d", *h.Present)
	}
}

func TestResetClearsBothStacks(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithHistory(red, Options{ShouldReset: isReset})
	zero := 0
	h := NewHistory(&zero)
	h = wrapped(h, push{1})
	h = wrapped(h, push{2})
	h = wrapped(h, Undo{})
	h = wrapped(h, reset{9})
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("reset must clear both stacks")
	}
	if *h.Present != 9 {
		t.Fatalf("present = %d, want 9", *h.Present)
	}
}

func TestHistoriesDoNotAliasStacks(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithHistory(red, Options{})
	zero := 0
	h := NewHistory(&zero)
	h = wrapped(h, push{1})
	h = wrapped(h, push{2})

	undone := wrapped(h, Undo{})
	// push onto the undone branch; the original history must be intact
	branched := wrapped(undone, push{3})
	if *branched.Present != 3 {
		t.Fatalf("branch present = %d", *branched.Present)
	}
	if *h.Present != 2 || len(h.Past) != 2 {
		t.Fatalf("original history mutated: present=%d past=%d", *h.Present, len(h.Past))
	}
}
