package history

import "testing"

func TestDirtyFlagLifecycle(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithChangeDetection(red, ChangeOptions[*int]{
		ShouldReset: isReset,
		Equal:       func(a, b *int) bool { return a == b || *a == *b },
	})

	zero := 0
	tr := NewTracked(&zero)
	if tr.Dirty {
		t.Fatalf("initial state must be clean")
	}

	tr = wrapped(tr, push{1})
	if !tr.Dirty {
		t.Fatalf("a state-altering action must set the dirty flag")
	}

	tr = wrapped(tr, reset{1})
	if tr.Dirty {
		t.Fatalf("reset must clear the dirty flag")
	}

	// a second reset returns to clean even though the content differs
	// from the original baseline
	tr = wrapped(tr, push{2})
	if !tr.Dirty {
		t.Fatalf("expected dirty after second change")
	}
	tr = wrapped(tr, reset{2})
	if tr.Dirty {
		t.Fatalf("second reset must clear the flag again")
	}
}

func TestDirtyClearsWhenValueReturnsToBaseline(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithChangeDetection(red, ChangeOptions[*int]{
		ShouldReset: isReset,
		Equal:       func(a, b *int) bool { return a == b || *a == *b },
	})
	zero := 0
	tr := NewTracked(&zero)
	tr = wrapped(tr, push{5})
	tr = wrapped(tr, push{0})
	if tr.Dirty {
		t.Fatalf("value equal to baseline must read clean")
	}
}

func TestChangeDetectionPassesValueThrough(t *testing.T) {
	red, _ := newCounter()
	wrapped := WithChangeDetection(red, ChangeOptions[*int]{})
	zero := 0
	tr := NewTracked(&zero)
	tr = wrapped(tr, push{3})
	if *tr.Value != 3 {
		t.Fatalf("wrapped value = %d", *tr.Value)
	}
}
