package reactive

import "testing"

func TestArrayGetSetTracksIndex(t *testing.T) {
	a := NewArray([]any{1, 2, 3})
	runs := 0
	CreateEffect(func() Cleanup {
		a.Get(1)
		runs++
		return nil
	})
	a.Set(1, 20)
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
	a.Set(0, 100)
	if runs != 2 {
		t.Fatalf("expected index-0 write to leave an index-1 watcher alone, got %d runs", runs)
	}
}

func TestArrayPushTriggersLengthWatcher(t *testing.T) {
	a := NewArray([]any{1, 2})
	runs := 0
	CreateEffect(func() Cleanup {
		a.Len()
		runs++
		return nil
	})
	a.Push(3)
	if runs != 2 {
		t.Fatalf("expected push to re-run a length watcher, got %d runs", runs)
	}
}

func TestArraySetPastEndGrowsAndTriggersLength(t *testing.T) {
	a := NewArray([]any{1})
	lenRuns, idxRuns := 0, 0
	CreateEffect(func() Cleanup {
		a.Len()
		lenRuns++
		return nil
	})
	CreateEffect(func() Cleanup {
		a.Get(1)
		idxRuns++
		return nil
	})
	a.Set(1, 2)
	if lenRuns != 2 {
		t.Fatalf("expected length watcher to re-run, got %d", lenRuns)
	}
	if idxRuns != 2 {
		t.Fatalf("expected index watcher to re-run, got %d", idxRuns)
	}
	if a.Len() != 2 {
		t.Fatalf("expected array to grow to length 2, got %d", a.Len())
	}
}

func TestArraySetLengthTruncationTriggersDroppedIndices(t *testing.T) {
	a := NewArray([]any{1, 2, 3, 4})
	runs := 0
	CreateEffect(func() Cleanup {
		a.Get(3)
		runs++
		return nil
	})
	a.SetLength(2)
	if runs != 2 {
		t.Fatalf("expected truncation past index 3 to re-run its watcher, got %d", runs)
	}
	if a.Len() != 2 {
		t.Fatalf("expected length 2, got %d", a.Len())
	}
}

func TestArrayPopReturnsLastElement(t *testing.T) {
	a := NewArray([]any{1, 2, 3})
	v, ok := a.Pop()
	if !ok || v != 3 {
		t.Fatalf("expected (3, true), got (%v, %v)", v, ok)
	}
	if a.Len() != 2 {
		t.Fatalf("expected length 2 after pop, got %d", a.Len())
	}
}

func TestArrayIncludesFindsRawEquivalent(t *testing.T) {
	a := NewArray([]any{1, 2, 3})
	if !a.Includes(2) {
		t.Fatal("expected Includes(2) to be true")
	}
	if a.Includes(99) {
		t.Fatal("expected Includes(99) to be false")
	}
}

func TestReadonlyArraySetIsNoop(t *testing.T) {
	a := ReadonlyArray([]any{1, 2})
	a.Set(0, 99)
	if a.Get(0) != 1 {
		t.Fatalf("expected readonly array set to be dropped, got %v", a.Get(0))
	}
}

// IndexOf/Includes track every visited index directly, not just IterateKey,
// so a plain in-range Set on an index a scan already passed over must
// re-run dependents of that scan.
func TestArrayIncludesReRunsOnInRangeSet(t *testing.T) {
	a := NewArray([]any{1, 2, 3})
	runs := 0
	var found bool
	CreateEffect(func() Cleanup {
		found = a.Includes(5)
		runs++
		return nil
	})
	if found {
		t.Fatal("expected Includes(5) to be false before the set")
	}
	a.Set(1, 5)
	if runs != 2 {
		t.Fatalf("expected Includes watcher to re-run after an in-range Set, got %d runs", runs)
	}
	if !found {
		t.Fatal("expected Includes(5) to be true after the set")
	}
}

func TestArrayIndexOfReRunsOnInRangeSet(t *testing.T) {
	a := NewArray([]any{10, 20, 30})
	runs := 0
	CreateEffect(func() Cleanup {
		a.IndexOf(30)
		runs++
		return nil
	})
	a.Set(2, 999)
	if runs != 2 {
		t.Fatalf("expected IndexOf watcher to re-run after an in-range Set at the matched index, got %d runs", runs)
	}
}

func TestArraySliceReRunsOnInRangeSet(t *testing.T) {
	a := NewArray([]any{1, 2, 3})
	runs := 0
	CreateEffect(func() Cleanup {
		a.Slice()
		runs++
		return nil
	})
	a.Set(0, 100)
	if runs != 2 {
		t.Fatalf("expected Slice watcher to re-run after an in-range Set, got %d runs", runs)
	}
}

// Array.Get preserves a ref stored at an integer index: the
// array-integer-key exception to the engine's auto-unwrap rule.
func TestArrayGetPreservesRefAtIndex(t *testing.T) {
	r := NewRef(1)
	a := NewArray([]any{r})
	got, ok := a.Get(0).(*Ref[int])
	if !ok || got != r {
		t.Fatalf("expected Array.Get to return the ref itself, not unwrap it, got %#v", a.Get(0))
	}
}
