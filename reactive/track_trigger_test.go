package reactive

import "testing"

func TestDepAddIsIdempotent(t *testing.T) {
	d := newDep()
	e := &Effect{id: nextID(), active: true}
	if !d.add(e) {
		t.Fatal("expected first add to report newly added")
	}
	if d.add(e) {
		t.Fatal("expected second add of the same effect to report already present")
	}
	if d.len() != 1 {
		t.Fatalf("expected dep length 1, got %d", d.len())
	}
}

func TestDepDeleteRemovesFromOrderedSlice(t *testing.T) {
	d := newDep()
	e1 := &Effect{id: nextID(), active: true}
	e2 := &Effect{id: nextID(), active: true}
	d.add(e1)
	d.add(e2)
	d.delete(e1)
	if d.has(e1) {
		t.Fatal("expected e1 to be removed")
	}
	if !d.has(e2) {
		t.Fatal("expected e2 to remain")
	}
	if d.len() != 1 {
		t.Fatalf("expected length 1, got %d", d.len())
	}
}

func TestKeyMapIsCreatedLazilyOnFirstTrack(t *testing.T) {
	o := NewObject(map[string]any{"n": 1})
	if _, ok := keyMapFor(&o.trackable); ok {
		t.Fatal("expected no keyMap entry before any tracked read")
	}
	CreateEffect(func() Cleanup { o.Get("n"); return nil })
	km, ok := keyMapFor(&o.trackable)
	if !ok || len(km) != 1 {
		t.Fatalf("expected exactly one tracked key after a read, got ok=%v len=%d", ok, len(km))
	}
}

func TestTriggerWithNoRegisteredDepsIsNoop(t *testing.T) {
	o := NewObject(map[string]any{"n": 1})
	// No effect has ever read o, so no keyMap entry exists yet; Set must not
	// panic even though trigger() has nothing to notify.
	o.Set("n", 2)
}

func TestOpTypeString(t *testing.T) {
	cases := map[OpType]string{
		OpGet: "get", OpSet: "set", OpAdd: "add", OpDelete: "delete", OpClear: "clear",
	}
	for op, want := range cases {
		if op.String() != want {
			t.Fatalf("expected %q, got %q", want, op.String())
		}
	}
}
