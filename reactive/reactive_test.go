package reactive

import "testing"

// End-to-end scenarios exercising the dependency graph, effect runtime,
// proxy layer, and derived-value primitives together, the way a real
// caller would combine them rather than exercising each in isolation.

func TestTodoListScenario(t *testing.T) {
	state := NewObject(map[string]any{
		"todos": []any{
			map[string]any{"text": "buy milk", "done": false},
			map[string]any{"text": "walk dog", "done": false},
		},
	})
	todos := state.Get("todos").(*Array)

	remaining := NewComputed(func() int {
		n := 0
		count := todos.Len()
		for i := 0; i < count; i++ {
			item := todos.Get(i).(*Object)
			if !item.Get("done").(bool) {
				n++
			}
		}
		return n
	})

	var renders []int
	CreateEffect(func() Cleanup {
		renders = append(renders, remaining.Value())
		return nil
	})
	if len(renders) != 1 || renders[0] != 2 {
		t.Fatalf("expected initial render [2], got %v", renders)
	}

	first := todos.Get(0).(*Object)
	first.Set("done", true)
	if len(renders) != 2 || renders[1] != 1 {
		t.Fatalf("expected render [2 1], got %v", renders)
	}

	todos.Push(map[string]any{"text": "feed cat", "done": false})
	if len(renders) != 3 || renders[2] != 2 {
		t.Fatalf("expected render [2 1 2], got %v", renders)
	}
}

func TestComputedChainInvalidatesTransitively(t *testing.T) {
	celsius := NewRef(0.0)
	fahrenheit := NewComputed(func() float64 { return celsius.Value()*9/5 + 32 })
	description := NewComputed(func() string {
		if fahrenheit.Value() > 80 {
			return "hot"
		}
		return "mild"
	})

	if description.Value() != "mild" {
		t.Fatalf("expected mild, got %v", description.Value())
	}
	celsius.SetValue(30)
	if description.Value() != "hot" {
		t.Fatalf("expected hot, got %v", description.Value())
	}
}

func TestWatchEffectStopsReactingAfterScopeDispose(t *testing.T) {
	scope := NewEffectScope(true)
	r := NewRef(1)
	runs := 0
	scope.Run(func() {
		WatchEffect(func(OnCleanup) {
			r.Value()
			runs++
		})
	})
	r.SetValue(2)
	if runs != 2 {
		t.Fatalf("expected 2 runs before dispose, got %d", runs)
	}
	scope.Stop()
	r.SetValue(3)
	if runs != 2 {
		t.Fatalf("expected no further runs after scope dispose, got %d", runs)
	}
}

func TestReactiveIdempotenceAcrossWrapAndRefs(t *testing.T) {
	raw := map[string]any{"n": 1}
	o1 := Reactive(raw)
	o2 := Wrap(raw).(*Object)
	if o1 != o2 {
		t.Fatal("expected Reactive and Wrap to return the same proxy for the same map")
	}
	r := ToRef(o1, "n")
	if Unref(r) != 1 {
		t.Fatalf("expected Unref(ToRef(o,\"n\")) == 1, got %v", Unref(r))
	}
}

func TestDiamondDependencyRunsEffectOnce(t *testing.T) {
	source := NewRef(1)
	left := NewComputed(func() int { return source.Value() + 1 })
	right := NewComputed(func() int { return source.Value() + 2 })
	runs := 0
	CreateEffect(func() Cleanup {
		_ = left.Value() + right.Value()
		runs++
		return nil
	})
	source.SetValue(10)
	if runs != 2 {
		t.Fatalf("expected the effect to run exactly once per source change despite two dependency paths, got %d runs", runs)
	}
}
