package reactive

import "testing"

func TestEffectRunsOnCreate(t *testing.T) {
	ran := false
	CreateEffect(func() Cleanup {
		ran = true
		return nil
	})
	if !ran {
		t.Fatal("expected effect to run once on creation")
	}
}

func TestEffectReRunsOnDependencyChange(t *testing.T) {
	obj := NewObject(map[string]any{"count": 0})
	runs := 0
	CreateEffect(func() Cleanup {
		obj.Get("count")
		runs++
		return nil
	})
	obj.Set("count", 1)
	obj.Set("count", 2)
	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
}

func TestEffectDoesNotReRunOnUnrelatedKey(t *testing.T) {
	obj := NewObject(map[string]any{"a": 1, "b": 2})
	runs := 0
	CreateEffect(func() Cleanup {
		obj.Get("a")
		runs++
		return nil
	})
	obj.Set("b", 3)
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}
}

func TestEffectCleanupRunsBeforeNextRun(t *testing.T) {
	obj := NewObject(map[string]any{"n": 0})
	var order []string
	CreateEffect(func() Cleanup {
		obj.Get("n")
		order = append(order, "run")
		return func() { order = append(order, "cleanup") }
	})
	obj.Set("n", 1)
	if len(order) != 3 || order[0] != "run" || order[1] != "cleanup" || order[2] != "run" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestEffectStopPreventsFurtherRuns(t *testing.T) {
	obj := NewObject(map[string]any{"n": 0})
	runs := 0
	eff := CreateEffect(func() Cleanup {
		obj.Get("n")
		runs++
		return nil
	})
	eff.Stop()
	obj.Set("n", 1)
	if runs != 1 {
		t.Fatalf("expected 1 run after stop, got %d", runs)
	}
	if eff.Active() {
		t.Fatal("expected effect to be inactive after Stop")
	}
}

func TestEffectStopRunsFinalCleanup(t *testing.T) {
	cleaned := false
	eff := CreateEffect(func() Cleanup {
		return func() { cleaned = true }
	})
	eff.Stop()
	if !cleaned {
		t.Fatal("expected Stop to run pending cleanup")
	}
}

func TestEffectDropsStaleBranchDependency(t *testing.T) {
	obj := NewObject(map[string]any{"cond": true, "a": 1, "b": 2})
	runs := 0
	CreateEffect(func() Cleanup {
		if obj.Get("cond").(bool) {
			obj.Get("a")
		} else {
			obj.Get("b")
		}
		runs++
		return nil
	})
	obj.Set("cond", false)
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
	// now only "b" is tracked; "a" should no longer trigger a run.
	obj.Set("a", 100)
	if runs != 2 {
		t.Fatalf("expected still 2 runs after unrelated branch changed, got %d", runs)
	}
	obj.Set("b", 200)
	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
}

func TestEffectSelfTriggerGuard(t *testing.T) {
	obj := NewObject(map[string]any{"n": 0})
	runs := 0
	CreateEffect(func() Cleanup {
		n := obj.Get("n").(int)
		runs++
		if n == 0 {
			obj.Set("n", 1)
		}
		return nil
	})
	if runs != 1 {
		t.Fatalf("expected exactly 1 run: without allowRecurse, the effect is excluded from its own trigger's run set, got %d", runs)
	}
	if obj.Get("n").(int) != 1 {
		t.Fatalf("expected the set to have gone through even though the effect didn't re-run, got %v", obj.Get("n"))
	}
}

// AllowRecurse alone does not let a self-triggered effect re-enter its own
// still-running Run call: the effect stack's "already running" guard
// blocks that regardless of allowRecurse, which only keeps the effect in
// trigger's collected run set (see
// TestEffectAllowRecurseWithSchedulerDrainsToFixedPoint for the combination
// that actually achieves repeated runs).
func TestEffectAllowRecurseWithoutSchedulerStillBlocksReentry(t *testing.T) {
	obj := NewObject(map[string]any{"n": 0})
	runs := 0
	CreateEffect(func() Cleanup {
		n := obj.Get("n").(int)
		runs++
		if n < 3 {
			obj.Set("n", n+1)
		}
		return nil
	}, AllowRecurse())
	if runs != 1 {
		t.Fatalf("expected exactly 1 run, got %d", runs)
	}
	if obj.Get("n").(int) != 1 {
		t.Fatalf("expected n to have advanced exactly once, got %v", obj.Get("n"))
	}
}

// A scheduler is what actually breaks the synchronous re-entry cycle:
// instead of re-running inline, it defers the re-run onto a queue the host
// drains after the triggering Run call has returned.
func TestEffectAllowRecurseWithSchedulerDrainsToFixedPoint(t *testing.T) {
	obj := NewObject(map[string]any{"n": 0})
	runs := 0
	var queue []func()
	var eff *Effect
	eff = newEffect(func() Cleanup {
		n := obj.Get("n").(int)
		runs++
		if n < 3 {
			obj.Set("n", n+1)
		}
		return nil
	}, AllowRecurse(), WithScheduler(func() {
		queue = append(queue, eff.Run)
	}))
	eff.Run()
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]
		job()
	}
	if runs != 4 {
		t.Fatalf("expected 4 runs (0,1,2,3) once the scheduler drains, got %d", runs)
	}
}

func TestUntrackedReadEstablishesNoDependency(t *testing.T) {
	obj := NewObject(map[string]any{"n": 0})
	runs := 0
	CreateEffect(func() Cleanup {
		Untracked(func() { obj.Get("n") })
		runs++
		return nil
	})
	obj.Set("n", 1)
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}
}

func TestOnTrackAndOnTriggerHooks(t *testing.T) {
	obj := NewObject(map[string]any{"n": 0})
	var tracked, triggered []Key
	CreateEffect(func() Cleanup {
		obj.Get("n")
		return nil
	}, OnTrack(func(ev DebugEvent) { tracked = append(tracked, ev.Key) }),
		OnTrigger(func(ev DebugEvent) { triggered = append(triggered, ev.Key) }))
	obj.Set("n", 1)
	// One track event per run: the re-run after the Set starts from a
	// cleaned dependency list and tracks "n" again.
	if len(tracked) != 2 || tracked[0] != "n" || tracked[1] != "n" {
		t.Fatalf("expected two track events for %q (initial run and re-run), got %v", "n", tracked)
	}
	if len(triggered) != 1 || triggered[0] != "n" {
		t.Fatalf("expected one trigger event for %q, got %v", "n", triggered)
	}
}
