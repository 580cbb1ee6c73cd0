// Package reactive implements a fine-grained reactive dependency graph in
// the style of Vue 3's @vue/reactivity: a weak Target->KeyMap->Dep registry,
// track/trigger on property access, an Effect runtime with cleanup-before-run
// semantics, a dynamic Object/Array proxy layer, and the Ref/Computed/Watch
// derived-value primitives built on top of it.
//
// # Core Types
//
//	r := reactive.Reactive(map[string]any{"count": 0})
//
//	eff := reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("count is", r.Get("count"))
//	    return nil
//	})
//	r.Set("count", 1) // re-runs eff
//	eff.Stop()
//
// # Tracking model
//
// reactive runs a single cooperative, single-threaded tracking model: there
// is exactly one "current effect" at a time, tracked on a package-level
// stack, no locks and no atomics guard it. Callers that need concurrency
// must serialize their own access to the graph; this package does not.
//
// # Ref/Computed/Watch
//
//	count := reactive.NewRef(0)
//	double := reactive.NewComputed(func() int { return count.Value() * 2 })
//	stop := reactive.WatchEffect(func(reactive.OnCleanup) { fmt.Println(double.Value()) })
//	count.SetValue(1)
//	stop()
package reactive
