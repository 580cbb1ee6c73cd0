package reactive

// FlushMode selects when a watcher's callback runs relative to the
// dependency change that triggered it.
type FlushMode int

const (
	// FlushPre runs before the host's next render/update pass.
	FlushPre FlushMode = iota
	// FlushPost runs after it.
	FlushPost
	// FlushSync runs synchronously, in the middle of whatever mutation
	// triggered it.
	FlushSync
)

// QueueFunc defers job to some later point chosen by the host (a frame
// scheduler, an event-loop tick, and so on).
type QueueFunc func(job func())

type watchConfig struct {
	flush     FlushMode
	immediate bool
	deep      bool
	preQueue  QueueFunc
	postQueue QueueFunc
}

// WatchOption configures Watch/WatchEffect.
type WatchOption func(*watchConfig)

// WithFlush selects the flush timing. Default is FlushPre.
func WithFlush(mode FlushMode) WatchOption {
	return func(c *watchConfig) { c.flush = mode }
}

// WithImmediate runs the callback once immediately, with no previous value,
// instead of waiting for the first change.
func WithImmediate() WatchOption {
	return func(c *watchConfig) { c.immediate = true }
}

// WithDeep marks the watch as deep: the callback fires on any change
// reachable from the source, not just a change to the top-level value
// identity, and Watch skips its own equality short-circuit.
func WithDeep() WatchOption {
	return func(c *watchConfig) { c.deep = true }
}

// WithFlushQueues injects the actual pre/post deferral mechanism. Without
// this, FlushPre and FlushPost both degrade to running synchronously: the
// microtask/render scheduler that would ordinarily back them is explicitly
// out of this package's scope (see collections.go's CollectionTarget for
// the analogous "contract, not implementation" pattern), so a host that
// wants real pre/post batching supplies its own queue.
func WithFlushQueues(pre, post QueueFunc) WatchOption {
	return func(c *watchConfig) {
		c.preQueue = pre
		c.postQueue = post
	}
}

func newWatchConfig(opts []WatchOption) *watchConfig {
	cfg := &watchConfig{flush: FlushPre}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func watchScheduler(cfg *watchConfig, job func()) func() {
	return func() {
		switch cfg.flush {
		case FlushSync:
			job()
		case FlushPost:
			if cfg.postQueue != nil {
				cfg.postQueue(job)
			} else {
				job()
			}
		default:
			if cfg.preQueue != nil {
				cfg.preQueue(job)
			} else {
				job()
			}
		}
	}
}

// OnCleanup is the callback a watch or watchEffect body receives to
// register work to run before its next invocation, or when it is stopped.
type OnCleanup func(func())

// Watch tracks getter and calls cb whenever the value it returns changes.
// The getter itself establishes the dependencies (§4.6's "getter
// synthesis"): pass a closure that reads exactly what should be watched.
func Watch[T any](getter func() T, cb func(newValue, oldValue T, onCleanup OnCleanup), opts ...WatchOption) (stop func()) {
	cfg := newWatchConfig(opts)

	var oldValue, latest T
	var cleanup func()
	var eff *Effect

	runGetter := func() T {
		v, _ := CallWithErrorHandling(func() (any, error) { return getter(), nil }, ErrorCodeWatchGetter)
		tv, _ := v.(T)
		return tv
	}

	runCleanup := func() {
		if cleanup == nil {
			return
		}
		c := cleanup
		cleanup = nil
		CallWithAsyncErrorHandling(func() error { c(); return nil }, ErrorCodeWatchCleanup)
	}

	job := func() {
		if !eff.Active() {
			return
		}
		eff.Run()
		newValue := latest
		if !cfg.deep && refEquals(oldValue, newValue) {
			return
		}
		runCleanup()
		old := oldValue
		oldValue = newValue
		onCleanup := func(fn func()) { cleanup = fn }
		CallWithAsyncErrorHandling(func() error { cb(newValue, old, onCleanup); return nil }, ErrorCodeWatchCallback)
	}

	eff = newEffect(func() Cleanup {
		latest = runGetter()
		return nil
	}, WithScheduler(watchScheduler(cfg, job)))
	eff.Run()
	oldValue = latest

	if cfg.immediate {
		var zero T
		onCleanup := func(fn func()) { cleanup = fn }
		CallWithAsyncErrorHandling(func() error { cb(oldValue, zero, onCleanup); return nil }, ErrorCodeWatchCallback)
	}

	return eff.Stop
}

// WatchEffect runs fn immediately and again whenever any target/key it read
// changes, with cleanup-before-run semantics identical to a plain Effect.
// Unlike Watch, there is no separate getter/callback split: fn is both.
func WatchEffect(fn func(onCleanup OnCleanup), opts ...WatchOption) (stop func()) {
	cfg := newWatchConfig(opts)
	var cleanup func()

	runCleanup := func() {
		if cleanup == nil {
			return
		}
		c := cleanup
		cleanup = nil
		CallWithAsyncErrorHandling(func() error { c(); return nil }, ErrorCodeWatchCleanup)
	}

	job := func() {
		runCleanup()
		onCleanup := func(f func()) { cleanup = f }
		CallWithErrorHandling(func() (any, error) { fn(onCleanup); return nil, nil }, ErrorCodeWatchGetter)
	}

	var eff *Effect
	eff = newEffect(func() Cleanup {
		job()
		return nil
	}, WithScheduler(watchScheduler(cfg, func() { eff.Run() })))
	eff.Run()

	return eff.Stop
}

// Traverse walks a value reachable from v, reading every own key of every
// nested Object/Array so the calling effect tracks the whole subtree, the
// building block a deep Watch's getter uses instead of only reading v
// itself.
func Traverse(v any, seen map[uint64]bool) any {
	if seen == nil {
		seen = map[uint64]bool{}
	}
	switch t := v.(type) {
	case *Object:
		if seen[t.id] {
			return v
		}
		seen[t.id] = true
		for _, k := range t.OwnKeys() {
			Traverse(t.Get(k), seen)
		}
	case *Array:
		if seen[t.id] {
			return v
		}
		seen[t.id] = true
		n := t.Len()
		for i := 0; i < n; i++ {
			Traverse(t.Get(i), seen)
		}
	}
	return v
}

// WatchDeep watches every value reachable from source, calling cb whenever
// any of them changes.
func WatchDeep(source any, cb func(onCleanup OnCleanup), opts ...WatchOption) (stop func()) {
	getter := func() any { return Traverse(source, nil) }
	opts = append(opts, WithDeep())
	return Watch(getter, func(_, _ any, onCleanup OnCleanup) { cb(onCleanup) }, opts...)
}
