package reactive

// Cleanup is returned by an effect function and run immediately before the
// effect's next run, or when the effect is stopped.
type Cleanup func()

// Effect is a unit of reactive work: a function that is re-run whenever any
// target/key pair it read during its last run changes. Effects are created
// eager (CreateEffect runs fn once synchronously) and keep running until
// Stop is called.
type Effect struct {
	id      uint64
	fn      func() Cleanup
	cleanup Cleanup
	sources []*dep
	active  bool
	running bool

	// allowRecurse lets an effect re-trigger itself; by default an effect
	// that mutates a target it also reads is not re-entered synchronously
	// (the self-trigger guard in trigger.go).
	allowRecurse bool

	// scheduler, when set, is invoked instead of Run on trigger. Computed
	// and Watch use this to defer or dedupe re-evaluation.
	scheduler func()

	onTrack   func(DebugEvent)
	onTrigger func(DebugEvent)
	onStop    func()

	scope *EffectScope
}

// EffectOption configures an Effect at creation time.
type EffectOption func(*Effect)

// WithScheduler overrides how the effect reacts to a dependency changing:
// instead of running fn immediately, sched is invoked. Used by Computed
// (mark dirty, don't recompute) and Watch (queue for the configured flush
// timing) rather than direct re-entry.
func WithScheduler(sched func()) EffectOption {
	return func(e *Effect) { e.scheduler = sched }
}

// AllowRecurse keeps the effect in the run set of a trigger it causes
// itself. It does not let Run nest inside its own still-running call (see
// Run); repeated self-triggering also needs a scheduler that defers the
// re-run.
func AllowRecurse() EffectOption {
	return func(e *Effect) { e.allowRecurse = true }
}

// OnTrack registers a callback fired each time this effect establishes a
// new dependency.
func OnTrack(fn func(DebugEvent)) EffectOption {
	return func(e *Effect) { e.onTrack = fn }
}

// OnTrigger registers a callback fired each time a dependency of this
// effect changes, before the effect (or its scheduler) reacts to it.
func OnTrigger(fn func(DebugEvent)) EffectOption {
	return func(e *Effect) { e.onTrigger = fn }
}

// OnStop registers a callback fired when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return func(e *Effect) { e.onStop = fn }
}

// InScope attaches the effect to scope, so scope.Stop also stops it.
func InScope(scope *EffectScope) EffectOption {
	return func(e *Effect) {
		if scope != nil {
			scope.addEffect(e)
		}
	}
}

// CreateEffect builds an Effect around fn and runs it once immediately.
func CreateEffect(fn func() Cleanup, opts ...EffectOption) *Effect {
	e := newEffect(fn, opts...)
	e.Run()
	return e
}

// newEffect builds an Effect without running it, used by Computed which
// must stay lazy until its value is first read.
func newEffect(fn func() Cleanup, opts ...EffectOption) *Effect {
	e := &Effect{id: nextID(), fn: fn, active: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.scope == nil && activeScope != nil {
		activeScope.addEffect(e)
	}
	return e
}

// Run executes the effect's function, first running any pending cleanup and
// discarding its previous dependency set (cleanup-before-run semantics:
// stale dependencies from a branch not taken this run must not linger).
//
// An effect already on the effect stack silently returns instead of
// re-entering: without a scheduler, allowRecurse only keeps the effect in
// trigger's collected run set (see triggerEffects) — it does not let a
// self-triggered Run call synchronously nest inside itself. A scheduler is
// what actually breaks the re-entry cycle, by deferring the re-run to
// outside this call.
func (e *Effect) Run() {
	if !e.active {
		return
	}
	if e.running {
		return
	}
	e.runCleanup()
	e.unsubscribeSources()

	e.running = true
	pushEffect(e)
	defer func() {
		popEffect()
		e.running = false
	}()
	e.cleanup = e.fn()
}

func (e *Effect) runCleanup() {
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
}

func (e *Effect) unsubscribeSources() {
	for _, d := range e.sources {
		d.delete(e)
	}
	e.sources = e.sources[:0]
}

func (e *Effect) addSource(d *dep) {
	e.sources = append(e.sources, d)
}

// trigger is invoked by trigger.go when a dependency changes: it defers to
// the scheduler if one is set, otherwise re-runs the effect directly.
func (e *Effect) trigger() {
	if e.scheduler != nil {
		e.scheduler()
		return
	}
	e.Run()
}

// Stop unsubscribes the effect from every dependency it holds and runs its
// pending cleanup. A stopped effect never runs again.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.runCleanup()
	e.unsubscribeSources()
	e.active = false
	if e.onStop != nil {
		e.onStop()
	}
}

// Active reports whether the effect still reacts to its dependencies.
func (e *Effect) Active() bool { return e.active }

// ID returns the effect's process-wide unique identifier.
func (e *Effect) ID() uint64 { return e.id }
