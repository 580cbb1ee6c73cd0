package reactive

// Computed is the engine's two-layer derived value: an inner Effect tracks
// the getter's own dependencies, but reacting to them doesn't recompute
// eagerly — it only flips a dirty flag and triggers the Computed's own
// synthetic (self, "value") dependency, so anyone who read Computed.Value()
// gets re-run, and the getter itself only actually runs again the next time
// Value() is read while dirty. This is the original's exact "computed
// effects are lazy, track effects are not" split.
type Computed[T any] struct {
	trackable
	getter func() T
	effect *Effect
	value  T
	dirty  bool
	setter func(any)
}

// ComputedOption configures a Computed at creation time.
type ComputedOption func(*computedConfig)

type computedConfig struct {
	setter func(any)
}

// WithComputedSetter gives a computed a writable counterpart: SetValue
// calls it instead of dropping the write, the Go shape of a writable
// computed's {get, set} pair.
func WithComputedSetter[T any](fn func(T)) ComputedOption {
	return func(c *computedConfig) {
		c.setter = func(v any) {
			if tv, ok := v.(T); ok {
				fn(tv)
			}
		}
	}
}

// NewComputed builds a lazily-evaluated derived value from getter. The
// getter does not run until Value is first read.
func NewComputed[T any](getter func() T, opts ...ComputedOption) *Computed[T] {
	cfg := &computedConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	c := &Computed[T]{trackable: newTrackable(), getter: getter, dirty: true}
	c.effect = newEffect(func() Cleanup {
		c.value = getter()
		return nil
	}, WithScheduler(func() { c.markDirty() }))
	c.effect.allowRecurse = false
	c.setter = cfg.setter
	return c
}

// setter is stored on the struct rather than the config so writable
// computeds don't need a second generic type parameter threaded through.
func (c *Computed[T]) markDirty() {
	if c.dirty {
		return
	}
	c.dirty = true
	trigger(&c.trackable, OpSet, valueKey, nil, nil)
}

// Value returns the current derived value, recomputing first if a
// dependency has changed since the last read, and tracks the calling
// effect against this computed's own synthetic dependency.
func (c *Computed[T]) Value() T {
	track(&c.trackable, valueKey)
	if c.dirty {
		c.effect.Run()
		c.dirty = false
	}
	return c.value
}

// SetValue calls the setter configured via WithComputedSetter, if any. A
// computed with no setter silently drops the write, matching the original's
// dev-only warning-and-noop for a readonly computed.
func (c *Computed[T]) SetValue(v T) {
	if c.setter != nil {
		c.setter(v)
	}
}

func (c *Computed[T]) isRef()        {}
func (c *Computed[T]) rawUnref() any { return c.Value() }

// Stop detaches the computed's internal effect from its dependencies; a
// stopped computed returns its last computed value forever after.
func (c *Computed[T]) Stop() {
	c.effect.Stop()
}
