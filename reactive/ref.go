package reactive

// Ref wraps a single value as a trackable cell: reading Value establishes a
// dependency, writing SetValue triggers it when the value actually changed.
//
// Go generics don't let the runtime re-wrap an arbitrary T the way the
// original wraps any object/array assigned into a ref; that wrapping is
// exposed explicitly here instead (see NewObjectRef/NewArrayRef) rather than
// attempted implicitly for every T, which would require an unchecked type
// assertion on every read.
type Ref[T any] struct {
	trackable
	value   T
	shallow bool
	equals  func(a, b T) bool
}

// NewRef creates a ref holding initial. Equality for change-detection
// treats NaN as equal to NaN (and -0 as equal to +0) for float64 T, falls
// back to == for other comparable types (so a float32 NaN always counts as
// changed), and treats non-comparable ones as "always changed".
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{trackable: newTrackable(), value: initial, equals: refEquals[T]}
}

// NewShallowRef creates a ref whose value is never deep-wrapped; mutating a
// map/slice held in it requires TriggerRef to notify dependents.
func NewShallowRef[T any](initial T) *Ref[T] {
	r := NewRef(initial)
	r.shallow = true
	return r
}

// NewObjectRef wraps raw in Reactive and holds the result, the common case
// of "a ref whose value is an object" from the original.
func NewObjectRef(raw map[string]any) *Ref[*Object] { return NewRef(Reactive(raw)) }

// NewArrayRef is NewObjectRef's array counterpart.
func NewArrayRef(raw []any) *Ref[*Array] { return NewRef(ReactiveArray(raw)) }

// Value reads the ref's current value, tracking the calling effect.
func (r *Ref[T]) Value() T {
	track(&r.trackable, valueKey)
	return r.value
}

// Peek reads the value without tracking, for callers (like a scheduler
// comparing before/after) that must not become a dependent themselves.
func (r *Ref[T]) Peek() T {
	return r.value
}

// SetValue writes v, triggering dependents only if it differs from the
// current value under the ref's equality.
func (r *Ref[T]) SetValue(v T) {
	if r.equals(r.value, v) {
		return
	}
	old := r.value
	r.value = v
	trigger(&r.trackable, OpSet, valueKey, v, old)
}

func (r *Ref[T]) isRef() {}

func (r *Ref[T]) rawUnref() any { return r.Value() }

func (r *Ref[T]) setAny(v any) bool {
	tv, ok := v.(T)
	if !ok {
		return false
	}
	r.SetValue(tv)
	return true
}

func refEquals[T any](a, b T) bool {
	af, aIsFloat := any(a).(float64)
	bf, bIsFloat := any(b).(float64)
	if aIsFloat && bIsFloat {
		if af != af && bf != bf { // both NaN
			return true
		}
		return af == bf
	}
	av, bv := any(a), any(b)
	if !isComparable(av) || !isComparable(bv) {
		return false
	}
	return av == bv
}

// TriggerRef forces dependents of r to re-run even if its value is
// unchanged by equality, the escape hatch for a shallow ref whose held
// object was mutated in place rather than replaced.
func TriggerRef[T any](r *Ref[T]) {
	trigger(&r.trackable, OpSet, valueKey, r.value, r.value)
}

// refLike is the type-erased interface every Ref/CustomRef implements, used
// by IsRef/Unref which can't be generic over the caller's T.
type refLike interface {
	isRef()
	rawUnref() any
}

type refSetter interface {
	setAny(any) bool
}

// IsRef reports whether v is a Ref or CustomRef of any element type.
func IsRef(v any) bool {
	_, ok := v.(refLike)
	return ok
}

// Unref returns v.Value() if v is a ref, otherwise v unchanged.
func Unref(v any) any {
	if rl, ok := v.(refLike); ok {
		return rl.rawUnref()
	}
	return v
}

// CustomRef implements a ref whose get/set are supplied by the caller,
// with the ability to opt into manual track/trigger control.
type CustomRef[T any] struct {
	trackable
	get func() T
	set func(T)
}

// NewCustomRef builds a ref from a factory, the Go shape of the original's
// customRef(factory): factory receives track/trigger callbacks it can call
// from inside get/set to control exactly when a dependency is established
// or fired, and returns the get/set pair the resulting ref exposes.
func NewCustomRef[T any](factory func(track func(), trigger func()) (get func() T, set func(T))) *CustomRef[T] {
	c := &CustomRef[T]{trackable: newTrackable()}
	trackFn := func() { track(&c.trackable, valueKey) }
	triggerFn := func() { trigger(&c.trackable, OpSet, valueKey, nil, nil) }
	c.get, c.set = factory(trackFn, triggerFn)
	return c
}

func (c *CustomRef[T]) Value() T      { return c.get() }
func (c *CustomRef[T]) SetValue(v T)  { c.set(v) }
func (c *CustomRef[T]) isRef()        {}
func (c *CustomRef[T]) rawUnref() any { return c.get() }
func (c *CustomRef[T]) setAny(v any) bool {
	tv, ok := v.(T)
	if !ok {
		return false
	}
	c.set(tv)
	return true
}

// ToRef builds a ref whose get/set forward to a single key on obj, staying
// in sync with it both ways: reading the ref reads the key (establishing
// exactly the dependency a direct obj.Get(key) would), writing the ref
// writes the key.
func ToRef(obj *Object, key string) *CustomRef[any] {
	return NewCustomRef(func(_ func(), _ func()) (func() any, func(any)) {
		return func() any { return obj.Get(key) },
			func(v any) { obj.Set(key, v) }
	})
}

// ToRefs builds a ToRef for every own key of obj, the ref-ful counterpart
// of destructuring an object without losing reactivity.
func ToRefs(obj *Object) map[string]*CustomRef[any] {
	out := make(map[string]*CustomRef[any])
	for _, key := range obj.OwnKeys() {
		out[key] = ToRef(obj, key)
	}
	return out
}

// RefsProxy auto-unwraps refs on read and forwards writes through to the
// held ref's SetValue, the Go shape of proxyRefs: a plain map of refs that
// behaves like an object of plain values.
type RefsProxy struct {
	refs map[string]any
}

// ProxyRefs wraps refs (typically produced by ToRefs) so Get/Set behave as
// if every ref value were already unwrapped.
func ProxyRefs(refs map[string]any) *RefsProxy {
	return &RefsProxy{refs: refs}
}

func (p *RefsProxy) Get(key string) any {
	return Unref(p.refs[key])
}

func (p *RefsProxy) Set(key string, value any) {
	if setter, ok := p.refs[key].(refSetter); ok {
		if setter.setAny(value) {
			return
		}
	}
	p.refs[key] = value
}
