package reactive

// Object is the engine's dynamic stand-in for "a plain object" in a
// language without Proxy: Go cannot intercept field access on an arbitrary
// struct, so a reactive object is instead an explicit ordered key/value
// container with Get/Set/Delete/Has/OwnKeys methods that do the
// track/trigger work a Proxy trap would do in the original implementation.
type Object struct {
	trackable
	data    map[string]any
	keys    []string
	variant Variant
	raw     map[string]any
}

var (
	objectReactiveCache        = map[uintptr]*Object{}
	objectReadonlyCache        = map[uintptr]*Object{}
	objectShallowReactiveCache = map[uintptr]*Object{}
	objectShallowReadonlyCache = map[uintptr]*Object{}
)

func newObjectProxy(raw map[string]any, variant Variant) *Object {
	o := &Object{
		trackable: newTrackable(),
		data:      make(map[string]any, len(raw)),
		variant:   variant,
		raw:       raw,
	}
	for k, v := range raw {
		o.keys = append(o.keys, k)
		o.data[k] = o.wrap(v)
	}
	return o
}

func (o *Object) wrap(v any) any {
	if o.variant.shallow() {
		return v
	}
	return wrapNested(v, o.variant.readonly())
}

// wrapNested applies the appropriate proxy variant to a value being stored
// into or read out of a deep container: maps become Objects, slices become
// Arrays, everything else passes through untouched.
func wrapNested(v any, readonly bool) any {
	if isMarkedRaw(v) {
		return v
	}
	switch t := v.(type) {
	case map[string]any:
		if readonly {
			return Readonly(t)
		}
		return Reactive(t)
	case []any:
		if readonly {
			return ReadonlyArray(t)
		}
		return ReactiveArray(t)
	default:
		return v
	}
}

// Reactive wraps raw as a deep mutable proxy. Calling it again on the same
// map returns the same *Object; calling it on an already-reactive object's
// underlying raw also returns that same object, matching the original's
// "reactive(reactive(x)) === reactive(x)" identity guarantee.
//
// A raw marked via MarkRaw returns nil rather than a proxy: unlike the
// original, where reactive(markRaw(x)) can return x itself untouched
// because reactive() is untyped, this Reactive must return *Object. Callers
// that need "return the value unwrapped if raw-marked" should go through
// Wrap instead, which returns any and can do exactly that.
func Reactive(raw map[string]any) *Object {
	return objectProxyFor(raw, VariantMutable, objectReactiveCache)
}

// Readonly wraps raw as a deep readonly proxy. Writes through it are
// silently dropped rather than panicking or returning an error; see
// Object.Set.
func Readonly(raw map[string]any) *Object {
	return objectProxyFor(raw, VariantReadonly, objectReadonlyCache)
}

// ShallowReactive wraps raw as a mutable proxy whose nested objects/arrays
// are left unwrapped.
func ShallowReactive(raw map[string]any) *Object {
	return objectProxyFor(raw, VariantShallowMutable, objectShallowReactiveCache)
}

// ShallowReadonly wraps raw as a readonly proxy whose nested objects/arrays
// are left unwrapped.
func ShallowReadonly(raw map[string]any) *Object {
	return objectProxyFor(raw, VariantShallowReadonly, objectShallowReadonlyCache)
}

func objectProxyFor(raw map[string]any, variant Variant, cache map[uintptr]*Object) *Object {
	if isMarkedRaw(raw) {
		return nil
	}
	id, ok := identityOf(raw)
	if !ok {
		return newObjectProxy(raw, variant)
	}
	if existing, found := cache[id]; found {
		return existing
	}
	o := newObjectProxy(raw, variant)
	cache[id] = o
	return o
}

func (o *Object) proxyVariant() Variant { return o.variant }
func (o *Object) rawValue() any         { return o.raw }

// NewObject is a convenience alias for Reactive, named for callers building
// a fresh container rather than wrapping existing data.
func NewObject(raw map[string]any) *Object { return Reactive(raw) }

// Get reads key, tracking the current effect's dependency on it. Keys are
// plain strings, so the reserved sentinel keys cannot be read through Get;
// IsReactive/IsReadonly/IsShallow/ToRaw answer those questions instead. A
// ref stored as the field's value is automatically unwrapped to the value it holds — the
// array counterpart, Array.Get, has the opposite rule: an integer-indexed
// read preserves the ref unwrapped.
func (o *Object) Get(key string) any {
	track(&o.trackable, key)
	return Unref(o.data[key])
}

// Has reports whether key is present, tracking on the key itself.
func (o *Object) Has(key string) bool {
	track(&o.trackable, key)
	_, ok := o.data[key]
	return ok
}

// OwnKeys returns the object's keys, tracking IterateKey: any future
// Add/Delete invalidates callers that enumerated keys, but a Set of an
// existing key does not. Keys added after wrapping follow in the order they
// were added; the keys present when the object was wrapped come first, in
// Go's unspecified map iteration order, so this approximates insertion
// order rather than guaranteeing it.
func (o *Object) OwnKeys() []string {
	track(&o.trackable, IterateKey)
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Set writes key=value. If the object is readonly the write is dropped
// (matching the original's "set operation failed" dev warning-and-noop,
// without requiring a logger dependency here); callers that need to know
// should check IsReadonly first.
func (o *Object) Set(key string, value any) {
	if o.variant.readonly() {
		return
	}
	_, existed := o.data[key]
	old := o.data[key]
	wrapped := o.wrap(value)
	o.data[key] = wrapped
	if !existed {
		o.keys = append(o.keys, key)
		trigger(&o.trackable, OpAdd, key, wrapped, nil)
		return
	}
	if !valuesEqual(old, wrapped) {
		trigger(&o.trackable, OpSet, key, wrapped, old)
	}
}

// Delete removes key, triggering OpDelete and IterateKey when it was
// present. A no-op on a readonly object.
func (o *Object) Delete(key string) {
	if o.variant.readonly() {
		return
	}
	old, existed := o.data[key]
	if !existed {
		return
	}
	delete(o.data, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	trigger(&o.trackable, OpDelete, key, nil, old)
}

// valuesEqual is Object.is-style equality, matching refEquals: NaN equals
// NaN so setting a NaN field to NaN again is a no-op, not a spurious
// trigger.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		if af != af && bf != bf { // both NaN
			return true
		}
		return af == bf
	}
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	return a == b
}

func isComparable(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
