package reactive

// Array is the dynamic stand-in for a reactive array. Integer indices and
// the synthetic lengthKey are both trackable keys; mutation methods are
// "instrumented" the way the original wraps push/pop/shift/unshift/splice
// so that growing or shrinking the array triggers both the affected indices
// and length, in that order.
type Array struct {
	trackable
	data    []any
	variant Variant
	raw     []any
}

var (
	arrayReactiveCache        = map[uintptr]*Array{}
	arrayReadonlyCache        = map[uintptr]*Array{}
	arrayShallowReactiveCache = map[uintptr]*Array{}
	arrayShallowReadonlyCache = map[uintptr]*Array{}
)

func newArrayProxy(raw []any, variant Variant) *Array {
	a := &Array{trackable: newTrackable(), variant: variant, raw: raw}
	a.trackable.isArray = true
	a.data = make([]any, len(raw))
	for i, v := range raw {
		a.data[i] = a.wrap(v)
	}
	return a
}

func (a *Array) wrap(v any) any {
	if a.variant.shallow() {
		return v
	}
	return wrapNested(v, a.variant.readonly())
}

// ReactiveArray, ReadonlyArray, ShallowReactiveArray and ShallowReadonlyArray
// are the Array counterparts of Reactive/Readonly/ShallowReactive/
// ShallowReadonly, with the same identity-caching guarantee.
func ReactiveArray(raw []any) *Array { return arrayProxyFor(raw, VariantMutable, arrayReactiveCache) }
func ReadonlyArray(raw []any) *Array { return arrayProxyFor(raw, VariantReadonly, arrayReadonlyCache) }
func ShallowReactiveArray(raw []any) *Array {
	return arrayProxyFor(raw, VariantShallowMutable, arrayShallowReactiveCache)
}
func ShallowReadonlyArray(raw []any) *Array {
	return arrayProxyFor(raw, VariantShallowReadonly, arrayShallowReadonlyCache)
}

func arrayProxyFor(raw []any, variant Variant, cache map[uintptr]*Array) *Array {
	if isMarkedRaw(raw) {
		return nil
	}
	id, ok := identityOf(raw)
	if !ok {
		return newArrayProxy(raw, variant)
	}
	if existing, found := cache[id]; found {
		return existing
	}
	a := newArrayProxy(raw, variant)
	cache[id] = a
	return a
}

func (a *Array) proxyVariant() Variant { return a.variant }
func (a *Array) rawValue() any         { return a.raw }

// NewArray is a convenience alias for ReactiveArray.
func NewArray(raw []any) *Array { return ReactiveArray(raw) }

// Len returns the array's length, tracking lengthKey.
func (a *Array) Len() int {
	track(&a.trackable, lengthKey)
	return len(a.data)
}

// Get reads index i, tracking it. Out-of-range reads return nil, matching a
// plain out-of-bounds property read returning undefined; the index is still
// tracked, so a later write that grows the array to cover it re-runs the
// reader. Unlike Object.Get, a ref stored at an integer index is returned
// as-is: the array-integer-key exception to the engine's "refs auto-unwrap
// on read" rule.
func (a *Array) Get(i int) any {
	if i >= 0 {
		track(&a.trackable, i)
	}
	if i < 0 || i >= len(a.data) {
		return nil
	}
	return a.data[i]
}

// Set writes index i. Writing past the current end grows the array and is
// an OpAdd, which trigger's array rule also delivers to length dependents;
// writing within range is a plain OpSet.
func (a *Array) Set(i int, v any) {
	if a.variant.readonly() || i < 0 {
		return
	}
	wrapped := a.wrap(v)
	if i < len(a.data) {
		old := a.data[i]
		a.data[i] = wrapped
		if !valuesEqual(old, wrapped) {
			trigger(&a.trackable, OpSet, i, wrapped, old)
		}
		return
	}
	for len(a.data) <= i {
		a.data = append(a.data, nil)
	}
	a.data[i] = wrapped
	trigger(&a.trackable, OpAdd, i, wrapped, nil)
}

// SetLength truncates or extends the array to n. A single OpSet on length
// covers both directions: trigger's array-aware length rule notifies every
// dep on a dropped index (n <= index < oldLen) alongside the length dep
// itself, so a caller of SetLength never has to fire per-index triggers by
// hand.
func (a *Array) SetLength(n int) {
	if a.variant.readonly() || n < 0 {
		return
	}
	oldLen := len(a.data)
	if n < oldLen {
		a.data = a.data[:n]
	} else if n > oldLen {
		for len(a.data) < n {
			a.data = append(a.data, nil)
		}
	} else {
		return
	}
	trigger(&a.trackable, OpSet, lengthKey, n, oldLen)
}

// Push appends values, each an OpAdd at its new index; trigger's array rule
// delivers every such OpAdd to length dependents as well, so no separate
// length OpSet is fired.
func (a *Array) Push(values ...any) int {
	if a.variant.readonly() {
		return len(a.data)
	}
	for _, v := range values {
		wrapped := a.wrap(v)
		a.data = append(a.data, wrapped)
		trigger(&a.trackable, OpAdd, len(a.data)-1, wrapped, nil)
	}
	return len(a.data)
}

// Pop removes and returns the last element.
func (a *Array) Pop() (any, bool) {
	if a.variant.readonly() || len(a.data) == 0 {
		return nil, false
	}
	last := len(a.data) - 1
	v := a.data[last]
	a.data = a.data[:last]
	trigger(&a.trackable, OpDelete, last, nil, v)
	trigger(&a.trackable, OpSet, lengthKey, len(a.data), last+1)
	return v, true
}

// Shift removes and returns the first element, re-indexing the rest.
func (a *Array) Shift() (any, bool) {
	if a.variant.readonly() || len(a.data) == 0 {
		return nil, false
	}
	v := a.data[0]
	a.data = a.data[1:]
	trigger(&a.trackable, OpClear, nil, nil, nil)
	return v, true
}

// Unshift prepends values, re-indexing the rest.
func (a *Array) Unshift(values ...any) int {
	if a.variant.readonly() {
		return len(a.data)
	}
	wrapped := make([]any, len(values))
	for i, v := range values {
		wrapped[i] = a.wrap(v)
	}
	a.data = append(wrapped, a.data...)
	if len(values) > 0 {
		trigger(&a.trackable, OpClear, nil, nil, nil)
	}
	return len(a.data)
}

// Splice removes deleteCount elements starting at start and inserts
// replacements there, returning the removed elements.
func (a *Array) Splice(start, deleteCount int, replacements ...any) []any {
	if a.variant.readonly() {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if start > len(a.data) {
		start = len(a.data)
	}
	end := start + deleteCount
	if end > len(a.data) {
		end = len(a.data)
	}
	removed := append([]any{}, a.data[start:end]...)
	wrapped := make([]any, len(replacements))
	for i, v := range replacements {
		wrapped[i] = a.wrap(v)
	}
	tail := append([]any{}, a.data[end:]...)
	a.data = append(append(a.data[:start], wrapped...), tail...)
	trigger(&a.trackable, OpClear, nil, nil, nil)
	return removed
}

// trackAll establishes a dependency on every integer index currently in
// range plus length, the way a full scan over the raw array must: a later
// Set at any visited index, or a length change, has to invalidate it, and
// tracking each index individually (rather than a single IterateKey) is
// what lets trigger's targeted OpSet-at-an-index path reach it.
func (a *Array) trackAll() {
	track(&a.trackable, lengthKey)
	for i := range a.data {
		track(&a.trackable, i)
	}
}

// Includes, IndexOf and LastIndexOf are instrumented the way the original
// wraps them: they track every index visited during the scan plus length,
// and compare against ToRaw(needle) so searching for a raw value that is
// stored wrapped still finds it.
func (a *Array) Includes(needle any) bool {
	return a.IndexOf(needle) >= 0
}

func (a *Array) IndexOf(needle any) int {
	a.trackAll()
	raw := ToRaw(needle)
	for i, v := range a.data {
		if valuesEqual(ToRaw(v), raw) {
			return i
		}
	}
	return -1
}

func (a *Array) LastIndexOf(needle any) int {
	a.trackAll()
	raw := ToRaw(needle)
	for i := len(a.data) - 1; i >= 0; i-- {
		if valuesEqual(ToRaw(a.data[i]), raw) {
			return i
		}
	}
	return -1
}

// Slice returns a snapshot of the array's current contents, tracking every
// index and length the same way IndexOf does.
func (a *Array) Slice() []any {
	a.trackAll()
	out := make([]any, len(a.data))
	copy(out, a.data)
	return out
}
