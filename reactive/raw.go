package reactive

import "reflect"

// Variant distinguishes the four proxy flavors spec.md's proxy layer
// produces: deep/shallow crossed with mutable/readonly.
type Variant int

const (
	VariantMutable Variant = iota
	VariantReadonly
	VariantShallowMutable
	VariantShallowReadonly
)

func (v Variant) readonly() bool {
	return v == VariantReadonly || v == VariantShallowReadonly
}

func (v Variant) shallow() bool {
	return v == VariantShallowMutable || v == VariantShallowReadonly
}

// proxyMeta is implemented by every reactive container (Object, Array) so
// the cross-cutting predicates below don't need to know which one they're
// looking at.
type proxyMeta interface {
	proxyVariant() Variant
	rawValue() any
}

var markRawSet = map[uintptr]bool{}

func identityOf(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr:
		if rv.Pointer() == 0 {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}

// MarkRaw marks v so no proxy is produced around it: the typed factories
// (Reactive/Readonly/ShallowReactive/ShallowReadonly and their Array
// counterparts) return nil for it, while Wrap/WrapReadonly and nested
// wrapping return it unwrapped. Returns v unchanged for chaining.
func MarkRaw[T any](v T) T {
	if id, ok := identityOf(v); ok {
		markRawSet[id] = true
	}
	return v
}

func isMarkedRaw(v any) bool {
	id, ok := identityOf(v)
	return ok && markRawSet[id]
}

// ToRaw unwraps a reactive or readonly proxy back to the plain value it
// wraps, recursively through nested proxies. Non-proxy values are returned
// unchanged.
func ToRaw(v any) any {
	for {
		pm, ok := v.(proxyMeta)
		if !ok {
			return v
		}
		next := pm.rawValue()
		if next == nil || next == v {
			return next
		}
		v = next
	}
}

// IsProxy reports whether v is any reactive or readonly proxy produced by
// this package.
func IsProxy(v any) bool {
	_, ok := v.(proxyMeta)
	return ok
}

// IsReactive reports whether v is a mutable proxy (deep or shallow). A
// readonly wrapper around a reactive target is not itself reactive.
func IsReactive(v any) bool {
	pm, ok := v.(proxyMeta)
	return ok && !pm.proxyVariant().readonly()
}

// IsReadonly reports whether v is a readonly proxy (deep or shallow).
func IsReadonly(v any) bool {
	pm, ok := v.(proxyMeta)
	return ok && pm.proxyVariant().readonly()
}

// IsShallow reports whether v is a shallow proxy (mutable or readonly):
// nested objects/arrays reached through it are left unwrapped.
func IsShallow(v any) bool {
	pm, ok := v.(proxyMeta)
	return ok && pm.proxyVariant().shallow()
}
