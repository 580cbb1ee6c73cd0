package reactive

// Wrap dispatches to Reactive or ReactiveArray depending on the shape of v,
// mirroring the original's single polymorphic reactive() entrypoint that
// picks baseHandlers or arrayInstrumentations based on Array.isArray. Values
// that are neither a map[string]any nor a []any are returned unchanged,
// same as the original returning primitives untouched.
func Wrap(v any) any {
	if isMarkedRaw(v) {
		return v
	}
	switch t := v.(type) {
	case map[string]any:
		return Reactive(t)
	case []any:
		return ReactiveArray(t)
	default:
		return v
	}
}

// WrapReadonly is Wrap's readonly counterpart.
func WrapReadonly(v any) any {
	if isMarkedRaw(v) {
		return v
	}
	switch t := v.(type) {
	case map[string]any:
		return Readonly(t)
	case []any:
		return ReadonlyArray(t)
	default:
		return v
	}
}
