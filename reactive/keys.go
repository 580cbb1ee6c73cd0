package reactive

// Key identifies a property on a tracked target. Plain targets use string
// or int keys; the engine itself uses pointer-identity sentinel keys below
// so user data can use any string without risk of colliding with the
// engine's own bookkeeping (the original implementation reserves a
// "__v_"-prefixed string namespace for the same purpose; a pointer sentinel
// is a strictly collision-free version of the same idea).
type Key = any

type sentinelKey struct{ name string }

func (s *sentinelKey) String() string { return s.name }

var (
	// IsReactiveKey, IsReadonlyKey, IsShallowKey and RawKey are the reserved
	// flag keys (mutable proxy, readonly proxy, shallow proxy, underlying
	// target). Object.Get and Array.Get take string and int keys, so these
	// sentinels are not readable through them; IsReactive, IsReadonly,
	// IsShallow and ToRaw (raw.go) report the same facts.
	IsReactiveKey = &sentinelKey{"__v_isReactive"}
	IsReadonlyKey = &sentinelKey{"__v_isReadonly"}
	IsShallowKey  = &sentinelKey{"__v_isShallow"}
	RawKey        = &sentinelKey{"__v_raw"}
	// valueKey is the synthetic property Ref and Computed track/trigger on.
	valueKey = &sentinelKey{"value"}
	// lengthKey is the Array synthetic "length" property.
	lengthKey = &sentinelKey{"length"}
)

// IterateKey is the dependency used for for-range-style iteration over an
// Object's own keys (OwnKeys tracks it; Has tracks the key itself). Adding or deleting a
// key invalidates it; setting an existing key's value does not. Array has
// no IterateKey dependents: scanning an array's full contents (Includes,
// IndexOf, LastIndexOf, Slice) tracks every index plus length directly
// instead, since trigger's array-aware rules notify those targeted.
var IterateKey = &sentinelKey{"__v_iterate"}

// MapKeyIterateKey is the analogous dependency for iterating a collection's
// keys specifically (see CollectionTarget), distinct from iterating its
// values.
var MapKeyIterateKey = &sentinelKey{"__v_mapKeyIterate"}

// OpType classifies the kind of mutation that triggered a dependency, used
// by the selection rules in trigger.go and surfaced to OnTrigger hooks.
type OpType int

const (
	OpGet OpType = iota
	OpHas
	OpIterate
	OpAdd
	OpSet
	OpDelete
	OpClear
)

func (o OpType) String() string {
	switch o {
	case OpGet:
		return "get"
	case OpHas:
		return "has"
	case OpIterate:
		return "iterate"
	case OpAdd:
		return "add"
	case OpSet:
		return "set"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}
