package reactive

import (
	"runtime"
	"weak"
)

// keyMap holds one dep per tracked key on a single target.
type keyMap map[Key]*dep

// trackable is embedded by every type the engine can track/trigger on
// (Object, Array, Ref, Computed). It carries a stable identity used as the
// targetMap key. isArray lets trigger() apply the array-specific selection
// rules (length instead of IterateKey) without every call site having to
// pass that information through separately.
type trackable struct {
	id      uint64
	isArray bool
}

func newTrackable() trackable {
	return trackable{id: nextID()}
}

// targetMap is the engine's dependency registry: Target -> KeyMap -> Dep ->
// Effect. The Target side is held weakly (weak.Pointer) so a discarded
// reactive object's bookkeeping is reclaimed with it rather than pinned in
// this map forever; runtime.AddCleanup removes the keyMap entry once the
// target itself is collected. This is the one place the engine reaches for
// the standard library over a third-party package: no weak-map library
// exists anywhere in the example corpus, and weak+AddCleanup is exactly the
// tool the standard library added for this job in Go 1.24.
var targetMap = map[weak.Pointer[trackable]]keyMap{}

func depFor(t *trackable, key Key) *dep {
	wp := weak.Make(t)
	km, ok := targetMap[wp]
	if !ok {
		km = make(keyMap)
		targetMap[wp] = km
		runtime.AddCleanup(t, cleanupTarget, wp)
	}
	d, ok := km[key]
	if !ok {
		d = newDep()
		km[key] = d
	}
	return d
}

func cleanupTarget(wp weak.Pointer[trackable]) {
	delete(targetMap, wp)
}

func keyMapFor(t *trackable) (keyMap, bool) {
	km, ok := targetMap[weak.Make(t)]
	return km, ok
}
