package reactive

// CollectionTarget is the extension point for a Map/Set/WeakMap/WeakSet
// style handler: the original specifies that these exist with the same
// track/trigger contract as Object/Array but leaves their handler bodies
// unspecified ("an external collaborator"). This package supplies only the
// contract a collection handler must satisfy to participate correctly in
// the dependency graph; no Map/Set/WeakMap/WeakSet implementation is
// provided.
//
// A conforming implementation must:
//
//   - call Track(key) from every read that should establish a dependency
//     (Get, Has, and, for iteration, IterateKey or MapKeyIterateKey)
//   - call TriggerAdd/TriggerSet/TriggerDelete/TriggerClear from every
//     mutation, using the same OpType selection rules Object and Array use
//   - hold a *TrackableHandle (from NewTrackable) as its dependency identity
type CollectionTarget interface {
	Track(key Key)
	TriggerAdd(key Key, newValue any)
	TriggerSet(key Key, newValue, oldValue any)
	TriggerDelete(key Key, oldValue any)
	TriggerClear()
}

// NewTrackable exposes trackable construction to out-of-package
// CollectionTarget implementations, which cannot otherwise obtain one since
// trackable's fields are unexported.
func NewTrackable() *TrackableHandle {
	t := newTrackable()
	return &TrackableHandle{t: &t}
}

// TrackableHandle wraps a *trackable for use by external CollectionTarget
// implementations, exposing exactly the track/trigger primitives a handler
// needs and nothing else of the engine's internals.
type TrackableHandle struct {
	t *trackable
}

func (h *TrackableHandle) Track(key Key) { track(h.t, key) }

func (h *TrackableHandle) TriggerAdd(key Key, newValue any) {
	trigger(h.t, OpAdd, key, newValue, nil)
}

func (h *TrackableHandle) TriggerSet(key Key, newValue, oldValue any) {
	trigger(h.t, OpSet, key, newValue, oldValue)
}

func (h *TrackableHandle) TriggerDelete(key Key, oldValue any) {
	trigger(h.t, OpDelete, key, nil, oldValue)
}

func (h *TrackableHandle) TriggerClear() {
	trigger(h.t, OpClear, nil, nil, nil)
}
