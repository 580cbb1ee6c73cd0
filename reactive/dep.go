package reactive

import mapset "github.com/deckarep/golang-set/v2"

// dep is the set of effects subscribed to one (target, key) pair. Membership
// checks go through a set for O(1) "already subscribed" lookups; iteration
// goes through the slice so subscribers run in the order they first tracked,
// per the engine's ordering guarantee.
type dep struct {
	ids     mapset.Set[uint64]
	effects []*Effect
}

func newDep() *dep {
	return &dep{ids: mapset.NewThreadUnsafeSet[uint64]()}
}

func (d *dep) has(e *Effect) bool {
	return d.ids.Contains(e.id)
}

// add subscribes e, returning false if it was already subscribed.
func (d *dep) add(e *Effect) bool {
	if d.ids.Contains(e.id) {
		return false
	}
	d.ids.Add(e.id)
	d.effects = append(d.effects, e)
	return true
}

func (d *dep) delete(e *Effect) {
	if !d.ids.Contains(e.id) {
		return
	}
	d.ids.Remove(e.id)
	for i, cur := range d.effects {
		if cur == e {
			d.effects = append(d.effects[:i], d.effects[i+1:]...)
			break
		}
	}
}

func (d *dep) len() int {
	return len(d.effects)
}

func (d *dep) forEach(fn func(*Effect)) {
	// Snapshot: an effect's run may re-track (subscribing or unsubscribing
	// from this very dep), which must not disturb the in-flight iteration.
	snapshot := make([]*Effect, len(d.effects))
	copy(snapshot, d.effects)
	for _, e := range snapshot {
		fn(e)
	}
}
