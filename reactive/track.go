package reactive

// track records that activeEffect depends on (t, key). A no-op when there is
// no active effect or tracking is currently paused.
func track(t *trackable, key Key) {
	if !shouldTrack || activeEffect == nil {
		return
	}
	d := depFor(t, key)
	trackDep(d, key, t)
}

func trackDep(d *dep, key Key, t *trackable) {
	e := activeEffect
	if d.add(e) {
		e.addSource(d)
		if e.onTrack != nil {
			e.onTrack(DebugEvent{Effect: e, Target: t, Type: OpGet, Key: key})
		}
		Debug.publish(DebugEvent{Effect: e, Target: t, Type: OpGet, Key: key})
	}
}
