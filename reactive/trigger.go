package reactive

// trigger notifies the effects depending on (t, key) that it changed, per
// op. The selection rules:
//
//   - OpSet on a plain target: only the dep for key runs (value changed,
//     shape did not).
//   - OpSet on an array's lengthKey: the length dep runs, plus every dep
//     registered on an integer index >= the new length (truncation drops
//     those indices).
//   - OpAdd/OpDelete on a plain (non-array) target: the dep for key runs,
//     plus IterateKey and MapKeyIterateKey (iteration order or membership
//     changed; only collection handlers track MapKeyIterateKey).
//   - OpAdd on an array: the dep for key runs, plus the length dep —
//     arrays have no IterateKey dependents, since Includes/IndexOf/
//     LastIndexOf/Slice track every index and length directly instead (see
//     array.go).
//   - OpDelete on an array: only the dep for key runs. IterateKey is a
//     non-array-only concern; the length OpSet a caller fires alongside an
//     array delete covers what IterateKey would have.
//   - OpClear: every dep registered on t runs.
func trigger(t *trackable, typ OpType, key Key, newValue, oldValue any) {
	km, ok := keyMapFor(t)
	if !ok {
		return
	}

	var deps []*dep
	switch typ {
	case OpAdd:
		if d, ok := km[key]; ok {
			deps = append(deps, d)
		}
		if t.isArray {
			if d, ok := km[lengthKey]; ok {
				deps = append(deps, d)
			}
		} else {
			if d, ok := km[IterateKey]; ok {
				deps = append(deps, d)
			}
			if d, ok := km[MapKeyIterateKey]; ok {
				deps = append(deps, d)
			}
		}
	case OpDelete:
		if d, ok := km[key]; ok {
			deps = append(deps, d)
		}
		if !t.isArray {
			if d, ok := km[IterateKey]; ok {
				deps = append(deps, d)
			}
			if d, ok := km[MapKeyIterateKey]; ok {
				deps = append(deps, d)
			}
		}
	case OpSet:
		if d, ok := km[key]; ok {
			deps = append(deps, d)
		}
		if t.isArray && key == lengthKey {
			if n, ok := newValue.(int); ok {
				for k, d := range km {
					if idx, ok := k.(int); ok && idx >= n {
						deps = append(deps, d)
					}
				}
			}
		}
	case OpClear:
		for _, d := range km {
			deps = append(deps, d)
		}
	}

	if len(deps) == 0 {
		return
	}
	triggerEffects(deps, DebugEvent{Target: t, Type: typ, Key: key, NewValue: newValue, OldValue: oldValue})
}

func triggerEffects(deps []*dep, ev DebugEvent) {
	seen := map[uint64]bool{}
	var ordered []*Effect
	for _, d := range deps {
		if d == nil {
			continue
		}
		d.forEach(func(e *Effect) {
			if e == activeEffect && !e.allowRecurse {
				return
			}
			if seen[e.id] {
				return
			}
			seen[e.id] = true
			ordered = append(ordered, e)
		})
	}
	for _, e := range ordered {
		ev.Effect = e
		if e.onTrigger != nil {
			e.onTrigger(ev)
		}
		Debug.publish(ev)
		e.trigger()
	}
}
