package reactive

// Tracking state is process-wide, global, and unsynchronized by design: the
// engine's concurrency model is single-threaded and cooperative (see
// doc.go). There is exactly one active effect at a time and exactly one
// shouldTrack flag; nothing here takes a lock.
var (
	activeEffect  *Effect
	effectStack   []*Effect
	shouldTrack   = true
	trackingStack []bool
)

// pauseTracking disables track() calls until the matching enableTracking or
// resetTracking. Nested pause/enable pairs are supported via the stack.
func pauseTracking() {
	trackingStack = append(trackingStack, shouldTrack)
	shouldTrack = false
}

// enableTracking re-enables track() calls, pushing the current state so a
// later resetTracking restores whatever was active before this call.
func enableTracking() {
	trackingStack = append(trackingStack, shouldTrack)
	shouldTrack = true
}

// resetTracking pops the last pushed tracking state, restoring it.
func resetTracking() {
	if len(trackingStack) == 0 {
		shouldTrack = true
		return
	}
	last := trackingStack[len(trackingStack)-1]
	trackingStack = trackingStack[:len(trackingStack)-1]
	shouldTrack = last
}

// Untracked runs fn with tracking disabled, regardless of whether an effect
// is currently active, then restores the prior state. Reads performed
// inside fn establish no dependencies.
func Untracked(fn func()) {
	pauseTracking()
	defer resetTracking()
	fn()
}

func pushEffect(e *Effect) {
	effectStack = append(effectStack, e)
	activeEffect = e
}

func popEffect() {
	effectStack = effectStack[:len(effectStack)-1]
	if len(effectStack) > 0 {
		activeEffect = effectStack[len(effectStack)-1]
	} else {
		activeEffect = nil
	}
}
