package reactive

// DevMode gates publishing on the Debug bus: while it is false, track and
// trigger events reach no subscriber. Misuse cases (computed setter with no
// setter configured, write to a readonly target, OnScopeDispose outside any
// scope) are silent no-ops whatever its value. It defaults to true,
// matching the teacher's own DevMode default.
var DevMode = true

// DebugConfig holds debug-recording switches. No code in this package reads
// it: published DebugEvents always carry the raw Key, and Effect.Run
// publishes nothing on the Debug bus.
type DebugConfig struct {
	// LogRawKeys names the raw-Key switch; it has no effect on published
	// DebugEvents.
	LogRawKeys bool
	// LogEffectRuns names the effect-run switch; only track and trigger
	// occurrences are published.
	LogEffectRuns bool
}

// DefaultDebugConfig returns the configuration a fresh process starts with.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{}
}
