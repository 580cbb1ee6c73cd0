package reactive

// nextID hands out process-wide unique identifiers for effects and tracked
// targets. The engine runs a single cooperative tracking model (see doc.go)
// so this is a plain counter, not an atomic one: there is never more than
// one goroutine inside the dependency graph at a time by contract.
var idCounter uint64

func nextID() uint64 {
	idCounter++
	return idCounter
}
