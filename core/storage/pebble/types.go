package pebble

// StateNamespace identifies different types of state
type StateNamespace string

const (
	RunNamespace StateNamespace = "run"
)
