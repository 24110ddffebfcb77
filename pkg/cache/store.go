// Package cache persists resolved placeholder values between runs so an
// interrupted setup can resume without asking for them again.
package cache

// Store is a durable snapshot of resolved values keyed by placeholder token
type Store interface {
	// Load returns the stored snapshot, or nil if there is none. An
	// existing but empty snapshot is a non-nil empty map.
	Load() (map[string]string, error)

	// Save replaces the stored snapshot with values
	Save(values map[string]string) error
}
