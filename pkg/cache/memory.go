package cache

// MemoryStore keeps the snapshot in memory
type MemoryStore struct {
	values map[string]string

	// Saves counts calls to Save
	Saves int
}

// NewMemoryStore creates a store seeded with values. A nil map means no
// snapshot exists yet.
func NewMemoryStore(values map[string]string) *MemoryStore {
	return &MemoryStore{values: copyMap(values)}
}

// Load implements Store
func (m *MemoryStore) Load() (map[string]string, error) {
	return copyMap(m.values), nil
}

// Save implements Store
func (m *MemoryStore) Save(values map[string]string) error {
	m.values = copyMap(values)
	m.Saves++
	return nil
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
