package interaction

import "sync"

// Well-known store keys.
const (
	// KeySelectedTimeIndex is the time index currently hovered anywhere in
	// the UI; sibling components read it to synchronize their own markers.
	KeySelectedTimeIndex = "selectedZoneTimeIndex"
)

// Store is the shared UI-selection state. It is an explicit object passed to
// its consumers with a single write entry point; writes are last-write-wins
// under the event model (one writer per event).
type Store struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// NewStore creates an empty selection store.
func NewStore() *Store {
	return &Store{values: make(map[string]interface{})}
}

// Set writes a value under a key. A nil value clears the key.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == nil {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}

// Get returns the value under a key, or nil when unset.
func (s *Store) Get(key string) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// SelectedTimeIndex returns the globally selected time index, if any.
func (s *Store) SelectedTimeIndex() (int, bool) {
	v := s.Get(KeySelectedTimeIndex)
	if v == nil {
		return 0, false
	}
	idx, ok := v.(int)
	return idx, ok
}
