package mask

import (
	"sync"

	"github.com/google/uuid"
)

// BufferID identifies one editing widget's buffer within a Store, so
// independent widget instances never observe each other's masks.
type BufferID string

// NewBufferID returns a fresh unique buffer identity.
func NewBufferID() BufferID {
	return BufferID(uuid.NewString())
}

type entry struct {
	content string
	mask    *Mask
}

// Store holds the most recently installed mask per buffer identity,
// together with the content snapshot it was built from. Renderers compare
// that snapshot against the live buffer to detect a stale mask.
//
// All writes go through one mutex, so a multi-threaded host cannot
// interleave installs for the same buffer; last write wins.
type Store struct {
	mu      sync.RWMutex
	entries map[BufferID]entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[BufferID]entry)}
}

// Install replaces the mask for id wholesale and returns the previous
// mask, or nil if none was installed. content is the buffer snapshot the
// mask was built from.
func (s *Store) Install(id BufferID, content string, m *Mask) *Mask {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.entries[id].mask
	s.entries[id] = entry{content: content, mask: m}
	return prev
}

// Get returns the installed mask for id and the snapshot it corresponds
// to. ok is false when nothing has been installed for id.
func (s *Store) Get(id BufferID) (m *Mask, content string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	return e.mask, e.content, ok
}

// Drop removes the entry for id, if any. Used when a widget is torn down.
func (s *Store) Drop(id BufferID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}
