// Package queue provides the shared song queue for the collaborative jukebox.
package queue

import "sync"

// Store is the sole owner of the queue sequence for the process lifetime.
// All mutations go through its lock, so concurrent adds from different
// teams cannot overwrite each other. State is in-memory only: a process
// restart resets the queue to empty.
type Store struct {
	mu         sync.RWMutex
	entries    []Entry
	nowPlaying *Entry
}

// NewStore creates an empty queue store.
func NewStore() *Store {
	return &Store{}
}

// All returns a snapshot of the queue in playback order.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len returns the number of queued entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Append adds an entry to the tail and returns the new full state.
// Callers are expected to have validated the track already (ValidateTrack);
// the store does not re-check the content policy.
func (s *Store) Append(e Entry) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return s.snapshot()
}

// Replace overwrites the whole queue with the given sequence.
// Contents are not validated.
func (s *Store) Replace(entries []Entry) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]Entry, len(entries))
	copy(s.entries, entries)
	return s.snapshot()
}

// RemoveByID removes the first entry whose track ID matches id and returns
// the new state. A miss is a no-op, not an error.
func (s *Store) RemoveByID(id string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	return s.snapshot()
}

// Clear empties the queue and returns the (empty) state.
func (s *Store) Clear() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return s.snapshot()
}

// Head returns the next entry to be played, if any.
func (s *Store) Head() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

// Advance pops the head entry and records it as now playing.
// Returns false if the queue is empty.
func (s *Store) Advance() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	head := s.entries[0]
	s.entries = s.entries[1:]
	s.nowPlaying = &head
	return head, true
}

// NowPlaying returns the last entry advanced out of the queue, or nil.
// The external player is the source of truth for what is actually playing;
// this is a local prediction for UI display.
func (s *Store) NowPlaying() *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.nowPlaying == nil {
		return nil
	}
	e := *s.nowPlaying
	return &e
}

// snapshot copies the entry slice; callers must hold at least the read lock.
func (s *Store) snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
