package client

import (
	"sort"
	"sync"

	"pethealth/internal/domain"
)

// Store is the in-memory notification list a connected client keeps.
// Newest records sit at the front. All methods are safe for
// concurrent use; the transport goroutine and the UI share one Store.
type Store struct {
	mu     sync.RWMutex
	items  []domain.Notification
	unread int
}

func NewStore() *Store {
	return &Store{}
}

// Add prepends a pushed notification and bumps the unread counter
// when the record arrives unread. A record whose id is already
// present replaces the old copy in place.
func (s *Store) Add(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID == n.ID {
			if !it.IsRead && n.IsRead {
				s.decUnread()
			}
			if it.IsRead && !n.IsRead {
				s.unread++
			}
			s.items[i] = n
			return
		}
	}
	s.items = append([]domain.Notification{n}, s.items...)
	if !n.IsRead {
		s.unread++
	}
}

// Merge folds a fetched page into the store. Fetched records win over
// what was pushed earlier under the same id; records the fetch did not
// cover stay. The result is re-sorted newest first and the unread
// counter recomputed from the merged list.
func (s *Store) Merge(fetched []domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]int, len(fetched))
	merged := make([]domain.Notification, 0, len(fetched)+len(s.items))
	for _, n := range fetched {
		seen[n.ID] = len(merged)
		merged = append(merged, n)
	}
	for _, n := range s.items {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		merged = append(merged, n)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	s.items = merged
	s.unread = 0
	for _, n := range merged {
		if !n.IsRead {
			s.unread++
		}
	}
}

// MarkAsRead flips one record to read. Marking a record that is
// already read, or an unknown id, changes nothing.
func (s *Store) MarkAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].IsRead {
				s.items[i].IsRead = true
				s.decUnread()
			}
			return
		}
	}
}

// MarkAllAsRead flips every record to read and zeroes the counter.
func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].IsRead = true
	}
	s.unread = 0
}

// MarkCompleted flips the completion flag of one record. Read state
// and the unread counter are untouched.
func (s *Store) MarkCompleted(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsCompleted = true
			return
		}
	}
}

// Delete removes one record, decrementing the counter when the
// removed record was unread.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].IsRead {
				s.decUnread()
			}
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// ClearAll empties the store.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.unread = 0
}

// List returns a copy of the records, newest first.
func (s *Store) List() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount returns the incrementally maintained unread counter.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// decUnread never lets the counter go negative, whatever ordering of
// pushes and acknowledgements produced the call.
func (s *Store) decUnread() {
	if s.unread > 0 {
		s.unread--
	}
}
