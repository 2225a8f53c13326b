package disposable

import "sync"

// Set collects disposables and releases them together.
type Set struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// NewSet creates a set holding the given disposables.
func NewSet(items ...Disposable) *Set {
	s := &Set{}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends a disposable to the set.
// If the set is already disposed, the item is disposed immediately.
func (s *Set) Add(item Disposable) {
	if item == nil {
		return
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		item.Dispose()
		return
	}
	for _, existing := range s.items {
		if existing == item {
			s.mu.Unlock()
			return
		}
	}
	s.items = append(s.items, item)
	s.mu.Unlock()
}

// Remove takes a disposable out of the set without disposing it.
// Returns false if the item was not a member.
func (s *Set) Remove(item Disposable) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the item is a member of the set.
func (s *Set) Contains(item Disposable) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing == item {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Dispose releases every member in insertion order and clears the set.
func (s *Set) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	items := s.items
	s.items = nil
	s.mu.Unlock()

	for _, item := range items {
		item.Dispose()
	}
}

// IsDisposed reports whether the set has been disposed.
func (s *Set) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
