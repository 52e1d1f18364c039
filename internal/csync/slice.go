package csync

import "sync"

// Slice is a mutex-guarded FIFO. Append pushes at the tail, Shift pops the
// head, and Replace swaps the whole contents.
type Slice[T any] struct {
	mu    sync.Mutex
	items []T
}

func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

func (s *Slice[T]) Append(items ...T) {
	s.mu.Lock()
	s.items = append(s.items, items...)
	s.mu.Unlock()
}

// Shift pops the head. ok is false when the slice is empty.
func (s *Slice[T]) Shift() (head T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return head, false
	}
	head = s.items[0]
	var zero T
	s.items[0] = zero
	s.items = s.items[1:]
	if len(s.items) == 0 {
		s.items = nil
	}
	return head, true
}

// Replace installs items and hands back the previous contents.
func (s *Slice[T]) Replace(items ...T) []T {
	fresh := make([]T, len(items))
	copy(fresh, items)

	s.mu.Lock()
	prev := s.items
	s.items = fresh
	s.mu.Unlock()
	return prev
}

func (s *Slice[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Slice[T]) IsEmpty() bool { return s.Len() == 0 }

// ToSlice copies the current contents.
func (s *Slice[T]) ToSlice() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}
