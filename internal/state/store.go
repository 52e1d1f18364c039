// Package state persists small bits of UI state between runs.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store keeps a value in memory and mirrors every change to a YAML file.
// A missing or unreadable file leaves the defaults in place.
type Store[T any] struct {
	mu       sync.RWMutex
	path     string
	value    T
	defaults T
}

func NewStore[T any](path string, defaults T) *Store[T] {
	s := &Store[T]{path: path, value: defaults, defaults: defaults}
	if raw, err := os.ReadFile(path); err == nil {
		var v T
		if yaml.Unmarshal(raw, &v) == nil {
			s.value = v
		}
	}
	return s
}

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *Store[T]) Set(v T) error {
	return s.Update(func(T) T { return v })
}

// Update replaces the value with fn's result and writes it out.
func (s *Store[T]) Update(fn func(T) T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = fn(s.value)
	return s.flush()
}

// Clear restores the defaults and deletes the file.
func (s *Store[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = s.defaults
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	return nil
}

// flush writes through a temp file in the same directory so a crash never
// leaves a half-written file behind.
func (s *Store[T]) flush() error {
	raw, err := yaml.Marshal(s.value)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	_, werr := tmp.Write(raw)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
