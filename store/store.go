// Package store provides the in-memory implementation of gallery.Store.
package store

import (
	"slices"
	"sync"

	"github.com/fwojciec/gallery"
)

var _ gallery.Store = (*Store)(nil)

// Store holds the application state. Dispatch has a single writer; State may
// be read from any goroutine.
type Store struct {
	mu        sync.RWMutex
	state     gallery.State
	nextID    int
	listeners map[int]func(gallery.State)
}

// New returns a store holding gallery.InitialState.
func New() *Store {
	return NewWithState(gallery.InitialState())
}

// NewWithState returns a store holding s.
func NewWithState(s gallery.State) *Store {
	return &Store{
		state:     s,
		listeners: make(map[int]func(gallery.State)),
	}
}

// State returns the current state.
func (s *Store) State() gallery.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces the action and, if the state changed, calls every
// listener with the new state. Listeners run after the lock is released, so
// they may read State or dispatch further actions.
func (s *Store) Dispatch(action gallery.Action) {
	s.mu.Lock()
	prev := s.state
	next := action.Reduce(prev)
	if next == prev {
		s.mu.Unlock()
		return
	}
	s.state = next
	listeners := s.snapshot()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// Subscribe registers fn for state changes.
func (s *Store) Subscribe(fn func(gallery.State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshot returns the listeners in subscription order. Caller must hold mu.
func (s *Store) snapshot() []func(gallery.State) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fns := make([]func(gallery.State), len(ids))
	for i, id := range ids {
		fns[i] = s.listeners[id]
	}
	return fns
}
