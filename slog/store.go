package slog

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/gallery"
)

// Ensure LoggingStore implements gallery.Store.
var _ gallery.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store and logs every dispatched action.
type LoggingStore struct {
	next   gallery.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next gallery.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// State delegates to the wrapped store.
func (s *LoggingStore) State() gallery.State {
	return s.next.State()
}

// Dispatch logs the action and whether it changed the state.
func (s *LoggingStore) Dispatch(action gallery.Action) {
	prev := s.next.State()
	s.next.Dispatch(action)
	s.logger.Debug("dispatch",
		"action", fmt.Sprintf("%T", action),
		"changed", s.next.State() != prev,
	)
}

// Subscribe delegates to the wrapped store.
func (s *LoggingStore) Subscribe(fn func(gallery.State)) func() {
	return s.next.Subscribe(fn)
}
