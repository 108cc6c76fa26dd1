// Package history provides an in-memory gallery.AddressBar with browser
// history semantics: a list of entries with a current position, where
// pushes truncate forward entries and back/forward move the position.
package history

import (
	"strings"
	"sync"

	"github.com/fwojciec/gallery"
)

// DefaultMaxEntries bounds the number of entries kept.
const DefaultMaxEntries = 100

var _ gallery.AddressBar = (*History)(nil)

// History is a session history of raw query strings.
//
// Write changes the location silently. Back, Forward, Go and Navigate are
// external navigation and notify subscribers, mirroring how a browser
// fires popstate for traversal but not for pushState.
type History struct {
	mu        sync.Mutex
	entries   []string
	index     int
	max       int
	readOnly  bool
	nextID    int
	listeners map[int]func(string)
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries caps the number of entries. The oldest entries are
// dropped first. Defaults to DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.max = n
		}
	}
}

// WithReadOnly makes every Write fail with EUNAVAILABLE, as in a sandboxed
// context where the location cannot be changed.
func WithReadOnly() Option {
	return func(h *History) {
		h.readOnly = true
	}
}

// New returns a history with a single entry at initial.
func New(initial string, opts ...Option) *History {
	h := &History{
		entries:   []string{clean(initial)},
		max:       DefaultMaxEntries,
		listeners: make(map[int]func(string)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Location returns the current entry.
func (h *History) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Write pushes or replaces the current entry without notifying subscribers.
func (h *History) Write(rawQuery string, mode gallery.WriteMode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.readOnly {
		return gallery.Errorf(gallery.EUNAVAILABLE, "location is read-only")
	}

	rawQuery = clean(rawQuery)
	if mode == gallery.ReplaceHistory {
		h.entries[h.index] = rawQuery
		return nil
	}
	h.push(rawQuery)
	return nil
}

// Navigate pushes rawQuery as if the user had typed it into the address bar
// and notifies subscribers.
func (h *History) Navigate(rawQuery string) {
	h.mu.Lock()
	rawQuery = clean(rawQuery)
	h.push(rawQuery)
	listeners := h.snapshot()
	h.mu.Unlock()

	notify(listeners, rawQuery)
}

// Back moves one entry back. Returns false at the first entry.
func (h *History) Back() bool {
	return h.Go(-1)
}

// Forward moves one entry forward. Returns false at the last entry.
func (h *History) Forward() bool {
	return h.Go(1)
}

// Go moves delta entries and notifies subscribers. Returns false, without
// moving, if the target is out of range or delta is zero.
func (h *History) Go(delta int) bool {
	h.mu.Lock()
	target := h.index + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = target
	loc := h.entries[target]
	listeners := h.snapshot()
	h.mu.Unlock()

	notify(listeners, loc)
	return true
}

// CanGoBack reports whether an entry exists before the current one.
func (h *History) CanGoBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanGoForward reports whether an entry exists after the current one.
func (h *History) CanGoForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// Entries returns a copy of all entries and the current index.
func (h *History) Entries() ([]string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...), h.index
}

// Subscribe registers fn for external navigation.
func (h *History) Subscribe(fn func(rawQuery string)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.listeners[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// push truncates forward entries and appends loc. Caller must hold mu.
func (h *History) push(loc string) {
	h.entries = append(h.entries[:h.index+1], loc)
	if over := len(h.entries) - h.max; over > 0 {
		h.entries = h.entries[over:]
	}
	h.index = len(h.entries) - 1
}

// snapshot returns the listeners in subscription order. Caller must hold mu.
func (h *History) snapshot() []func(string) {
	fns := make([]func(string), 0, len(h.listeners))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func notify(listeners []func(string), loc string) {
	for _, fn := range listeners {
		fn(loc)
	}
}

func clean(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "?")
}
