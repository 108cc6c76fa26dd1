// Package urlsync keeps the search held in a gallery.Store and the location
// held in a gallery.AddressBar equivalent.
//
// The engine runs three procedures:
//
//   - Hydrate, once at Mount: the location is decoded into the store.
//   - Propagate, on every store change: the store is encoded into the
//     location, immediately or, for keyword-only edits, after a quiet period.
//   - Absorb, on every external navigation: the location is decoded into the
//     store unless it equals what the engine itself last wrote.
//
// The engine remembers the last query it wrote or absorbed (the cursor).
// Comparing against the cursor is what stops a write from being read back
// as navigation and a navigation from being written back as an edit.
package urlsync

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/gallery"
	"github.com/fwojciec/gallery/url"
)

// DefaultDebounce is the quiet period before a keyword edit is written.
const DefaultDebounce = 400 * time.Millisecond

// Engine synchronizes a store with an address bar.
type Engine struct {
	store    gallery.Store
	bar      gallery.AddressBar
	clock    gallery.Clock
	logger   *slog.Logger
	debounce time.Duration
	mode     gallery.WriteMode

	mu      sync.Mutex
	mounted bool
	cursor  gallery.Query
	pending gallery.Timer
	gen     uint64 // bumped whenever pending is replaced or canceled
	seq     uint64 // bumped whenever the cursor moves
	unsubs  []func()

	// wmu serializes address bar writes. It is never acquired while mu is
	// held, so a bar may report a write back from inside Write.
	wmu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithDebounce sets the quiet period for keyword edits.
// Defaults to DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		e.debounce = d
	}
}

// WithClock sets the clock used for the debounce timer.
// Defaults to SystemClock.
func WithClock(c gallery.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithWriteMode sets how committed queries enter history.
// Defaults to gallery.PushHistory.
func WithWriteMode(m gallery.WriteMode) Option {
	return func(e *Engine) {
		e.mode = m
	}
}

// NewEngine returns an unmounted engine.
func NewEngine(store gallery.Store, bar gallery.AddressBar, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		bar:      bar,
		clock:    SystemClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: DefaultDebounce,
		mode:     gallery.PushHistory,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mount hydrates the store from the current location and starts
// synchronizing. Returns EINVALID if the engine is already mounted.
func (e *Engine) Mount() error {
	e.mu.Lock()
	if e.mounted {
		e.mu.Unlock()
		return gallery.Errorf(gallery.EINVALID, "sync engine already mounted")
	}
	q := url.Parse(e.bar.Location())
	e.cursor = q
	e.mounted = true
	e.seq++
	e.mu.Unlock()

	e.logger.Debug("hydrate", "location", url.Format(q))
	e.store.Dispatch(gallery.SyncFromLocation{Query: q})

	unsubStore := e.store.Subscribe(func(s gallery.State) { e.propagate(s.Query()) })
	unsubBar := e.bar.Subscribe(e.absorb)

	e.mu.Lock()
	e.unsubs = []func(){unsubStore, unsubBar}
	e.mu.Unlock()
	return nil
}

// Unmount stops synchronizing. A pending keyword write is discarded and
// the cursor is forgotten; mounting again hydrates from the location.
func (e *Engine) Unmount() {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}
	e.cancel()
	e.mounted = false
	e.cursor = gallery.Query{}
	e.seq++
	unsubs := e.unsubs
	e.unsubs = nil
	e.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// Cursor returns the query the engine last wrote or absorbed.
func (e *Engine) Cursor() gallery.Query {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Pending reports whether a keyword write is waiting for its quiet period.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil
}

// propagate handles a store change.
func (e *Engine) propagate(q gallery.Query) {
	q = q.Normalize()

	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}

	var seq uint64
	switch {
	case q == e.cursor:
		// Edited back to the committed value; a pending write would now be stale.
		e.cancel()
	case gallery.KeywordOnlyChange(e.cursor, q):
		e.schedule(q)
	default:
		e.cancel()
		seq = e.commit(q)
	}
	e.mu.Unlock()

	if seq != 0 {
		e.write(seq, q)
	}
}

// absorb handles an external location change.
func (e *Engine) absorb(rawQuery string) {
	q := url.Parse(rawQuery)

	e.mu.Lock()
	if !e.mounted || q == e.cursor {
		e.mu.Unlock()
		return
	}
	e.cancel()
	e.cursor = q
	e.seq++
	e.mu.Unlock()

	e.logger.Debug("absorb", "location", rawQuery)
	e.store.Dispatch(gallery.SyncFromLocation{Query: q})
}

// schedule replaces any pending write with one for q. Caller must hold mu.
func (e *Engine) schedule(q gallery.Query) {
	e.cancel()
	gen := e.gen
	e.pending = e.clock.AfterFunc(e.debounce, func() { e.fire(gen, q) })
}

// fire commits q if its timer has not been superseded since it was scheduled.
func (e *Engine) fire(gen uint64, q gallery.Query) {
	e.mu.Lock()
	if !e.mounted || gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	e.gen++
	seq := e.commit(q)
	e.mu.Unlock()

	e.write(seq, q)
}

// cancel stops any pending write. Caller must hold mu.
func (e *Engine) cancel() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.gen++
}

// commit records q as the cursor and returns the sequence number to pass
// to write once mu is released. Caller must hold mu.
func (e *Engine) commit(q gallery.Query) uint64 {
	e.cursor = q
	e.seq++
	return e.seq
}

// write writes q to the address bar unless a later commit, navigation or
// unmount has moved the cursor since seq was issued. Caller must not hold mu.
func (e *Engine) write(seq uint64, q gallery.Query) {
	e.wmu.Lock()
	defer e.wmu.Unlock()

	e.mu.Lock()
	current := e.mounted && seq == e.seq
	e.mu.Unlock()
	if !current {
		return
	}

	raw := url.Format(q)
	if err := e.bar.Write(raw, e.mode); err != nil {
		e.logger.Warn("address bar write failed", "location", raw, "mode", e.mode.String(), "err", err)
		return
	}
	e.logger.Debug("commit", "location", raw, "mode", e.mode.String())
}
