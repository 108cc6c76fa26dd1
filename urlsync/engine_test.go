package urlsync_test

import (
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/gallery"
	"github.com/fwojciec/gallery/history"
	"github.com/fwojciec/gallery/mock"
	"github.com/fwojciec/gallery/store"
	"github.com/fwojciec/gallery/urlsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBar is an address bar that records writes and lets the test
// deliver navigation events by hand.
type recordingBar struct {
	*mock.AddressBar

	mu       sync.Mutex
	location string
	writes   []string
	navigate func(string)
}

func newRecordingBar(location string) *recordingBar {
	b := &recordingBar{location: location}
	b.AddressBar = &mock.AddressBar{
		LocationFn: func() string {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.location
		},
		WriteFn: func(raw string, mode gallery.WriteMode) error {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.location = raw
			b.writes = append(b.writes, raw)
			return nil
		},
		SubscribeFn: func(fn func(string)) func() {
			b.navigate = fn
			return func() { b.navigate = nil }
		},
	}
	return b
}

func (b *recordingBar) Writes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.writes...)
}

func setup(t *testing.T, location string) (*urlsync.Engine, *store.Store, *recordingBar, *mock.Clock) {
	t.Helper()
	s := store.New()
	bar := newRecordingBar(location)
	clock := mock.NewClock()
	e := urlsync.NewEngine(s, bar, urlsync.WithClock(clock))
	require.NoError(t, e.Mount())
	t.Cleanup(e.Unmount)
	return e, s, bar, clock
}

func TestEngine_Hydrate(t *testing.T) {
	t.Parallel()

	t.Run("decodes the location into the store", func(t *testing.T) {
		t.Parallel()

		e, s, bar, _ := setup(t, "q=monet&dept=Paintings&page=2")

		want := gallery.DefaultQuery()
		want.Criteria.Keyword = "monet"
		want.Criteria.Department = "Paintings"
		want.Page = 2
		assert.Equal(t, want, s.State().Query())
		assert.Equal(t, want, e.Cursor())
		assert.Empty(t, bar.Writes())
	})

	t.Run("empty location hydrates the default query", func(t *testing.T) {
		t.Parallel()

		e, s, bar, _ := setup(t, "")

		assert.Equal(t, gallery.DefaultQuery(), s.State().Query())
		assert.Equal(t, gallery.DefaultQuery(), e.Cursor())
		assert.Empty(t, bar.Writes())
	})

	t.Run("malformed location degrades to defaults", func(t *testing.T) {
		t.Parallel()

		_, s, _, _ := setup(t, "from=1900&page=x&highlight=perhaps&q=%zz")

		assert.Equal(t, gallery.DefaultQuery(), s.State().Query())
	})

	t.Run("mounting twice is rejected", func(t *testing.T) {
		t.Parallel()

		e, _, _, _ := setup(t, "")

		err := e.Mount()

		assert.Equal(t, gallery.EINVALID, gallery.ErrorCode(err))
	})
}

func TestEngine_Propagate(t *testing.T) {
	t.Parallel()

	t.Run("coalesces rapid keyword edits into one write", func(t *testing.T) {
		t.Parallel()

		_, s, bar, clock := setup(t, "")

		for _, kw := range []string{"m", "mo", "mon", "mone", "monet"} {
			s.Dispatch(gallery.SetKeyword{Keyword: kw})
			clock.Advance(100 * time.Millisecond)
		}
		assert.Empty(t, bar.Writes())

		clock.Advance(urlsync.DefaultDebounce)

		assert.Equal(t, []string{"q=monet"}, bar.Writes())
	})

	t.Run("each edit restarts the quiet period", func(t *testing.T) {
		t.Parallel()

		_, s, bar, clock := setup(t, "")

		s.Dispatch(gallery.SetKeyword{Keyword: "m"})
		clock.Advance(399 * time.Millisecond)
		s.Dispatch(gallery.SetKeyword{Keyword: "mo"})
		clock.Advance(399 * time.Millisecond)
		assert.Empty(t, bar.Writes())

		clock.Advance(time.Millisecond)

		assert.Equal(t, []string{"q=mo"}, bar.Writes())
	})

	t.Run("structural change supersedes a pending keyword write", func(t *testing.T) {
		t.Parallel()

		e, s, bar, clock := setup(t, "")

		s.Dispatch(gallery.SetKeyword{Keyword: "monet"})
		s.Dispatch(gallery.SetDepartment{Department: "Paintings"})

		assert.Equal(t, []string{"dept=Paintings&q=monet"}, bar.Writes())
		assert.False(t, e.Pending())

		clock.Advance(time.Second)

		assert.Equal(t, []string{"dept=Paintings&q=monet"}, bar.Writes())
	})

	t.Run("page change writes immediately", func(t *testing.T) {
		t.Parallel()

		_, s, bar, _ := setup(t, "dept=Paintings")

		s.Dispatch(gallery.SetPage{Page: 2})

		assert.Equal(t, []string{"dept=Paintings&page=2"}, bar.Writes())
	})

	t.Run("first keystroke on a later page writes immediately", func(t *testing.T) {
		t.Parallel()

		_, s, bar, clock := setup(t, "page=3")

		s.Dispatch(gallery.SetKeyword{Keyword: "m"})
		assert.Equal(t, []string{"q=m"}, bar.Writes())

		s.Dispatch(gallery.SetKeyword{Keyword: "mo"})
		assert.Len(t, bar.Writes(), 1)

		clock.Advance(urlsync.DefaultDebounce)
		assert.Equal(t, []string{"q=m", "q=mo"}, bar.Writes())
	})

	t.Run("editing back to the committed keyword cancels the pending write", func(t *testing.T) {
		t.Parallel()

		e, s, bar, clock := setup(t, "q=monet")

		s.Dispatch(gallery.SetKeyword{Keyword: "mone"})
		require.True(t, e.Pending())
		s.Dispatch(gallery.SetKeyword{Keyword: "monet"})

		assert.False(t, e.Pending())
		clock.Advance(time.Second)
		assert.Empty(t, bar.Writes())
	})

	t.Run("whitespace-only keyword edits do not write", func(t *testing.T) {
		t.Parallel()

		e, s, bar, clock := setup(t, "q=monet")

		s.Dispatch(gallery.SetKeyword{Keyword: "monet "})
		clock.Advance(time.Second)

		assert.False(t, e.Pending())
		assert.Empty(t, bar.Writes())
	})

	t.Run("write failure keeps the store authoritative", func(t *testing.T) {
		t.Parallel()

		s := store.New()
		bar := history.New("", history.WithReadOnly())
		e := urlsync.NewEngine(s, bar, urlsync.WithClock(mock.NewClock()))
		require.NoError(t, e.Mount())
		defer e.Unmount()

		s.Dispatch(gallery.SetDepartment{Department: "Paintings"})

		assert.Equal(t, "Paintings", s.State().Criteria.Department)
		assert.Equal(t, "Paintings", e.Cursor().Criteria.Department)
		assert.Empty(t, bar.Location())
	})

	t.Run("replace mode edits in place", func(t *testing.T) {
		t.Parallel()

		s := store.New()
		bar := history.New("")
		e := urlsync.NewEngine(s, bar, urlsync.WithClock(mock.NewClock()), urlsync.WithWriteMode(gallery.ReplaceHistory))
		require.NoError(t, e.Mount())
		defer e.Unmount()

		s.Dispatch(gallery.SetPage{Page: 1})
		s.Dispatch(gallery.SetPage{Page: 2})

		entries, _ := bar.Entries()
		assert.Equal(t, []string{"page=2"}, entries)
	})
}

func TestEngine_Absorb(t *testing.T) {
	t.Parallel()

	t.Run("ignores a notification for its own write", func(t *testing.T) {
		t.Parallel()

		_, s, bar, _ := setup(t, "")
		s.Dispatch(gallery.SetDepartment{Department: "Paintings"})
		require.Len(t, bar.Writes(), 1)

		changes := 0
		s.Subscribe(func(gallery.State) { changes++ })

		bar.navigate(bar.Writes()[0])

		assert.Equal(t, 0, changes)
		assert.Len(t, bar.Writes(), 1)
	})

	t.Run("applies external navigation in one update without writing", func(t *testing.T) {
		t.Parallel()

		e, s, bar, _ := setup(t, "")
		var got []gallery.Query
		s.Subscribe(func(st gallery.State) { got = append(got, st.Query()) })

		bar.navigate("q=degas&page=4")

		want := gallery.DefaultQuery()
		want.Criteria.Keyword = "degas"
		want.Page = 4
		require.Len(t, got, 1)
		assert.Equal(t, want, got[0])
		assert.Equal(t, want, e.Cursor())
		assert.Empty(t, bar.Writes())
	})

	t.Run("navigation cancels a pending keyword write", func(t *testing.T) {
		t.Parallel()

		e, s, bar, clock := setup(t, "")
		s.Dispatch(gallery.SetKeyword{Keyword: "mon"})
		require.True(t, e.Pending())

		bar.navigate("dept=Paintings")
		clock.Advance(time.Second)

		assert.False(t, e.Pending())
		assert.Empty(t, bar.Writes())
		assert.Equal(t, "Paintings", s.State().Criteria.Department)
		assert.Empty(t, s.State().Criteria.Keyword)
	})
	t.Run("tolerates a bar that reports writes back synchronously", func(t *testing.T) {
		t.Parallel()

		s := store.New()
		var (
			location string
			writes   []string
			notify   func(string)
		)
		bar := &mock.AddressBar{
			LocationFn: func() string { return location },
			WriteFn: func(raw string, mode gallery.WriteMode) error {
				location = raw
				writes = append(writes, raw)
				notify(raw)
				return nil
			},
			SubscribeFn: func(fn func(string)) func() {
				notify = fn
				return func() {}
			},
		}
		e := urlsync.NewEngine(s, bar, urlsync.WithClock(mock.NewClock()))
		require.NoError(t, e.Mount())
		defer e.Unmount()

		changes := 0
		s.Subscribe(func(gallery.State) { changes++ })

		done := make(chan struct{})
		go func() {
			defer close(done)
			s.Dispatch(gallery.SetDepartment{Department: "Paintings"})
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("dispatch did not return")
		}
		assert.Equal(t, []string{"dept=Paintings"}, writes)
		assert.Equal(t, 1, changes)
		assert.Equal(t, "Paintings", e.Cursor().Criteria.Department)
	})
}

func TestEngine_BackForward(t *testing.T) {
	t.Parallel()

	s := store.New()
	bar := history.New("")
	e := urlsync.NewEngine(s, bar, urlsync.WithClock(mock.NewClock()))
	require.NoError(t, e.Mount())
	defer e.Unmount()

	s.Dispatch(gallery.SetDepartment{Department: "Egyptian Art"})
	s1 := s.State()
	s.Dispatch(gallery.SetCulture{Culture: "Roman"})
	s2 := s.State()
	s.Dispatch(gallery.SetPage{Page: 3})
	s3 := s.State()
	require.NotEqual(t, s1, s2)
	require.NotEqual(t, s2, s3)

	entries, _ := bar.Entries()
	require.Len(t, entries, 4)

	require.True(t, bar.Back())
	require.True(t, bar.Back())
	assert.Equal(t, s1, s.State())

	require.True(t, bar.Forward())
	assert.Equal(t, s2, s.State())

	entries, index := bar.Entries()
	assert.Len(t, entries, 4, "navigation must not add entries")
	assert.Equal(t, 2, index)
}

func TestEngine_Unmount(t *testing.T) {
	t.Parallel()

	t.Run("cancels a pending keyword write", func(t *testing.T) {
		t.Parallel()

		s := store.New()
		bar := newRecordingBar("")
		clock := mock.NewClock()
		e := urlsync.NewEngine(s, bar, urlsync.WithClock(clock))
		require.NoError(t, e.Mount())

		s.Dispatch(gallery.SetKeyword{Keyword: "monet"})
		e.Unmount()
		clock.Advance(time.Second)

		assert.Empty(t, bar.Writes())
		assert.False(t, e.Pending())
		assert.Equal(t, 0, clock.Pending())
	})

	t.Run("stops following the store and the location", func(t *testing.T) {
		t.Parallel()

		s := store.New()
		bar := history.New("")
		e := urlsync.NewEngine(s, bar, urlsync.WithClock(mock.NewClock()))
		require.NoError(t, e.Mount())
		e.Unmount()

		s.Dispatch(gallery.SetDepartment{Department: "Paintings"})
		bar.Navigate("q=degas")

		assert.Equal(t, "q=degas", bar.Location())
		assert.Empty(t, s.State().Criteria.Keyword)
	})

	t.Run("remount hydrates from the location again", func(t *testing.T) {
		t.Parallel()

		s := store.New()
		bar := history.New("q=monet")
		e := urlsync.NewEngine(s, bar, urlsync.WithClock(mock.NewClock()))
		require.NoError(t, e.Mount())
		e.Unmount()

		s.Dispatch(gallery.SetKeyword{Keyword: "unsaved"})
		require.NoError(t, e.Mount())
		defer e.Unmount()

		assert.Equal(t, "monet", s.State().Criteria.Keyword)
		assert.Equal(t, "monet", e.Cursor().Criteria.Keyword)
	})
}

func TestEngine_SystemClock(t *testing.T) {
	t.Parallel()

	s := store.New()
	bar := history.New("")
	e := urlsync.NewEngine(s, bar, urlsync.WithDebounce(20*time.Millisecond))
	require.NoError(t, e.Mount())
	defer e.Unmount()

	s.Dispatch(gallery.SetKeyword{Keyword: "mo"})
	s.Dispatch(gallery.SetKeyword{Keyword: "monet"})

	require.Eventually(t, func() bool {
		return bar.Location() == "q=monet"
	}, time.Second, 5*time.Millisecond)

	entries, _ := bar.Entries()
	assert.Equal(t, []string{"", "q=monet"}, entries)
}
