package history_test

import (
	"testing"

	"github.com/fwojciec/gallery"
	"github.com/fwojciec/gallery/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Write(t *testing.T) {
	t.Parallel()

	t.Run("push adds an entry", func(t *testing.T) {
		t.Parallel()

		h := history.New("?q=monet")

		require.NoError(t, h.Write("q=manet", gallery.PushHistory))

		entries, index := h.Entries()
		assert.Equal(t, []string{"q=monet", "q=manet"}, entries)
		assert.Equal(t, 1, index)
		assert.Equal(t, "q=manet", h.Location())
	})

	t.Run("replace edits the current entry", func(t *testing.T) {
		t.Parallel()

		h := history.New("")

		require.NoError(t, h.Write("page=2", gallery.ReplaceHistory))

		entries, index := h.Entries()
		assert.Equal(t, []string{"page=2"}, entries)
		assert.Equal(t, 0, index)
	})

	t.Run("push truncates forward entries", func(t *testing.T) {
		t.Parallel()

		h := history.New("a=1")
		require.NoError(t, h.Write("a=2", gallery.PushHistory))
		require.NoError(t, h.Write("a=3", gallery.PushHistory))
		require.True(t, h.Back())
		require.True(t, h.Back())

		require.NoError(t, h.Write("b=1", gallery.PushHistory))

		entries, index := h.Entries()
		assert.Equal(t, []string{"a=1", "b=1"}, entries)
		assert.Equal(t, 1, index)
		assert.False(t, h.CanGoForward())
	})

	t.Run("does not notify subscribers", func(t *testing.T) {
		t.Parallel()

		h := history.New("")
		calls := 0
		h.Subscribe(func(string) { calls++ })

		require.NoError(t, h.Write("q=x", gallery.PushHistory))
		require.NoError(t, h.Write("q=y", gallery.ReplaceHistory))

		assert.Equal(t, 0, calls)
	})

	t.Run("read-only history rejects writes", func(t *testing.T) {
		t.Parallel()

		h := history.New("q=x", history.WithReadOnly())

		err := h.Write("q=y", gallery.PushHistory)

		assert.Equal(t, gallery.EUNAVAILABLE, gallery.ErrorCode(err))
		assert.Equal(t, "q=x", h.Location())
	})

	t.Run("drops the oldest entries past the cap", func(t *testing.T) {
		t.Parallel()

		h := history.New("a=0", history.WithMaxEntries(3))
		for _, loc := range []string{"a=1", "a=2", "a=3"} {
			require.NoError(t, h.Write(loc, gallery.PushHistory))
		}

		entries, index := h.Entries()
		assert.Equal(t, []string{"a=1", "a=2", "a=3"}, entries)
		assert.Equal(t, 2, index)
	})
}

func TestHistory_Navigation(t *testing.T) {
	t.Parallel()

	t.Run("back and forward notify with the new location", func(t *testing.T) {
		t.Parallel()

		h := history.New("a=1")
		require.NoError(t, h.Write("a=2", gallery.PushHistory))
		var got []string
		h.Subscribe(func(loc string) { got = append(got, loc) })

		require.True(t, h.Back())
		require.True(t, h.Forward())

		assert.Equal(t, []string{"a=1", "a=2"}, got)
	})

	t.Run("out of range moves are refused", func(t *testing.T) {
		t.Parallel()

		h := history.New("a=1")
		calls := 0
		h.Subscribe(func(string) { calls++ })

		assert.False(t, h.Back())
		assert.False(t, h.Forward())
		assert.False(t, h.Go(0))
		assert.Equal(t, 0, calls)
	})

	t.Run("navigate pushes and notifies", func(t *testing.T) {
		t.Parallel()

		h := history.New("")
		var got []string
		h.Subscribe(func(loc string) { got = append(got, loc) })

		h.Navigate("?q=monet&dept=Paintings")

		assert.Equal(t, []string{"q=monet&dept=Paintings"}, got)
		assert.True(t, h.CanGoBack())
		assert.Equal(t, "q=monet&dept=Paintings", h.Location())
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		t.Parallel()

		h := history.New("a=1")
		require.NoError(t, h.Write("a=2", gallery.PushHistory))
		calls := 0
		unsubscribe := h.Subscribe(func(string) { calls++ })

		unsubscribe()
		h.Back()

		assert.Equal(t, 0, calls)
	})
}
