package mock

import "github.com/fwojciec/gallery"

var _ gallery.AddressBar = (*AddressBar)(nil)

// AddressBar is a mock implementation of gallery.AddressBar.
type AddressBar struct {
	LocationFn  func() string
	WriteFn     func(rawQuery string, mode gallery.WriteMode) error
	SubscribeFn func(fn func(rawQuery string)) func()
}

func (b *AddressBar) Location() string {
	return b.LocationFn()
}

func (b *AddressBar) Write(rawQuery string, mode gallery.WriteMode) error {
	return b.WriteFn(rawQuery, mode)
}

func (b *AddressBar) Subscribe(fn func(rawQuery string)) func() {
	return b.SubscribeFn(fn)
}

var _ gallery.Store = (*Store)(nil)

// Store is a mock implementation of gallery.Store.
type Store struct {
	StateFn     func() gallery.State
	DispatchFn  func(action gallery.Action)
	SubscribeFn func(fn func(gallery.State)) func()
}

func (s *Store) State() gallery.State {
	return s.StateFn()
}

func (s *Store) Dispatch(action gallery.Action) {
	s.DispatchFn(action)
}

func (s *Store) Subscribe(fn func(gallery.State)) func() {
	return s.SubscribeFn(fn)
}
