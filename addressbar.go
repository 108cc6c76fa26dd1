package gallery

// WriteMode controls how an address bar write interacts with history.
type WriteMode int

const (
	// PushHistory creates a new back/forward stop.
	PushHistory WriteMode = iota

	// ReplaceHistory edits the current stop in place.
	ReplaceHistory
)

func (m WriteMode) String() string {
	if m == ReplaceHistory {
		return "replace"
	}
	return "push"
}

// AddressBar is the shareable location of the current search, held as a
// raw URL query string such as "q=monet&dept=Paintings".
//
// It is a single global resource. The sync engine is its only writer;
// presentation components never touch it directly.
type AddressBar interface {
	// Location returns the current raw query.
	Location() string

	// Write sets the raw query. Returns EUNAVAILABLE if the hosting
	// environment rejects the change.
	Write(rawQuery string, mode WriteMode) error

	// Subscribe registers fn to be called when the location changes for a
	// reason other than Write: back/forward navigation or an edited URL.
	// A location reported for a write, even from inside Write, is treated
	// as navigation to the location just written.
	Subscribe(fn func(rawQuery string)) (unsubscribe func())
}
