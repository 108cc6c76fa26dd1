package gallery

// ViewType selects how results are laid out.
type ViewType string

// ViewType constants.
const (
	ViewGrid    ViewType = "grid"
	ViewList    ViewType = "list"
	ViewCompact ViewType = "compact"
)

// ViewTypes lists the view types in display order.
var ViewTypes = []ViewType{ViewGrid, ViewList, ViewCompact}

// SortField orders the results of the current page.
type SortField string

// SortField constants.
const (
	SortRelevance SortField = "relevance"
	SortDateAsc   SortField = "date-asc"
	SortDateDesc  SortField = "date-desc"
	SortTitle     SortField = "title"
	SortArtist    SortField = "artist"
)

// SortFields lists the sort fields in display order.
var SortFields = []SortField{SortRelevance, SortDateAsc, SortDateDesc, SortTitle, SortArtist}

// State is the application-wide state held by a Store.
// Criteria and Page form the search; ViewType and SortField are
// presentation preferences that never leave the process.
type State struct {
	Criteria  FilterCriteria `json:"criteria"`
	Page      int            `json:"page"`
	ViewType  ViewType       `json:"viewType"`
	SortField SortField      `json:"sortField"`
}

// InitialState returns the state before any URL has been read.
func InitialState() State {
	return State{
		Criteria:  DefaultCriteria(),
		ViewType:  ViewGrid,
		SortField: SortRelevance,
	}
}

// Query returns the search portion of the state.
func (s State) Query() Query {
	return Query{Criteria: s.Criteria, Page: s.Page}
}

// Action is a state transition dispatched to a Store.
type Action interface {
	// Reduce returns the state that results from applying the action to s.
	// It must not have side effects.
	Reduce(s State) State
}

// Store is the central state container. Components read state
// synchronously, subscribe to changes, and mutate only through Dispatch.
type Store interface {
	// State returns the current state.
	State() State

	// Dispatch applies the action and notifies subscribers if the state
	// changed. All fields changed by one action land in one notification.
	// Dispatch is meant to be called from a single event loop goroutine.
	Dispatch(action Action)

	// Subscribe registers fn to be called with the new state after each
	// change. The returned function removes the subscription.
	Subscribe(fn func(State)) (unsubscribe func())
}
