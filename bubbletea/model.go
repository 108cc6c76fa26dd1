// Package bubbletea implements the terminal catalog explorer. The explorer
// is a presentation host: it dispatches actions to the store and renders
// state, while a sync engine keeps the address bar in step.
package bubbletea

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/gallery"
	"github.com/fwojciec/gallery/history"
	gurl "github.com/fwojciec/gallery/url"
)

// Explorer defaults.
const (
	DefaultFetchTimeout    = 10 * time.Second
	DefaultTickInterval    = 100 * time.Millisecond
	DefaultCultureDebounce = 500 * time.Millisecond
)

// field identifies the focused input.
type field int

const (
	fieldKeyword field = iota
	fieldCulture
	fieldDates
	fieldLocation
	fieldCount
)

// Config holds the explorer's collaborators.
type Config struct {
	// Store holds the search state. Only the explorer dispatches to it.
	Store gallery.Store

	// History is the address bar the sync engine writes to. The explorer
	// reads it for display and drives back, forward and typed navigation.
	History *history.History

	// Search answers result and department queries.
	Search gallery.SearchService

	// LinkBase is the URL that shareable links are built on.
	LinkBase string

	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy func(text string) error

	// TickInterval is how often the location line is refreshed.
	TickInterval time.Duration

	// CultureDebounce is the quiet period after the last culture keystroke
	// before the culture filter is applied.
	CultureDebounce time.Duration
}

// Model is the bubbletea model of the explorer.
type Model struct {
	store    gallery.Store
	history  *history.History
	search   gallery.SearchService
	linkBase string
	copy     func(string) error
	tick     time.Duration
	keys     KeyMap

	cultureDebounce time.Duration
	cultureGen      int // bumped whenever a pending culture edit is superseded

	keyword  textinput.Model
	culture  textinput.Model
	dates    textinput.Model
	location textinput.Model
	focus    field

	departments []string
	requested   gallery.Query
	inflight    bool
	results     *gallery.SearchResult
	err         error
	cursor      int
	status      string
	address     string
	pager       paginator.Model
	width       int
}

// New creates the explorer model. Inputs start from the store's state, so
// the sync engine should be mounted first.
func New(cfg Config) *Model {
	m := &Model{
		store:    cfg.Store,
		history:  cfg.History,
		search:   cfg.Search,
		linkBase: cfg.LinkBase,
		copy:     cfg.Copy,
		tick:     cfg.TickInterval,

		cultureDebounce: cfg.CultureDebounce,
		keys:            DefaultKeys,
		keyword:         newInput("title, artist, medium..."),
		culture:         newInput("e.g. French"),
		dates:           newInput("from to, e.g. 1850 1900"),
		location:        newInput("q=monet&dept=..."),
		pager:           paginator.New(),
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}
	if m.tick <= 0 {
		m.tick = DefaultTickInterval
	}
	if m.cultureDebounce <= 0 {
		m.cultureDebounce = DefaultCultureDebounce
	}
	m.pager.Type = paginator.Arabic
	m.syncInputs()
	m.address = m.history.Location()
	m.keyword.Focus()
	return m
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 120
	return in
}

type resultsMsg struct {
	query  gallery.Query
	result *gallery.SearchResult
	err    error
}

type departmentsMsg struct {
	departments []string
	err         error
}

type tickMsg time.Time

// cultureMsg applies a culture edit once its quiet period has passed.
type cultureMsg struct {
	gen     int
	culture string
}

// Init starts loading departments and the first page of results.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadDepartments(), m.refresh(), m.tickCmd())
}

// Update handles messages for the explorer.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.address = m.history.Location()
		return m, m.tickCmd()

	case departmentsMsg:
		if msg.err != nil {
			m.status = "departments: " + gallery.ErrorMessage(msg.err)
			return m, nil
		}
		m.departments = msg.departments
		return m, nil

	case cultureMsg:
		if msg.gen != m.cultureGen {
			return m, nil
		}
		m.store.Dispatch(gallery.SetCulture{Culture: msg.culture})
		return m, m.refresh()

	case resultsMsg:
		if msg.query != m.requested {
			return m, nil
		}
		m.inflight = false
		m.results, m.err = msg.result, msg.err
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.refresh())
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.PrevField):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, m.keys.Submit):
		m.submit()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		if m.results != nil && m.cursor < len(m.results.Results)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.results != nil && m.store.State().Page+1 < m.results.TotalPages {
			m.store.Dispatch(gallery.SetPage{Page: m.store.State().Page + 1})
		}
	case key.Matches(msg, m.keys.PrevPage):
		m.store.Dispatch(gallery.SetPage{Page: m.store.State().Page - 1})
	case key.Matches(msg, m.keys.Back):
		if m.history.Back() {
			m.afterNavigation()
		}
	case key.Matches(msg, m.keys.Forward):
		if m.history.Forward() {
			m.afterNavigation()
		}
	case key.Matches(msg, m.keys.Department):
		m.store.Dispatch(gallery.SetDepartment{Department: m.nextDepartment()})
	case key.Matches(msg, m.keys.Highlight):
		m.store.Dispatch(gallery.ToggleHighlight{})
	case key.Matches(msg, m.keys.View):
		m.store.Dispatch(gallery.SetViewType{ViewType: next(gallery.ViewTypes, m.store.State().ViewType)})
	case key.Matches(msg, m.keys.Sort):
		m.store.Dispatch(gallery.SetSortField{SortField: next(gallery.SortFields, m.store.State().SortField)})
	case key.Matches(msg, m.keys.Reset):
		m.store.Dispatch(gallery.ResetFilters{})
		m.syncInputs()
	case key.Matches(msg, m.keys.Copy):
		m.copyLink()
	default:
		return m.updateInput(msg)
	}
	return nil
}

// updateInput forwards msg to the focused input. The keyword is dispatched
// on every keystroke; the sync engine debounces its history entries.
// Culture is dispatched once typing pauses, so that each culture filter is
// one history entry.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldKeyword:
		m.keyword, cmd = m.keyword.Update(msg)
		m.store.Dispatch(gallery.SetKeyword{Keyword: m.keyword.Value()})
	case fieldCulture:
		before := m.culture.Value()
		m.culture, cmd = m.culture.Update(msg)
		if m.culture.Value() != before {
			cmd = tea.Batch(cmd, m.scheduleCulture())
		}
	case fieldDates:
		m.dates, cmd = m.dates.Update(msg)
	case fieldLocation:
		m.location, cmd = m.location.Update(msg)
	}
	return cmd
}

// submit applies the fields that are only committed on enter.
func (m *Model) submit() {
	switch m.focus {
	case fieldCulture:
		m.cultureGen++
		m.store.Dispatch(gallery.SetCulture{Culture: m.culture.Value()})
	case fieldDates:
		r, ok := parseDates(m.dates.Value())
		if !ok {
			m.status = "dates must be two years, e.g. 1850 1900"
			return
		}
		m.status = ""
		m.store.Dispatch(gallery.SetDateRange{Dates: r})
	case fieldLocation:
		m.history.Navigate(m.location.Value())
		m.afterNavigation()
	}
}

// afterNavigation refreshes the inputs once the sync engine has replayed a
// location into the store.
func (m *Model) afterNavigation() {
	m.address = m.history.Location()
	m.syncInputs()
}

func (m *Model) copyLink() {
	link := gurl.Link(m.linkBase, m.store.State().Query().Normalize())
	if err := m.copy(link); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + link
}

// refresh requests results when the store's query differs from the last
// one requested, or when the last request for it failed. Responses for
// older queries are dropped on arrival.
func (m *Model) refresh() tea.Cmd {
	q := m.store.State().Query().Normalize()
	if q == m.requested && (m.inflight || m.err == nil && m.results != nil) {
		return nil
	}
	m.requested = q
	m.inflight = true

	svc := m.search
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultFetchTimeout)
		defer cancel()
		result, err := svc.Search(ctx, q)
		return resultsMsg{query: q, result: result, err: err}
	}
}

func (m *Model) loadDepartments() tea.Cmd {
	svc := m.search
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultFetchTimeout)
		defer cancel()
		departments, err := svc.FindDepartments(ctx)
		return departmentsMsg{departments: departments, err: err}
	}
}

// scheduleCulture supersedes any pending culture edit with the input's
// current value.
func (m *Model) scheduleCulture() tea.Cmd {
	m.cultureGen++
	msg := cultureMsg{gen: m.cultureGen, culture: m.culture.Value()}
	return tea.Tick(m.cultureDebounce, func(time.Time) tea.Msg { return msg })
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) setFocus(f field) {
	inputs := m.inputs()
	for _, in := range inputs {
		in.Blur()
	}
	m.focus = f
	if f == fieldLocation {
		m.location.SetValue(m.history.Location())
	}
	inputs[f].Focus()
}

func (m *Model) inputs() []*textinput.Model {
	return []*textinput.Model{&m.keyword, &m.culture, &m.dates, &m.location}
}

// syncInputs copies the store's criteria into the text inputs, dropping
// any pending culture edit.
func (m *Model) syncInputs() {
	m.cultureGen++
	c := m.store.State().Criteria
	m.keyword.SetValue(c.Keyword)
	m.culture.SetValue(c.Culture)
	m.dates.SetValue(formatDates(c.Dates))
}

// nextDepartment cycles through the known departments, then "all".
func (m *Model) nextDepartment() string {
	current := m.store.State().Criteria.Department
	if current == "" {
		if len(m.departments) == 0 {
			return ""
		}
		return m.departments[0]
	}
	i := slices.Index(m.departments, current)
	if i < 0 || i+1 >= len(m.departments) {
		return ""
	}
	return m.departments[i+1]
}

// next returns the value after cur in values, wrapping around.
func next[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

// parseDates reads "FROM TO". An empty value clears the range.
func parseDates(s string) (gallery.DateRange, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return gallery.DateRange{}, true
	}
	if len(fields) != 2 {
		return gallery.DateRange{}, false
	}
	begin, err := strconv.Atoi(fields[0])
	if err != nil {
		return gallery.DateRange{}, false
	}
	end, err := strconv.Atoi(fields[1])
	if err != nil {
		return gallery.DateRange{}, false
	}
	return gallery.NewDateRange(begin, end), true
}

func formatDates(r gallery.DateRange) string {
	if !r.Valid {
		return ""
	}
	return fmt.Sprintf("%d %d", r.Begin, r.End)
}
