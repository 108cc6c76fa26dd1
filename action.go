package gallery

// filter applies a user-initiated change to the criteria. A change that
// leaves the criteria untouched is a no-op; any real change resets the page.
func filter(s State, fn func(c *FilterCriteria)) State {
	c := s.Criteria
	fn(&c)
	if c == s.Criteria {
		return s
	}
	s.Criteria = c
	s.Page = 0
	return s
}

// SetKeyword replaces the keyword.
type SetKeyword struct{ Keyword string }

func (a SetKeyword) Reduce(s State) State {
	return filter(s, func(c *FilterCriteria) { c.Keyword = a.Keyword })
}

// SetDepartment selects a department. An empty department selects all.
type SetDepartment struct{ Department string }

func (a SetDepartment) Reduce(s State) State {
	return filter(s, func(c *FilterCriteria) { c.Department = a.Department })
}

// SetCulture replaces the culture filter.
type SetCulture struct{ Culture string }

func (a SetCulture) Reduce(s State) State {
	return filter(s, func(c *FilterCriteria) { c.Culture = a.Culture })
}

// SetDateRange replaces the date range. Pass the zero DateRange to clear it.
type SetDateRange struct{ Dates DateRange }

func (a SetDateRange) Reduce(s State) State {
	return filter(s, func(c *FilterCriteria) { c.Dates = a.Dates.normalize() })
}

// ToggleHighlight flips the highlight-only flag.
type ToggleHighlight struct{}

func (ToggleHighlight) Reduce(s State) State {
	return filter(s, func(c *FilterCriteria) { c.HighlightOnly = !c.HighlightOnly })
}

// ResetFilters restores the default criteria.
type ResetFilters struct{}

func (ResetFilters) Reduce(s State) State {
	return filter(s, func(c *FilterCriteria) { *c = DefaultCriteria() })
}

// SetPage moves to a result page. Negative pages clamp to 0.
type SetPage struct{ Page int }

func (a SetPage) Reduce(s State) State {
	s.Page = max(0, a.Page)
	return s
}

// ResetPage returns to the first page.
type ResetPage struct{}

func (ResetPage) Reduce(s State) State {
	s.Page = 0
	return s
}

// SyncFromLocation replaces criteria and page with a value read from the
// address bar. Unlike the filter actions it never resets the page.
type SyncFromLocation struct{ Query Query }

func (a SyncFromLocation) Reduce(s State) State {
	q := a.Query.Normalize()
	s.Criteria = q.Criteria
	s.Page = q.Page
	return s
}

// SetViewType changes the result layout.
type SetViewType struct{ ViewType ViewType }

func (a SetViewType) Reduce(s State) State {
	s.ViewType = a.ViewType
	return s
}

// SetSortField changes the ordering of the current page.
type SetSortField struct{ SortField SortField }

func (a SetSortField) Reduce(s State) State {
	s.SortField = a.SortField
	return s
}
