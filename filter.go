package gallery

import "strings"

// DateRange bounds the creation dates of the objects a search returns.
// Both bounds are present when Valid is true and both are absent otherwise;
// a range with a single bound cannot be represented.
type DateRange struct {
	Begin int  `json:"begin"`
	End   int  `json:"end"`
	Valid bool `json:"valid"`
}

// NewDateRange returns a valid range spanning begin through end.
func NewDateRange(begin, end int) DateRange {
	return DateRange{Begin: begin, End: end, Valid: true}
}

// normalize zeroes the bounds of an invalid range so that equality is exact.
func (r DateRange) normalize() DateRange {
	if !r.Valid {
		return DateRange{}
	}
	return r
}

// FilterCriteria is the canonical search filter. It is a value type: a change
// replaces the whole value, and two criteria are equal when == says so.
type FilterCriteria struct {
	// Free-text query fragment. Empty means no keyword filter.
	Keyword string `json:"keyword"`

	// Exact-match department. Empty means all departments.
	Department string `json:"department"`

	// Partial-match culture. Empty means unset.
	Culture string `json:"culture"`

	Dates DateRange `json:"dates"`

	// Restricts results to highlighted works.
	HighlightOnly bool `json:"highlightOnly"`
}

// DefaultCriteria returns the criteria in effect at first load: no filters,
// highlighted works only.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{HighlightOnly: true}
}

// Normalize returns a copy with trimmed strings and a canonical date range.
func (c FilterCriteria) Normalize() FilterCriteria {
	c.Keyword = strings.TrimSpace(c.Keyword)
	c.Department = strings.TrimSpace(c.Department)
	c.Culture = strings.TrimSpace(c.Culture)
	c.Dates = c.Dates.normalize()
	return c
}

// IsDefault reports whether c equals DefaultCriteria once normalized.
func (c FilterCriteria) IsDefault() bool {
	return c.Normalize() == DefaultCriteria()
}

// HasActiveFilters reports whether any filter differs from its default.
func (c FilterCriteria) HasActiveFilters() bool {
	return !c.IsDefault()
}

// Query pairs filter criteria with a zero-based result page index.
type Query struct {
	Criteria FilterCriteria `json:"criteria"`
	Page     int            `json:"page"`
}

// DefaultQuery returns the default criteria on the first page.
func DefaultQuery() Query {
	return Query{Criteria: DefaultCriteria()}
}

// Normalize returns a copy with normalized criteria and a non-negative page.
func (q Query) Normalize() Query {
	q.Criteria = q.Criteria.Normalize()
	if q.Page < 0 {
		q.Page = 0
	}
	return q
}

// KeywordOnlyChange reports whether next differs from prev in the keyword
// and nothing else. Both queries are compared as given.
func KeywordOnlyChange(prev, next Query) bool {
	if prev.Page != next.Page || prev.Criteria.Keyword == next.Criteria.Keyword {
		return false
	}
	next.Criteria.Keyword = prev.Criteria.Keyword
	return prev.Criteria == next.Criteria
}
