// Package url maps search queries to and from URL query strings.
//
// The mapping is pure: it performs no I/O, holds no state, and never fails.
// Malformed input degrades field by field to the default value.
package url

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/gallery"
)

// Query string keys. These are part of the public URL format and must stay
// stable: "?q=monet&dept=Paintings" is a supported way to build a search.
const (
	KeyKeyword    = "q"
	KeyDepartment = "dept"
	KeyCulture    = "culture"
	KeyFrom       = "from"
	KeyTo         = "to"
	KeyHighlight  = "highlight"
	KeyPage       = "page"
)

// Encode returns the parameters for q. Fields equal to their default are
// omitted, so the default query encodes to no parameters at all.
func Encode(q gallery.Query) url.Values {
	q = q.Normalize()
	c := q.Criteria

	v := url.Values{}
	if c.Keyword != "" {
		v.Set(KeyKeyword, c.Keyword)
	}
	if c.Department != "" {
		v.Set(KeyDepartment, c.Department)
	}
	if c.Culture != "" {
		v.Set(KeyCulture, c.Culture)
	}
	if c.Dates.Valid {
		v.Set(KeyFrom, strconv.Itoa(c.Dates.Begin))
		v.Set(KeyTo, strconv.Itoa(c.Dates.End))
	}
	if !c.HighlightOnly {
		v.Set(KeyHighlight, "false")
	}
	if q.Page > 0 {
		v.Set(KeyPage, strconv.Itoa(q.Page))
	}
	return v
}

// Decode returns the normalized query described by v. Missing or invalid
// fields take their default value; a date bound without its partner is
// dropped together with the partner.
func Decode(v url.Values) gallery.Query {
	c := gallery.DefaultCriteria()
	c.Keyword = v.Get(KeyKeyword)
	c.Department = v.Get(KeyDepartment)
	c.Culture = v.Get(KeyCulture)

	from, okFrom := parseInt(v.Get(KeyFrom))
	to, okTo := parseInt(v.Get(KeyTo))
	if okFrom && okTo {
		c.Dates = gallery.NewDateRange(from, to)
	}

	if b, err := strconv.ParseBool(strings.TrimSpace(v.Get(KeyHighlight))); err == nil {
		c.HighlightOnly = b
	}

	var page int
	if n, ok := parseInt(v.Get(KeyPage)); ok && n > 0 {
		page = n
	}

	return gallery.Query{Criteria: c, Page: page}.Normalize()
}

// Parse decodes a raw query string. A leading "?" is ignored, and pairs that
// fail to unescape are skipped.
func Parse(raw string) gallery.Query {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	v, _ := url.ParseQuery(raw)
	return Decode(v)
}

// Format returns the raw query string for q with keys in sorted order.
func Format(q gallery.Query) string {
	return Encode(q).Encode()
}

// Link returns base with the query for q attached, replacing any query
// base already carries. Base is returned unchanged if it cannot be parsed.
func Link(base string, q gallery.Query) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.RawQuery = Format(q)
	return u.String()
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
