package bubbletea

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/fwojciec/gallery"
)

// sortResults returns the results of the current page ordered by field.
// Relevance keeps the order the search service returned.
func sortResults(results []*gallery.ArtObjectSummary, field gallery.SortField) []*gallery.ArtObjectSummary {
	out := slices.Clone(results)

	var compare func(a, b *gallery.ArtObjectSummary) int
	switch field {
	case gallery.SortDateAsc:
		compare = func(a, b *gallery.ArtObjectSummary) int {
			return cmp.Compare(beginDate(a, math.MaxInt), beginDate(b, math.MaxInt))
		}
	case gallery.SortDateDesc:
		compare = func(a, b *gallery.ArtObjectSummary) int {
			return cmp.Compare(beginDate(b, math.MinInt), beginDate(a, math.MinInt))
		}
	case gallery.SortTitle:
		compare = func(a, b *gallery.ArtObjectSummary) int {
			return cmp.Compare(fold(a.Title), fold(b.Title))
		}
	case gallery.SortArtist:
		compare = func(a, b *gallery.ArtObjectSummary) int {
			return cmp.Compare(fold(a.Artist), fold(b.Artist))
		}
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

// beginDate returns the object's begin year, or missing when it has none.
func beginDate(o *gallery.ArtObjectSummary, missing int) int {
	if o.ObjectBeginDate == nil {
		return missing
	}
	return *o.ObjectBeginDate
}

func fold(s *string) string {
	return strings.ToLower(gallery.StringValue(s))
}
