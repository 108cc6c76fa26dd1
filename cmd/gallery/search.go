package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/gallery"
	gurl "github.com/fwojciec/gallery/url"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	q := gurl.Parse(c.Location)

	result, err := deps.Search.Search(deps.Ctx, q)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gallery.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if len(result.Results) == 0 {
		fmt.Fprintln(deps.Stdout, "No objects match these filters.")
		return nil
	}

	for _, o := range result.Results {
		fmt.Fprintln(deps.Stdout, summaryLine(o))
	}
	fmt.Fprintf(deps.Stdout, "\nPage %d of %d (%d objects)\n", result.Page+1, max(1, result.TotalPages), result.Total)
	if result.Page+1 < result.TotalPages {
		next := q.Normalize()
		next.Page++
		fmt.Fprintf(deps.Stdout, "Next: gallery search '%s'\n", gurl.Format(next))
	}
	return nil
}

func summaryLine(o *gallery.ArtObjectSummary) string {
	parts := []string{fmt.Sprintf("%d", o.ID)}
	title := gallery.StringValue(o.Title)
	if o.IsHighlight {
		title = "* " + title
	}
	parts = append(parts, title)
	for _, s := range []*string{o.Artist, o.Date, o.Department} {
		if v := gallery.StringValue(s); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "  ")
}
