package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/gallery"
)

// Run executes the object command.
func (c *ObjectCmd) Run(deps *Dependencies) error {
	o, err := deps.Search.FindObjectByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gallery.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	}

	fields := []struct {
		label string
		value *string
	}{
		{"Title", o.Title},
		{"Artist", o.Artist},
		{"Nationality", o.ArtistNationality},
		{"Date", o.Date},
		{"Medium", o.Medium},
		{"Culture", o.Culture},
		{"Department", o.Department},
		{"Classification", o.Classification},
		{"Credit", o.CreditLine},
		{"Image", o.PrimaryImage},
		{"URL", o.ObjectURL},
		{"Description", o.Description},
	}

	fmt.Fprintf(deps.Stdout, "%-15s %d\n", "ID", o.ID)
	for _, f := range fields {
		if v := gallery.StringValue(f.value); v != "" {
			fmt.Fprintf(deps.Stdout, "%-15s %s\n", f.label, v)
		}
	}
	if o.IsHighlight {
		fmt.Fprintf(deps.Stdout, "%-15s %s\n", "Highlight", "yes")
	}
	return nil
}
