// Package csv reads collection objects from the Met open access CSV export.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/gallery"
)

// Column names of the export. Columns other than ColumnObjectID are
// optional; a missing column leaves its field nil.
const (
	ColumnObjectID          = "Object ID"
	ColumnObjectNumber      = "Object Number"
	ColumnIsHighlight       = "Is Highlight"
	ColumnTitle             = "Title"
	ColumnArtist            = "Artist Display Name"
	ColumnArtistBio         = "Artist Display Bio"
	ColumnArtistNationality = "Artist Nationality"
	ColumnDate              = "Object Date"
	ColumnBeginDate         = "Object Begin Date"
	ColumnEndDate           = "Object End Date"
	ColumnMedium            = "Medium"
	ColumnDepartment        = "Department"
	ColumnCulture           = "Culture"
	ColumnClassification    = "Classification"
	ColumnCreditLine        = "Credit Line"
	ColumnLinkResource      = "Link Resource"
	ColumnPrimaryImage      = "Primary Image"
	ColumnPrimaryImageSmall = "Primary Image Small"
	ColumnAdditionalImages  = "Additional Images"
	ColumnDescription       = "Description"
)

// Reader decodes one object per CSV record.
type Reader struct {
	r       *csv.Reader
	columns map[string]int
	line    int
}

// NewReader reads the header row of r and returns a Reader positioned at
// the first record. Returns EINVALID if the header has no Object ID column.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, gallery.Errorf(gallery.EINVALID, "csv file is empty")
	} else if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[name] = i
	}
	if _, ok := columns[ColumnObjectID]; !ok {
		return nil, gallery.Errorf(gallery.EINVALID, "csv header has no %q column", ColumnObjectID)
	}

	return &Reader{r: cr, columns: columns, line: 1}, nil
}

// Read returns the next object, or io.EOF after the last record. A record
// without a positive object ID returns an EINVALID error; reading may
// continue after it.
func (r *Reader) Read() (*gallery.ArtObject, error) {
	record, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	r.line++

	get := func(column string) string {
		i, ok := r.columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id, err := strconv.Atoi(get(ColumnObjectID))
	if err != nil || id <= 0 {
		return nil, gallery.Errorf(gallery.EINVALID, "line %d: invalid object ID %q", r.line, get(ColumnObjectID))
	}

	o := &gallery.ArtObject{}
	o.ID = id
	o.ObjectID = optional(get(ColumnObjectNumber))
	o.IsHighlight, _ = strconv.ParseBool(get(ColumnIsHighlight))
	o.Title = optional(get(ColumnTitle))
	o.Artist = optional(get(ColumnArtist))
	o.Date = optional(get(ColumnDate))
	o.Medium = optional(get(ColumnMedium))
	o.Department = optional(get(ColumnDepartment))
	o.Culture = optional(get(ColumnCulture))
	o.Classification = optional(get(ColumnClassification))
	o.ObjectBeginDate = optionalInt(get(ColumnBeginDate))
	o.ObjectEndDate = optionalInt(get(ColumnEndDate))
	o.PrimaryImage = optional(get(ColumnPrimaryImage))
	o.PrimaryImageSmall = optional(get(ColumnPrimaryImageSmall))
	o.AdditionalImages = optional(get(ColumnAdditionalImages))
	o.ObjectURL = optional(get(ColumnLinkResource))
	o.ArtistDisplayBio = optional(get(ColumnArtistBio))
	o.CreditLine = optional(get(ColumnCreditLine))
	o.ArtistNationality = optional(get(ColumnArtistNationality))
	o.Description = optional(get(ColumnDescription))
	return o, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
