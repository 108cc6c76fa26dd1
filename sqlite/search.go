package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/gallery"
)

// Compile-time interface verification.
var _ gallery.SearchService = (*SearchService)(nil)

// summaryColumns are the columns scanned by scanSummary, in order.
const summaryColumns = `id, object_id, title, artist, date, medium,
	primary_image, primary_image_small, department, culture,
	classification, is_highlight, object_begin_date, object_end_date`

// SearchService implements gallery.SearchService using SQLite.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// Search returns one page of objects matching q, highlighted objects first.
// A page past the last one is empty.
func (s *SearchService) Search(ctx context.Context, q gallery.Query) (*gallery.SearchResult, error) {
	q = q.Normalize()
	where, args := whereClause(q.Criteria)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM objects"+where, args...).Scan(&total); err != nil {
		return nil, err
	}
	totalPages := gallery.TotalPages(total, gallery.PageSize)

	results := make([]*gallery.ArtObjectSummary, 0, gallery.PageSize)
	// Bounding the page by totalPages also keeps the offset from overflowing.
	if q.Page < totalPages {
		var err error
		if results, err = s.findSummaries(ctx, where, args, q.Page*gallery.PageSize); err != nil {
			return nil, err
		}
	}

	return &gallery.SearchResult{
		Total:      total,
		Page:       q.Page,
		PageSize:   gallery.PageSize,
		TotalPages: totalPages,
		Results:    results,
	}, nil
}

func (s *SearchService) findSummaries(ctx context.Context, where string, args []any, offset int) ([]*gallery.ArtObjectSummary, error) {
	var query strings.Builder
	query.WriteString("SELECT " + summaryColumns + " FROM objects")
	query.WriteString(where)
	query.WriteString(" ORDER BY is_highlight DESC, id ASC")
	appendPagination(&query, &args, gallery.PageSize, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*gallery.ArtObjectSummary, 0, gallery.PageSize)
	for rows.Next() {
		var o gallery.ArtObjectSummary
		if err := scanSummary(rows, &o); err != nil {
			return nil, err
		}
		results = append(results, &o)
	}
	return results, rows.Err()
}

// FindObjectByID retrieves a full object.
func (s *SearchService) FindObjectByID(ctx context.Context, id int) (*gallery.ArtObject, error) {
	var o gallery.ArtObject

	err := s.db.QueryRowContext(ctx, `
		SELECT `+summaryColumns+`,
			additional_images, object_url, artist_display_bio,
			credit_line, artist_nationality, description
		FROM objects
		WHERE id = ?
	`, id).Scan(
		&o.ID, &o.ObjectID, &o.Title, &o.Artist, &o.Date, &o.Medium,
		&o.PrimaryImage, &o.PrimaryImageSmall, &o.Department, &o.Culture,
		&o.Classification, &o.IsHighlight, &o.ObjectBeginDate, &o.ObjectEndDate,
		&o.AdditionalImages, &o.ObjectURL, &o.ArtistDisplayBio,
		&o.CreditLine, &o.ArtistNationality, &o.Description,
	)
	if err == sql.ErrNoRows {
		return nil, gallery.Errorf(gallery.ENOTFOUND, "object %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// FindDepartments returns the distinct non-empty departments, sorted.
func (s *SearchService) FindDepartments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT department
		FROM objects
		WHERE department IS NOT NULL AND department != ''
		ORDER BY department
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// whereClause builds the filter for c, including the leading " WHERE" when
// any condition applies.
func whereClause(c gallery.FilterCriteria) (string, []any) {
	var conds []string
	var args []any

	if c.Keyword != "" {
		conds = append(conds, `(coalesce(title, '') || ' ' || coalesce(artist, '') || ' ' ||
			coalesce(culture, '') || ' ' || coalesce(medium, '') || ' ' ||
			coalesce(department, '')) LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(c.Keyword))
	}
	if c.Department != "" {
		conds = append(conds, "department = ?")
		args = append(args, c.Department)
	}
	if c.Culture != "" {
		conds = append(conds, `culture LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(c.Culture))
	}
	if c.Dates.Valid {
		conds = append(conds, "object_end_date >= ?", "object_begin_date <= ?")
		args = append(args, c.Dates.Begin, c.Dates.End)
	}
	if c.HighlightOnly {
		conds = append(conds, "is_highlight = 1")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanSummary(rows *sql.Rows, o *gallery.ArtObjectSummary) error {
	return rows.Scan(
		&o.ID, &o.ObjectID, &o.Title, &o.Artist, &o.Date, &o.Medium,
		&o.PrimaryImage, &o.PrimaryImageSmall, &o.Department, &o.Culture,
		&o.Classification, &o.IsHighlight, &o.ObjectBeginDate, &o.ObjectEndDate,
	)
}
