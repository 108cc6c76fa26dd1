package gallery

import "context"

// PageSize is the number of objects in a result page.
const PageSize = 20

// ArtObjectSummary is the search result row for a collection object.
type ArtObjectSummary struct {
	ID                int     `json:"id"`
	ObjectID          *string `json:"object_id"`
	Title             *string `json:"title"`
	Artist            *string `json:"artist"`
	Date              *string `json:"date"`
	Medium            *string `json:"medium"`
	PrimaryImage      *string `json:"primary_image"`
	PrimaryImageSmall *string `json:"primary_image_small"`
	Department        *string `json:"department"`
	Culture           *string `json:"culture"`
	Classification    *string `json:"classification"`
	IsHighlight       bool    `json:"is_highlight"`
	ObjectBeginDate   *int    `json:"object_begin_date"`
	ObjectEndDate     *int    `json:"object_end_date"`
}

// ArtObject is a full collection object.
type ArtObject struct {
	ArtObjectSummary

	AdditionalImages  *string `json:"additional_images"`
	ObjectURL         *string `json:"object_url"`
	ArtistDisplayBio  *string `json:"artist_display_bio"`
	CreditLine        *string `json:"credit_line"`
	ArtistNationality *string `json:"artist_nationality"`
	Description       *string `json:"description"`
}

// Validate returns an error if the object contains invalid fields.
func (o *ArtObject) Validate() error {
	if o.ID <= 0 {
		return Errorf(EINVALID, "object ID must be positive")
	}
	return nil
}

// SearchResult is one page of search results.
type SearchResult struct {
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
	Results    []*ArtObjectSummary `json:"results"`
}

// TotalPages returns the number of pages needed for total results.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// SearchService answers catalog queries. Search is idempotent: identical
// queries may be cached and re-issued freely.
type SearchService interface {
	// Search returns the page of objects matching the query.
	Search(ctx context.Context, q Query) (*SearchResult, error)

	// FindObjectByID retrieves a full object.
	// Returns ENOTFOUND if the object does not exist.
	FindObjectByID(ctx context.Context, id int) (*ArtObject, error)

	// FindDepartments returns the distinct department names, sorted.
	FindDepartments(ctx context.Context) ([]string, error)
}

// ObjectWriter writes collection objects to storage.
type ObjectWriter interface {
	// CreateObjects inserts objects, skipping IDs that already exist.
	// Returns the number of objects inserted.
	CreateObjects(ctx context.Context, objs []*ArtObject) (int, error)

	// ObjectExists reports whether an object with the given ID is stored.
	ObjectExists(ctx context.Context, id int) (bool, error)
}

// StringValue returns the string s points to, or "" when s is nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
