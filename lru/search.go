// Package lru provides a caching decorator for gallery.SearchService.
package lru

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/gallery"
	gurl "github.com/fwojciec/gallery/url"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Cache configuration defaults.
const (
	DefaultSize      = 512
	DefaultSearchTTL = 5 * time.Minute
	DefaultObjectTTL = time.Hour
)

// Ensure SearchService implements gallery.SearchService at compile time.
var _ gallery.SearchService = (*SearchService)(nil)

// SearchService caches the results of another SearchService. Cached values
// are shared between callers and must not be modified.
//
// Identical concurrent calls that miss the cache share a single call to the
// wrapped service. Errors are never cached.
type SearchService struct {
	next  gallery.SearchService
	group singleflight.Group

	searches    *expirable.LRU[uint64, *gallery.SearchResult]
	objects     *expirable.LRU[int, *gallery.ArtObject]
	departments *expirable.LRU[struct{}, []string]
}

// Option configures a SearchService.
type Option func(*options)

type options struct {
	size      int
	searchTTL time.Duration
	objectTTL time.Duration
}

// WithSize sets the maximum number of cached searches and objects each.
func WithSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.size = n
		}
	}
}

// WithSearchTTL sets how long search results stay cached.
func WithSearchTTL(d time.Duration) Option {
	return func(o *options) {
		o.searchTTL = d
	}
}

// WithObjectTTL sets how long objects stay cached.
func WithObjectTTL(d time.Duration) Option {
	return func(o *options) {
		o.objectTTL = d
	}
}

// NewSearchService wraps next with a cache. Departments are cached for the
// lifetime of the service.
func NewSearchService(next gallery.SearchService, opts ...Option) *SearchService {
	o := options{
		size:      DefaultSize,
		searchTTL: DefaultSearchTTL,
		objectTTL: DefaultObjectTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &SearchService{
		next:        next,
		searches:    expirable.NewLRU[uint64, *gallery.SearchResult](o.size, nil, o.searchTTL),
		objects:     expirable.NewLRU[int, *gallery.ArtObject](o.size, nil, o.objectTTL),
		departments: expirable.NewLRU[struct{}, []string](1, nil, 0),
	}
}

// Search returns the cached page for q or fetches it.
func (s *SearchService) Search(ctx context.Context, q gallery.Query) (*gallery.SearchResult, error) {
	q = q.Normalize()
	key := searchKey(q)
	if r, ok := s.searches.Get(key); ok {
		return r, nil
	}

	v, err, _ := s.group.Do("search:"+strconv.FormatUint(key, 16), func() (any, error) {
		r, err := s.next.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		s.searches.Add(key, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gallery.SearchResult), nil
}

// FindObjectByID returns the cached object or fetches it.
func (s *SearchService) FindObjectByID(ctx context.Context, id int) (*gallery.ArtObject, error) {
	if o, ok := s.objects.Get(id); ok {
		return o, nil
	}

	v, err, _ := s.group.Do("object:"+strconv.Itoa(id), func() (any, error) {
		o, err := s.next.FindObjectByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.objects.Add(id, o)
		return o, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gallery.ArtObject), nil
}

// FindDepartments returns the cached department list or fetches it.
func (s *SearchService) FindDepartments(ctx context.Context) ([]string, error) {
	if d, ok := s.departments.Get(struct{}{}); ok {
		return d, nil
	}

	v, err, _ := s.group.Do("departments", func() (any, error) {
		d, err := s.next.FindDepartments(ctx)
		if err != nil {
			return nil, err
		}
		s.departments.Add(struct{}{}, d)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Purge drops every cached value, e.g. after an import.
func (s *SearchService) Purge() {
	s.searches.Purge()
	s.objects.Purge()
	s.departments.Purge()
}

// searchKey hashes the canonical URL encoding of q, so queries that encode
// to the same location share an entry.
func searchKey(q gallery.Query) uint64 {
	return xxhash.Sum64String(gurl.Format(q))
}
