package mock

import (
	"context"

	"github.com/fwojciec/gallery"
)

var _ gallery.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of gallery.SearchService.
type SearchService struct {
	SearchFn          func(ctx context.Context, q gallery.Query) (*gallery.SearchResult, error)
	FindObjectByIDFn  func(ctx context.Context, id int) (*gallery.ArtObject, error)
	FindDepartmentsFn func(ctx context.Context) ([]string, error)
}

func (s *SearchService) Search(ctx context.Context, q gallery.Query) (*gallery.SearchResult, error) {
	return s.SearchFn(ctx, q)
}

func (s *SearchService) FindObjectByID(ctx context.Context, id int) (*gallery.ArtObject, error) {
	return s.FindObjectByIDFn(ctx, id)
}

func (s *SearchService) FindDepartments(ctx context.Context) ([]string, error) {
	return s.FindDepartmentsFn(ctx)
}

var _ gallery.ObjectWriter = (*ObjectWriter)(nil)

// ObjectWriter is a mock implementation of gallery.ObjectWriter.
type ObjectWriter struct {
	CreateObjectsFn func(ctx context.Context, objs []*gallery.ArtObject) (int, error)
	ObjectExistsFn  func(ctx context.Context, id int) (bool, error)
}

func (w *ObjectWriter) CreateObjects(ctx context.Context, objs []*gallery.ArtObject) (int, error) {
	return w.CreateObjectsFn(ctx, objs)
}

func (w *ObjectWriter) ObjectExists(ctx context.Context, id int) (bool, error) {
	return w.ObjectExistsFn(ctx, id)
}
