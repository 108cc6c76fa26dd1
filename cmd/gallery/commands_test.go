package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/gallery"
	main "github.com/fwojciec/gallery/cmd/gallery"
	"github.com/fwojciec/gallery/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(search gallery.SearchService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Search: search,
	}, stdout, stderr
}

func TestSearchCmd(t *testing.T) {
	t.Parallel()

	t.Run("parses the location and prints a next page hint", func(t *testing.T) {
		t.Parallel()

		var got gallery.Query
		search := &mock.SearchService{
			SearchFn: func(_ context.Context, q gallery.Query) (*gallery.SearchResult, error) {
				got = q
				return &gallery.SearchResult{
					Results: []*gallery.ArtObjectSummary{
						{ID: 1, Title: ptr("Water Lilies"), Artist: ptr("Claude Monet"), IsHighlight: true},
					},
					Total:      45,
					Page:       0,
					TotalPages: 3,
				}, nil
			},
		}
		deps, stdout, _ := testDeps(search)

		cmd := &main.SearchCmd{Location: "q=monet&dept=European+Paintings"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "monet", got.Criteria.Keyword)
		assert.Equal(t, "European Paintings", got.Criteria.Department)
		assert.Contains(t, stdout.String(), "1  * Water Lilies  Claude Monet")
		assert.Contains(t, stdout.String(), "Page 1 of 3 (45 objects)")
		assert.Contains(t, stdout.String(), "Next: gallery search 'dept=European+Paintings&page=1&q=monet'")
	})

	t.Run("reports an empty result", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(context.Context, gallery.Query) (*gallery.SearchResult, error) {
				return &gallery.SearchResult{}, nil
			},
		}
		deps, stdout, _ := testDeps(search)

		require.NoError(t, (&main.SearchCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No objects match these filters.")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(context.Context, gallery.Query) (*gallery.SearchResult, error) {
				return &gallery.SearchResult{Total: 1, TotalPages: 1, Results: []*gallery.ArtObjectSummary{{ID: 7}}}, nil
			},
		}
		deps, stdout, _ := testDeps(search)

		require.NoError(t, (&main.SearchCmd{JSON: true}).Run(deps))

		var result gallery.SearchResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.Equal(t, 1, result.Total)
		require.Len(t, result.Results, 1)
		assert.Equal(t, 7, result.Results[0].ID)
	})

	t.Run("prints the error message", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(context.Context, gallery.Query) (*gallery.SearchResult, error) {
				return nil, gallery.Errorf(gallery.EUNAVAILABLE, "Rate limit exceeded.")
			},
		}
		deps, _, stderr := testDeps(search)

		require.Error(t, (&main.SearchCmd{}).Run(deps))
		assert.Equal(t, "error: Rate limit exceeded.\n", stderr.String())
	})
}

func TestDepartmentsCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists departments", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			FindDepartmentsFn: func(context.Context) ([]string, error) {
				return []string{"Arms and Armor", "Egyptian Art"}, nil
			},
		}
		deps, stdout, _ := testDeps(search)

		require.NoError(t, (&main.DepartmentsCmd{}).Run(deps))
		assert.Equal(t, "Arms and Armor\nEgyptian Art\n", stdout.String())
	})

	t.Run("hints at import when empty", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			FindDepartmentsFn: func(context.Context) ([]string, error) {
				return nil, nil
			},
		}
		deps, stdout, _ := testDeps(search)

		require.NoError(t, (&main.DepartmentsCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "gallery import")
	})
}

func TestObjectCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints populated fields only", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			FindObjectByIDFn: func(_ context.Context, id int) (*gallery.ArtObject, error) {
				o := &gallery.ArtObject{}
				o.ID = id
				o.Title = ptr("The Harvesters")
				o.Artist = ptr("Pieter Bruegel the Elder")
				return o, nil
			},
		}
		deps, stdout, _ := testDeps(search)

		require.NoError(t, (&main.ObjectCmd{ID: 435809}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "435809")
		assert.Contains(t, out, "The Harvesters")
		assert.Contains(t, out, "Pieter Bruegel the Elder")
		assert.NotContains(t, out, "Medium")
		assert.NotContains(t, out, "Highlight")
	})

	t.Run("reports not found", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			FindObjectByIDFn: func(_ context.Context, id int) (*gallery.ArtObject, error) {
				return nil, gallery.Errorf(gallery.ENOTFOUND, "object %d not found", id)
			},
		}
		deps, _, stderr := testDeps(search)

		err := (&main.ObjectCmd{ID: 9}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, gallery.ENOTFOUND, gallery.ErrorCode(err))
		assert.True(t, strings.HasPrefix(stderr.String(), "error: object 9 not found"))
	})
}

func TestImportCmd(t *testing.T) {
	t.Parallel()

	t.Run("batches writes and skips duplicates", func(t *testing.T) {
		t.Parallel()

		var batches [][]int
		stored := map[int]bool{}
		writer := &mock.ObjectWriter{
			CreateObjectsFn: func(_ context.Context, objs []*gallery.ArtObject) (int, error) {
				ids := make([]int, 0, len(objs))
				for _, o := range objs {
					ids = append(ids, o.ID)
					stored[o.ID] = true
				}
				batches = append(batches, ids)
				return len(objs), nil
			},
			ObjectExistsFn: func(_ context.Context, id int) (bool, error) {
				return stored[id], nil
			},
		}
		deps, stdout, _ := testDeps(nil)
		deps.Objects = writer

		csv := "Object ID,Title\n1,A\n2,B\n2,B again\n3,C\nbad,D\n"
		cmd := &main.ImportCmd{Path: writeFile(t, "objects.csv", csv), BatchSize: 2}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, [][]int{{1, 2}, {3}}, batches)
		assert.Equal(t, "Imported 3 objects (4 read, 1 duplicates, 1 invalid)\n", stdout.String())
	})

	t.Run("skips objects already stored", func(t *testing.T) {
		t.Parallel()

		writer := &mock.ObjectWriter{
			CreateObjectsFn: func(_ context.Context, objs []*gallery.ArtObject) (int, error) {
				return len(objs), nil
			},
			ObjectExistsFn: func(_ context.Context, id int) (bool, error) {
				return id == 1, nil
			},
		}
		deps, stdout, _ := testDeps(nil)
		deps.Objects = writer

		// Object 1 repeats across batches, so the second copy is
		// confirmed against the store.
		csv := "Object ID\n1\n2\n1\n"
		cmd := &main.ImportCmd{Path: writeFile(t, "objects.csv", csv), BatchSize: 1}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "Imported 2 objects (3 read, 1 duplicates, 0 invalid)\n", stdout.String())
	})

	t.Run("counts rows ignored by the store as duplicates", func(t *testing.T) {
		t.Parallel()

		writer := &mock.ObjectWriter{
			CreateObjectsFn: func(_ context.Context, objs []*gallery.ArtObject) (int, error) {
				return len(objs) - 1, nil
			},
		}
		deps, stdout, _ := testDeps(nil)
		deps.Objects = writer

		cmd := &main.ImportCmd{Path: writeFile(t, "objects.csv", "Object ID\n10\n11\n"), BatchSize: 10}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "Imported 1 objects (2 read, 1 duplicates, 0 invalid)\n", stdout.String())
	})

	t.Run("rejects a file without an object ID column", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil)
		deps.Objects = &mock.ObjectWriter{}

		cmd := &main.ImportCmd{Path: writeFile(t, "objects.csv", "Title\nA\n")}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, gallery.EINVALID, gallery.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Object ID")
	})
}

func ptr[T any](v T) *T { return &v }
