package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fwojciec/gallery"
	"github.com/fwojciec/gallery/bloom"
	"github.com/fwojciec/gallery/csv"
)

// Bloom filter sizing for import. The Met export has about half a million rows.
const (
	importExpectedObjects = 1_000_000
	importFalsePositive   = 0.001
)

// ImportStats summarizes an import.
type ImportStats struct {
	Read       int
	Inserted   int
	Duplicates int
	Invalid    int
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	stats, err := importObjects(deps.Ctx, f, deps.Objects, c.BatchSize, deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gallery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d objects (%d read, %d duplicates, %d invalid)\n",
		stats.Inserted, stats.Read, stats.Duplicates, stats.Invalid)
	return nil
}

// importObjects streams objects from r into w in batches. A Bloom filter
// screens object IDs; only IDs it may have seen are checked exactly.
func importObjects(ctx context.Context, r io.Reader, w gallery.ObjectWriter, batchSize int, logger *slog.Logger) (ImportStats, error) {
	var stats ImportStats
	if batchSize <= 0 {
		batchSize = 500
	}

	reader, err := csv.NewReader(r)
	if err != nil {
		return stats, err
	}

	seen := bloom.NewFilter(importExpectedObjects, importFalsePositive)
	batch := make([]*gallery.ArtObject, 0, batchSize)
	inBatch := make(map[int]struct{}, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := w.CreateObjects(ctx, batch)
		if err != nil {
			return err
		}
		stats.Inserted += n
		stats.Duplicates += len(batch) - n
		logger.Info("import batch", "objects", len(batch), "inserted", n, "read", stats.Read)
		batch = batch[:0]
		clear(inBatch)
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		o, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if gallery.ErrorCode(err) == gallery.EINVALID {
			stats.Invalid++
			logger.Debug("skipping record", "err", err)
			continue
		} else if err != nil {
			return stats, err
		}
		stats.Read++

		if seen.TestAndAdd(o.ID) {
			dup, err := isDuplicate(ctx, w, inBatch, o.ID)
			if err != nil {
				return stats, err
			}
			if dup {
				stats.Duplicates++
				continue
			}
		}

		batch = append(batch, o)
		inBatch[o.ID] = struct{}{}
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	return stats, flush()
}

// isDuplicate confirms a Bloom filter hit against the pending batch and
// the stored objects.
func isDuplicate(ctx context.Context, w gallery.ObjectWriter, inBatch map[int]struct{}, id int) (bool, error) {
	if _, ok := inBatch[id]; ok {
		return true, nil
	}
	return w.ObjectExists(ctx, id)
}
