package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/gallery"
)

// Compile-time interface verification.
var _ gallery.ObjectWriter = (*ObjectService)(nil)

// ObjectService writes collection objects to SQLite.
type ObjectService struct {
	db *DB
}

// NewObjectService creates a new ObjectService.
func NewObjectService(db *DB) *ObjectService {
	return &ObjectService{db: db}
}

// CreateObjects inserts objs in one transaction. Objects whose ID already
// exists are skipped. Returns the number inserted.
func (s *ObjectService) CreateObjects(ctx context.Context, objs []*gallery.ArtObject) (int, error) {
	for _, o := range objs {
		if err := o.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO objects (
			id, object_id, title, artist, date, medium,
			primary_image, primary_image_small, department, culture,
			classification, is_highlight, object_begin_date, object_end_date,
			additional_images, object_url, artist_display_bio,
			credit_line, artist_nationality, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int
	for _, o := range objs {
		res, err := stmt.ExecContext(ctx,
			o.ID, o.ObjectID, o.Title, o.Artist, o.Date, o.Medium,
			o.PrimaryImage, o.PrimaryImageSmall, o.Department, o.Culture,
			o.Classification, o.IsHighlight, o.ObjectBeginDate, o.ObjectEndDate,
			o.AdditionalImages, o.ObjectURL, o.ArtistDisplayBio,
			o.CreditLine, o.ArtistNationality, o.Description,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert object %d: %w", o.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ObjectExists reports whether an object with the given ID is stored.
func (s *ObjectService) ObjectExists(ctx context.Context, id int) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM objects WHERE id = ?", id).Scan(&n)
	return n > 0, err
}
