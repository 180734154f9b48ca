// Package uploads provides storage for upload metadata records.
package uploads

import (
	"context"

	"github.com/dmitrijs2005/docuchat/internal/server/models"
)

// Repository persists the ordered sequence of upload records. Insertion
// order equals submission order; uniqueness per (hash, size) is enforced by
// the caller's duplicate check, not by the storage format.
type Repository interface {
	// Load returns all known records. Missing or unparsable backing storage
	// yields an empty sequence, not an error.
	Load(ctx context.Context) ([]models.UploadRecord, error)

	// Save persists the full sequence, replacing prior contents.
	Save(ctx context.Context, records []models.UploadRecord) error
}

// FindDuplicate returns the first record matching both hash and size, or nil.
// Matching either field alone is insufficient.
func FindDuplicate(records []models.UploadRecord, hash string, size int64) *models.UploadRecord {
	for i := range records {
		if records[i].Hash == hash && records[i].Size == size {
			return &records[i]
		}
	}
	return nil
}
