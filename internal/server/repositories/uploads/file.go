package uploads

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docuchat/internal/filex"
	"github.com/dmitrijs2005/docuchat/internal/server/models"
)

// FileRepository keeps upload records in a single local JSON file that is
// rewritten in full on every save.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load reads the record sequence from disk. A missing or corrupt file is
// treated as empty history rather than an error, so metadata loss degrades
// to "no known duplicates".
func (r *FileRepository) Load(ctx context.Context) ([]models.UploadRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return []models.UploadRecord{}, nil
	}

	var records []models.UploadRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []models.UploadRecord{}, nil
	}
	if records == nil {
		records = []models.UploadRecord{}
	}
	return records, nil
}

// Save rewrites the backing file with the full sequence. The write goes
// through a temp-file rename, so a crash mid-write cannot corrupt an
// already completed prior save.
func (r *FileRepository) Save(ctx context.Context, records []models.UploadRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling upload records: %w", err)
	}
	if err := filex.WriteFileAtomic(r.path, data, 0o644); err != nil {
		return fmt.Errorf("saving upload records: %w", err)
	}
	return nil
}
