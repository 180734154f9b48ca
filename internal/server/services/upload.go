package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/docuchat/internal/hashx"
	"github.com/dmitrijs2005/docuchat/internal/logging"
	"github.com/dmitrijs2005/docuchat/internal/server/models"
	"github.com/dmitrijs2005/docuchat/internal/server/repositories/uploads"
)

// Indexer submits one local file to the shared store and blocks until
// remote indexing finishes.
type Indexer interface {
	EnsureStore(ctx context.Context) (string, error)
	SubmitAndIndex(ctx context.Context, localPath, displayName, storeName string) error
}

// UploadResult describes the outcome of processing one incoming file.
// Duplicate is true when the content was already indexed; Record then refers
// to the original submission, otherwise to the newly created one.
type UploadResult struct {
	Duplicate bool
	Record    models.UploadRecord
}

// UploadService runs the upload workflow: persist a local copy, fingerprint
// it, dedup against known metadata, and for new content submit it to the
// remote store before recording it.
type UploadService struct {
	indexer   Indexer
	repo      uploads.Repository
	uploadDir string
	logger    logging.Logger

	// serializes the metadata read-modify-write so two concurrent uploads of
	// identical new content cannot both miss the duplicate check
	mu sync.Mutex

	now func() time.Time
}

func NewUploadService(indexer Indexer, repo uploads.Repository, uploadDir string, l logging.Logger) *UploadService {
	return &UploadService{
		indexer:   indexer,
		repo:      repo,
		uploadDir: uploadDir,
		logger:    l.With("module", "upload_service"),
		now:       time.Now,
	}
}

// Process stores the incoming file under its caller-supplied name and either
// reports it as a previously indexed duplicate or submits it for remote
// indexing. Metadata is written only after remote completion is confirmed;
// on any indexing failure nothing is recorded and the local copy is kept.
func (s *UploadService) Process(ctx context.Context, fileName string, src io.Reader) (*UploadResult, error) {
	localPath := filepath.Join(s.uploadDir, fileName)
	if err := s.saveLocalCopy(localPath, src); err != nil {
		return nil, err
	}

	hash, size, err := hashx.File(localPath)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting %s: %w", fileName, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading upload metadata: %w", err)
	}

	if existing := uploads.FindDuplicate(records, hash, size); existing != nil {
		// best effort: the retained copy from the original upload stays
		if err := os.Remove(localPath); err != nil {
			s.logger.Warn(ctx, "could not remove duplicate copy", "path", localPath, "error", err.Error())
		}
		s.logger.Info(ctx, "duplicate upload skipped", "file", fileName, "hash", hash)
		return &UploadResult{Duplicate: true, Record: *existing}, nil
	}

	storeName, err := s.indexer.EnsureStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving document store: %w", err)
	}

	if err := s.indexer.SubmitAndIndex(ctx, localPath, fileName, storeName); err != nil {
		s.logger.Error(ctx, "indexing failed", "file", fileName, "error", err.Error())
		return nil, err
	}

	record := models.UploadRecord{
		FileName:   fileName,
		Path:       localPath,
		Hash:       hash,
		Size:       size,
		StoreName:  storeName,
		UploadedAt: s.now(),
	}
	records = append(records, record)

	if err := s.repo.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("saving upload metadata: %w", err)
	}

	s.logger.Info(ctx, "file indexed", "file", fileName, "hash", hash, "size", size)
	return &UploadResult{Record: record}, nil
}

func (s *UploadService) saveLocalCopy(localPath string, src io.Reader) error {
	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", localPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", localPath, err)
	}
	return nil
}
