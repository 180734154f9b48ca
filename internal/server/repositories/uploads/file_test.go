package uploads

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docuchat/internal/server/models"
)

func testRecords() []models.UploadRecord {
	return []models.UploadRecord{
		{
			FileName:   "policy.pdf",
			Path:       "uploads/policy.pdf",
			Hash:       "aaa111",
			Size:       1024,
			StoreName:  "fileSearchStores/abc",
			UploadedAt: time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			FileName:   "handbook.pdf",
			Path:       "uploads/handbook.pdf",
			Hash:       "bbb222",
			Size:       2048,
			StoreName:  "fileSearchStores/abc",
			UploadedAt: time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestFileRepository_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploaded_docs.json")
	repo := NewFileRepository(path)
	ctx := context.Background()

	want := testRecords()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileRepository_LoadMissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "absent.json"))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFileRepository_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploaded_docs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	repo := NewFileRepository(path)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileRepository_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploaded_docs.json")
	repo := NewFileRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecords()))
	require.NoError(t, repo.Save(ctx, testRecords()[:1]))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "policy.pdf", got[0].FileName)
}

func TestFindDuplicate(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name string
		hash string
		size int64
		want *models.UploadRecord
	}{
		{"match on both fields", "aaa111", 1024, &records[0]},
		{"hash alone is insufficient", "aaa111", 999, nil},
		{"size alone is insufficient", "zzz999", 1024, nil},
		{"no match at all", "zzz999", 999, nil},
		{"second record found", "bbb222", 2048, &records[1]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindDuplicate(records, tc.hash, tc.size)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindDuplicate_EmptyRecords(t *testing.T) {
	assert.Nil(t, FindDuplicate(nil, "aaa111", 1024))
}
