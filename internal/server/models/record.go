// Package models contains the server-side data model.
package models

import "time"

// UploadRecord describes one distinct file content that was successfully
// submitted to the remote document store. The (Hash, Size) pair is the
// deduplication key: at most one record exists per pair, and a record is
// written only after remote indexing has been confirmed.
type UploadRecord struct {
	FileName   string    `json:"file_name"`
	Path       string    `json:"path"`
	Hash       string    `json:"hash"`
	Size       int64     `json:"size"`
	StoreName  string    `json:"store_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}
