// Package hashx computes content fingerprints used for upload deduplication.
// A fingerprint is the pair (hex SHA-256 digest, byte size); identical bytes
// always produce an identical fingerprint regardless of file name or path.
package hashx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Reader hashes everything it reads from r and returns the hex digest and
// the number of bytes consumed. The stream is read in bounded chunks, so
// memory use does not depend on the input size.
func Reader(r io.Reader) (string, int64, error) {
	h := sha256.New()
	size, err := io.Copy(h, r)
	if err != nil {
		return "", 0, fmt.Errorf("hashing stream: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}

// File returns the fingerprint of the file at path.
func File(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Reader(f)
}
