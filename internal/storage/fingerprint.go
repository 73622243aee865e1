package storage

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a BLAKE2b-256 hex digest of the file at path. A
// missing file has the digest of empty content.
func Fingerprint(path string) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return hex.EncodeToString(h.Sum(nil)), nil
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
