// Package storage persists reference lists as JSONL and caches them in
// SQLite for full-text search.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/ieeedraft/internal/reference"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all references from a JSONL file.
func ReadAll(path string) ([]reference.Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Empty file returns empty slice
		}
		return nil, fmt.Errorf("opening refs file: %w", err)
	}
	defer f.Close()

	var refs []reference.Reference
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ref reference.Reference
		if err := json.Unmarshal(line, &ref); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		refs = append(refs, ref)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading refs file: %w", err)
	}

	return refs, nil
}

// Append adds a reference to the end of a JSONL file.
func Append(path string, ref reference.Reference) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening refs file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("encoding reference: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing reference: %w", err)
	}

	return nil
}

// WriteAll writes all references to a JSONL file, replacing existing content.
// The file is written to a temporary sibling and renamed into place.
func WriteAll(path string, refs []reference.Reference) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating refs file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i, ref := range refs {
		data, err := json.Marshal(ref)
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encoding reference %d: %w", i, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing refs file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing refs file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing refs file: %w", err)
	}

	return nil
}

// FindByDOI searches a document's references for a DOI, ignoring case.
func FindByDOI(refs []reference.Reference, documentID, doi string) (int, bool) {
	if doi == "" {
		return -1, false
	}
	for i, ref := range refs {
		if ref.DocumentID == documentID && strings.EqualFold(ref.DOI, doi) {
			return i, true
		}
	}
	return -1, false
}
