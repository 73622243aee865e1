package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matsen/ieeedraft/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection. The database is a cache of the
// JSONL file and can be rebuilt from it at any time.
type DB struct {
	db *sql.DB
}

// fingerprintKey is the cache_meta key holding the digest of the JSONL
// file the cache was last built from.
const fingerprintKey = "refs_fingerprint"

// selectRefFields contains the standard field list for SELECT queries.
const selectRefFields = `document_id, citation_number, doi, title, authors_json,
	year, journal, volume, issue, pages, publisher, url,
	raw_text, original_format, verified, formatted_ieee`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS refs (
			document_id TEXT NOT NULL,
			citation_number INTEGER NOT NULL,
			doi TEXT,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			year INTEGER,
			journal TEXT,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			publisher TEXT,
			url TEXT,
			raw_text TEXT,
			original_format TEXT,
			verified INTEGER NOT NULL DEFAULT 0,
			formatted_ieee TEXT,
			PRIMARY KEY (document_id, citation_number)
		);

		CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Full-text search; rowid mirrors refs.rowid
		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			title,
			authors_text,
			journal
		);

		CREATE TABLE IF NOT EXISTS cache_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	refs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	fingerprint, err := Fingerprint(jsonlPath)
	if err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return 0, fmt.Errorf("clearing refs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM refs_fts"); err != nil {
		return 0, fmt.Errorf("clearing refs_fts table: %w", err)
	}

	refsStmt, err := tx.Prepare(`
		INSERT INTO refs (
			document_id, citation_number, doi, title, authors_json,
			year, journal, volume, issue, pages, publisher, url,
			raw_text, original_format, verified, formatted_ieee
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refsStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO refs_fts (rowid, title, authors_text, journal)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, ref := range refs {
		authors := ref.Authors
		if authors == nil {
			authors = []string{}
		}
		authorsJSON, err := json.Marshal(authors)
		if err != nil {
			return 0, fmt.Errorf("marshaling authors for %s[%d]: %w", ref.DocumentID, ref.CitationNumber, err)
		}

		res, err := refsStmt.Exec(
			ref.DocumentID, ref.CitationNumber, nullableStringValue(ref.DOI), ref.Title, string(authorsJSON),
			nullableInt(ref.Year), nullableStringValue(ref.Journal), nullableStringValue(ref.Volume),
			nullableStringValue(ref.Issue), nullableStringValue(ref.Pages), nullableStringValue(ref.Publisher),
			nullableStringValue(ref.URL), nullableStringValue(ref.RawText), nullableStringValue(ref.OriginalFormat),
			ref.Verified, ref.FormattedIEEE,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting ref %s[%d]: %w", ref.DocumentID, ref.CitationNumber, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading rowid: %w", err)
		}

		_, err = ftsStmt.Exec(rowID, ref.Title, strings.Join(ref.Authors, ", "), ref.Journal)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s[%d]: %w", ref.DocumentID, ref.CitationNumber, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO cache_meta (key, value) VALUES (?, ?)`, fingerprintKey, fingerprint); err != nil {
		return 0, fmt.Errorf("saving fingerprint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(refs), nil
}

// IsStale reports whether the cache was built from different JSONL content.
func (d *DB) IsStale(jsonlPath string) (bool, error) {
	current, err := Fingerprint(jsonlPath)
	if err != nil {
		return false, err
	}

	var stored string
	err = d.db.QueryRow(`SELECT value FROM cache_meta WHERE key = ?`, fingerprintKey).Scan(&stored)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading fingerprint: %w", err)
	}

	return stored != current, nil
}

// EnsureFresh rebuilds the cache when it is stale. It reports whether a
// rebuild happened.
func (d *DB) EnsureFresh(jsonlPath string) (bool, error) {
	stale, err := d.IsStale(jsonlPath)
	if err != nil || !stale {
		return false, err
	}
	if _, err := d.RebuildFromJSONL(jsonlPath); err != nil {
		return false, err
	}
	return true, nil
}

// SearchFilters narrows Search results.
type SearchFilters struct {
	DocumentID string // Only this document (empty = all)
	YearFrom   int    // Minimum year (0 = no minimum)
	YearTo     int    // Maximum year (0 = no maximum)
}

// Search performs a full-text search over title, authors and journal.
func (d *DB) Search(query string, filters SearchFilters, limit int) ([]reference.Reference, error) {
	sqlQuery := `SELECT ` + selectRefFields + `
		FROM refs
		WHERE rowid IN (SELECT rowid FROM refs_fts WHERE refs_fts MATCH ?)`
	args := []interface{}{prepareFTSQuery(query)}

	if filters.DocumentID != "" {
		sqlQuery += " AND document_id = ?"
		args = append(args, filters.DocumentID)
	}
	if filters.YearFrom > 0 {
		sqlQuery += " AND year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		sqlQuery += " AND year <= ?"
		args = append(args, filters.YearTo)
	}

	sqlQuery += " ORDER BY document_id, citation_number LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// ListDocument returns a document's references ordered by citation number.
func (d *DB) ListDocument(documentID string) ([]reference.Reference, error) {
	rows, err := d.db.Query(`SELECT `+selectRefFields+` FROM refs
		WHERE document_id = ? ORDER BY citation_number`, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing refs: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// GetByNumber retrieves one reference. It returns nil if none matches.
func (d *DB) GetByNumber(documentID string, number int) (*reference.Reference, error) {
	row := d.db.QueryRow(`SELECT `+selectRefFields+` FROM refs
		WHERE document_id = ? AND citation_number = ?`, documentID, number)
	return scanReference(row)
}

// Count returns the total number of references.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReference(s scanner) (*reference.Reference, error) {
	var ref reference.Reference
	var authorsJSON string
	var doi, journal, volume, issue, pages, publisher, url, rawText, origFormat, formatted sql.NullString
	var year sql.NullInt64

	err := s.Scan(
		&ref.DocumentID, &ref.CitationNumber, &doi, &ref.Title, &authorsJSON,
		&year, &journal, &volume, &issue, &pages, &publisher, &url,
		&rawText, &origFormat, &ref.Verified, &formatted,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	ref.DOI = doi.String
	ref.Journal = journal.String
	ref.Volume = volume.String
	ref.Issue = issue.String
	ref.Pages = pages.String
	ref.Publisher = publisher.String
	ref.URL = url.String
	ref.RawText = rawText.String
	ref.OriginalFormat = origFormat.String
	ref.FormattedIEEE = formatted.String
	if year.Valid {
		ref.Year = int(year.Int64)
	}

	if err := json.Unmarshal([]byte(authorsJSON), &ref.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors JSON for %s[%d]: %w", ref.DocumentID, ref.CitationNumber, err)
	}

	return &ref, nil
}

func scanReferences(rows *sql.Rows) ([]reference.Reference, error) {
	var refs []reference.Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			refs = append(refs, *ref)
		}
	}
	return refs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullableInt converts an int to sql.NullInt64, treating zero as NULL.
func nullableInt(n int) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
