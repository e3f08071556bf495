// Package cache persists fetched PubMed records in a local SQLite database
// so repeat queries skip the EFetch round trip.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

// Store is a PMID-keyed cache of PaperRecords.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path, creating the parent
// directory and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		pmid TEXT PRIMARY KEY,
		title TEXT,
		pub_date TEXT,
		authors TEXT,
		fetched_at TEXT
	)`)
	return err
}

// Get partitions pmids into cached records and misses. Both slices preserve
// the input order.
func (s *Store) Get(ctx context.Context, pmids []string) (hits []types.PaperRecord, misses []string, err error) {
	stmt, err := s.db.PrepareContext(ctx,
		`SELECT title, pub_date, authors FROM papers WHERE pmid = ?`)
	if err != nil {
		return nil, nil, fmt.Errorf("preparing lookup: %w", err)
	}
	defer stmt.Close()

	for _, id := range pmids {
		var rec types.PaperRecord
		var authorsJSON string
		err := stmt.QueryRowContext(ctx, id).Scan(&rec.Title, &rec.PubDate, &authorsJSON)
		if err == sql.ErrNoRows {
			misses = append(misses, id)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("looking up PMID %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &rec.Authors); err != nil {
			// A corrupt entry is treated as a miss and refetched.
			misses = append(misses, id)
			continue
		}
		rec.PMID = id
		hits = append(hits, rec)
	}
	return hits, misses, nil
}

// Put upserts records into the cache.
func (s *Store) Put(ctx context.Context, records []types.PaperRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (pmid, title, pub_date, authors, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET
			title=excluded.title, pub_date=excluded.pub_date,
			authors=excluded.authors, fetched_at=excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for PMID %s: %w", rec.PMID, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.PMID, rec.Title, rec.PubDate, string(authorsJSON), now); err != nil {
			return fmt.Errorf("upserting PMID %s: %w", rec.PMID, err)
		}
	}
	return tx.Commit()
}

// Len returns the number of cached records.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cached records: %w", err)
	}
	return n, nil
}
