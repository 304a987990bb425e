package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gapscan/gapscan/pkg/gapscan/internalerr"
	"github.com/gapscan/gapscan/pkg/gapscan/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	content TEXT NOT NULL DEFAULT '',
	uploaded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS policies (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	company TEXT NOT NULL,
	start_date TEXT,
	end_date TEXT,
	premium REAL,
	document_id TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY(document_id) REFERENCES documents(id) ON DELETE SET NULL
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddPolicy inserts a policy.
func (s *sqliteStore) AddPolicy(ctx context.Context, p store.Policy) error {
	if p.ID == "" {
		return fmt.Errorf("policy id: %w", internalerr.ErrInvalidInput)
	}

	const stmt = `
INSERT INTO policies (id, type, company, start_date, end_date, premium, document_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`

	_, err := s.db.ExecContext(
		ctx,
		stmt,
		p.ID,
		p.Type,
		p.Company,
		nullString(p.Start),
		nullString(p.End),
		nullFloat(p.Premium),
		nullString(p.DocumentID),
		p.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert policy %s: %w", p.ID, err)
	}
	return nil
}

// GetPolicy returns a policy by ID.
func (s *sqliteStore) GetPolicy(ctx context.Context, id string) (store.Policy, bool, error) {
	const stmt = `
SELECT id, type, company, start_date, end_date, premium, document_id, created_at
FROM policies WHERE id = ?;
`

	p, err := scanPolicy(s.db.QueryRowContext(ctx, stmt, id))
	if err == sql.ErrNoRows {
		return store.Policy{}, false, nil
	}
	if err != nil {
		return store.Policy{}, false, err
	}
	return p, true, nil
}

// ListPolicies returns policies newest first.
func (s *sqliteStore) ListPolicies(ctx context.Context) ([]store.Policy, error) {
	const stmt = `
SELECT id, type, company, start_date, end_date, premium, document_id, created_at
FROM policies ORDER BY rowid DESC;
`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []store.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// DeletePolicy removes a policy and its attached document.
func (s *sqliteStore) DeletePolicy(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var docID sql.NullString
	err = tx.QueryRowContext(ctx, "SELECT document_id FROM policies WHERE id = ?", id).Scan(&docID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("policy %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM policies WHERE id = ?", id); err != nil {
		return err
	}
	if docID.Valid && docID.String != "" {
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", docID.String); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddDocument inserts a document.
func (s *sqliteStore) AddDocument(ctx context.Context, d store.Document) error {
	if d.ID == "" {
		return fmt.Errorf("document id: %w", internalerr.ErrInvalidInput)
	}

	const stmt = `
INSERT INTO documents (id, name, size, content, uploaded_at)
VALUES (?, ?, ?, ?, ?);
`

	_, err := s.db.ExecContext(
		ctx,
		stmt,
		d.ID,
		d.Name,
		d.Size,
		d.Content,
		d.UploadedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert document %s: %w", d.ID, err)
	}
	return nil
}

// GetDocument returns a document by ID.
func (s *sqliteStore) GetDocument(ctx context.Context, id string) (store.Document, bool, error) {
	const stmt = `
SELECT id, name, size, content, uploaded_at FROM documents WHERE id = ?;
`

	var d store.Document
	var uploadedAt string
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&d.ID, &d.Name, &d.Size, &d.Content, &uploadedAt)
	if err == sql.ErrNoRows {
		return store.Document{}, false, nil
	}
	if err != nil {
		return store.Document{}, false, err
	}

	if ts, err := time.Parse(time.RFC3339Nano, uploadedAt); err == nil {
		d.UploadedAt = ts
	}
	return d, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (store.Policy, error) {
	var p store.Policy
	var start, end, docID sql.NullString
	var premium sql.NullFloat64
	var createdAt string

	err := row.Scan(&p.ID, &p.Type, &p.Company, &start, &end, &premium, &docID, &createdAt)
	if err != nil {
		return store.Policy{}, err
	}

	p.Start = start.String
	p.End = end.String
	p.DocumentID = docID.String
	if premium.Valid {
		val := premium.Float64
		p.Premium = &val
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = ts
	}
	return p, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
