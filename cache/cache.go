// Package cache stores extracted outlines in SQLite, keyed by the content
// of the source document and the configuration used, so unchanged
// documents are not processed twice.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS outlines (
	content_hash TEXT NOT NULL,
	config_hash  TEXT NOT NULL,
	document     TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	PRIMARY KEY (content_hash, config_hash)
)`

// Key identifies a cached outline
type Key struct {
	// ContentHash is the SHA-256 of the source file
	ContentHash string

	// ConfigHash is the fingerprint of the heuristic configuration
	ConfigHash string
}

// Store is a SQLite-backed outline cache. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the cache database at path. ":memory:" gives a
// private in-memory cache.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// One connection: SQLite serializes writers anyway, and an in-memory
	// database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database path
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached outline for key. The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, key Key) (model.OutlineDocument, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM outlines WHERE content_hash = ? AND config_hash = ?`,
		key.ContentHash, key.ConfigHash,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.OutlineDocument{}, false, nil
	}
	if err != nil {
		return model.OutlineDocument{}, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var doc model.OutlineDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return model.OutlineDocument{}, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if doc.Outline == nil {
		doc.Outline = []model.OutlineEntry{}
	}
	return doc, true, nil
}

// Put stores doc under key, replacing any previous entry
func (s *Store) Put(ctx context.Context, key Key, doc model.OutlineDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode outline: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO outlines (content_hash, config_hash, document, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (content_hash, config_hash)
		DO UPDATE SET document = excluded.document, created_at = excluded.created_at`,
		key.ContentHash, key.ConfigHash, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Len returns the number of cached outlines
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outlines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// Prune removes entries made with any configuration other than
// configHash and returns how many were removed
func (s *Store) Prune(ctx context.Context, configHash string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM outlines WHERE config_hash <> ?`, configHash)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// HashFile returns the hex SHA-256 of a file's content
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Fingerprint returns a stable hash of the heuristic configuration. Any
// change to a threshold or weight yields a different fingerprint.
func Fingerprint(config layout.Config) (string, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// KeyFor builds the cache key of a file under a configuration
func KeyFor(path string, config layout.Config) (Key, error) {
	content, err := HashFile(path)
	if err != nil {
		return Key{}, err
	}
	fp, err := Fingerprint(config)
	if err != nil {
		return Key{}, err
	}
	return Key{ContentHash: content, ConfigHash: fp}, nil
}
