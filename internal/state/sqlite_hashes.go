package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetContentHash retrieves the content hash for a document path.
// An unknown path returns an empty hash.
func (s *SQLiteStore) GetContentHash(path string) (string, error) {
	if s.db == nil {
		return "", ErrNotOpen
	}

	var hash string
	err := s.db.QueryRowContext(ctx(), `SELECT hash FROM content_hashes WHERE path = ?`, path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get content hash: %w", err)
	}
	return hash, nil
}

// SetContentHash stores the content hash for a document path.
func (s *SQLiteStore) SetContentHash(path, hash, kind string) error {
	if s.db == nil {
		return ErrNotOpen
	}

	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO content_hashes (path, hash, kind, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, kind = excluded.kind, updated_at = excluded.updated_at`,
		path, hash, kind, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set content hash: %w", err)
	}
	return nil
}

// DeleteContentHash removes the content hash for a document path.
func (s *SQLiteStore) DeleteContentHash(path string) error {
	if s.db == nil {
		return ErrNotOpen
	}

	if _, err := s.db.ExecContext(ctx(), `DELETE FROM content_hashes WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete content hash: %w", err)
	}
	return nil
}

// ListContentHashes returns every stored hash keyed by document path.
func (s *SQLiteStore) ListContentHashes() (map[string]string, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx(), `SELECT path, hash FROM content_hashes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, fmt.Errorf("failed to scan content hash: %w", err)
		}
		hashes[path] = hash
	}
	return hashes, rows.Err()
}
