package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RecordOutput records the file a run generated for an element. Recording
// the same element twice in one run replaces the earlier row.
func (s *SQLiteStore) RecordOutput(out *ElementOutput) error {
	if s.db == nil {
		return ErrNotOpen
	}

	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO element_outputs (run_id, element, output_path, content_hash, code_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id, element) DO UPDATE SET
		   output_path = excluded.output_path,
		   content_hash = excluded.content_hash,
		   code_hash = excluded.code_hash,
		   created_at = excluded.created_at`,
		out.RunID, out.Element, out.OutputPath, out.ContentHash, out.CodeHash, out.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record output for %s: %w", out.Element, err)
	}
	return nil
}

// ListOutputs returns the outputs of a run ordered by element name.
func (s *SQLiteStore) ListOutputs(runID string) ([]*ElementOutput, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx(),
		`SELECT run_id, element, output_path, content_hash, code_hash, created_at
		 FROM element_outputs WHERE run_id = ? ORDER BY element`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	defer rows.Close()

	var outputs []*ElementOutput
	for rows.Next() {
		out, err := scanOutput(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan output: %w", err)
		}
		outputs = append(outputs, out)
	}
	return outputs, rows.Err()
}

// GetLatestOutput returns the most recent output recorded for an element,
// or nil when it was never generated.
func (s *SQLiteStore) GetLatestOutput(element string) (*ElementOutput, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	out, err := scanOutput(s.db.QueryRowContext(ctx(),
		`SELECT o.run_id, o.element, o.output_path, o.content_hash, o.code_hash, o.created_at
		 FROM element_outputs o JOIN runs r ON r.id = o.run_id
		 WHERE o.element = ?
		 ORDER BY r.started_at DESC, r.rowid DESC LIMIT 1`, element))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest output: %w", err)
	}
	return out, nil
}

func scanOutput(row scanner) (*ElementOutput, error) {
	var out ElementOutput
	if err := row.Scan(&out.RunID, &out.Element, &out.OutputPath, &out.ContentHash, &out.CodeHash, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
