// Package store persists inspection records. Each record is stored whole as
// one JSON document keyed by id; every save replaces the full document, so a
// read always sees a record that satisfied the model invariants when it was
// written.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"carspect/internal/domain"
)

type InspectionStore struct {
	db *sql.DB
}

func NewInspectionStore(db *sql.DB) *InspectionStore {
	return &InspectionStore{db: db}
}

// Put inserts or fully replaces the record.
func (s *InspectionStore) Put(ctx context.Context, insp *domain.Inspection) error {
	data, err := json.Marshal(insp)
	if err != nil {
		return fmt.Errorf("failed to encode inspection: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO inspections (id, status, created_at, data) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET status = excluded.status, data = excluded.data
	`, insp.ID, string(insp.Status), insp.CreatedAt, string(data))
	if err != nil {
		return fmt.Errorf("failed to put inspection: %w", err)
	}
	return nil
}

// Get returns the record with the given id, or nil when absent.
func (s *InspectionStore) Get(ctx context.Context, id string) (*domain.Inspection, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM inspections WHERE id = ?
	`, id).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}

	return decode(data)
}

// List returns every record, newest first.
func (s *InspectionStore) List(ctx context.Context) ([]*domain.Inspection, error) {
	return s.list(ctx, `
		SELECT data FROM inspections ORDER BY created_at DESC, id
	`)
}

// ListByStatus returns records with the given status, newest first.
func (s *InspectionStore) ListByStatus(ctx context.Context, status domain.InspectionStatus) ([]*domain.Inspection, error) {
	return s.list(ctx, `
		SELECT data FROM inspections WHERE status = ? ORDER BY created_at DESC, id
	`, string(status))
}

func (s *InspectionStore) list(ctx context.Context, query string, args ...any) ([]*domain.Inspection, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}
	defer rows.Close()

	var inspections []*domain.Inspection
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		insp, err := decode(data)
		if err != nil {
			return nil, err
		}
		inspections = append(inspections, insp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inspections: %w", err)
	}

	return inspections, nil
}

func (s *InspectionStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM inspections WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inspection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("inspection not found")
	}

	return nil
}

func decode(data string) (*domain.Inspection, error) {
	insp := &domain.Inspection{}
	if err := json.Unmarshal([]byte(data), insp); err != nil {
		return nil, fmt.Errorf("failed to decode stored inspection: %w", err)
	}
	return insp, nil
}
