package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/homereno/renoterm/internal/model"
)

// ReplaceProjects swaps the cached project list for a freshly fetched
// one, preserving the server's ordering.
func (s *SQLiteStore) ReplaceProjects(ctx context.Context, projects []model.Project) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("clearing project cache: %w", err)
	}

	const query = `
		INSERT INTO projects (
			id, name, address, budget, workers, progress, eta, finished,
			contractor_id, contractor_name, latitude, longitude,
			sort_order, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing project insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, p := range projects {
		_, err = stmt.ExecContext(ctx,
			p.ID, p.Name, p.Address, p.Budget, p.Workers, p.Progress,
			p.EtaWeeks, boolToInt(p.Finished),
			p.Contractor.ID, p.Contractor.Name,
			p.Latitude, p.Longitude,
			i, now,
		)
		if err != nil {
			return fmt.Errorf("caching project %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing project cache: %w", err)
	}
	return nil
}

// GetProjects returns the cached project list in its fetched order.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, name, address, budget, workers, progress, eta, finished,
		       contractor_id, contractor_name, latitude, longitude
		FROM projects ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("querying project cache: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProjectByID returns a single cached project, or nil when the cache
// has no record of it.
func (s *SQLiteStore) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT id, name, address, budget, workers, progress, eta, finished,
		       contractor_id, contractor_name, latitude, longitude
		FROM projects WHERE id = ?`, id)

	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// scanProject reads one project row. It takes the Scan func so the same
// code serves both Row and Rows.
func scanProject(scan func(dest ...interface{}) error) (model.Project, error) {
	var p model.Project
	var finished int
	err := scan(
		&p.ID, &p.Name, &p.Address, &p.Budget, &p.Workers, &p.Progress,
		&p.EtaWeeks, &finished,
		&p.Contractor.ID, &p.Contractor.Name,
		&p.Latitude, &p.Longitude,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("scanning project row: %w", err)
	}
	p.Finished = finished != 0
	return p.Normalize(), nil
}
