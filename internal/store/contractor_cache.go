package store

import (
	"context"
	"fmt"
	"time"

	"github.com/homereno/renoterm/internal/model"
)

// ReplaceContractors swaps the cached roster for a freshly fetched one.
func (s *SQLiteStore) ReplaceContractors(ctx context.Context, roster []model.Contractor) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contractors"); err != nil {
		return fmt.Errorf("clearing contractor cache: %w", err)
	}

	const query = `
		INSERT INTO contractors (id, full_name, price, expertise, fetched_at)
		VALUES (?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing contractor insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, c := range roster {
		if _, err := stmt.ExecContext(ctx, c.ID, c.FullName, c.Price, string(c.Expertise), now); err != nil {
			return fmt.Errorf("caching contractor %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing contractor cache: %w", err)
	}
	return nil
}

// GetContractors returns the cached roster ordered by name.
func (s *SQLiteStore) GetContractors(ctx context.Context) ([]model.Contractor, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, full_name, price, expertise
		FROM contractors ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("querying contractor cache: %w", err)
	}
	defer rows.Close()

	var roster []model.Contractor
	for rows.Next() {
		var c model.Contractor
		var expertise string
		if err := rows.Scan(&c.ID, &c.FullName, &c.Price, &expertise); err != nil {
			return nil, fmt.Errorf("scanning contractor row: %w", err)
		}
		c.Expertise = model.Expertise(expertise)
		roster = append(roster, c)
	}
	return roster, rows.Err()
}
