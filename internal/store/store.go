// Package store is a local read-through cache of server data so the UI
// has something to render before the first fetch of a session returns.
// It is never consulted for mutations and queues nothing for replay; the
// backend stays the single source of truth.
package store

import (
	"context"

	"github.com/homereno/renoterm/internal/model"
)

// Store is the persistence interface for the cached roster and project
// list.
type Store interface {
	// ReplaceProjects replaces the cached project list with a freshly
	// fetched one.
	ReplaceProjects(ctx context.Context, projects []model.Project) error

	// GetProjects returns the cached project list in its fetched order.
	GetProjects(ctx context.Context) ([]model.Project, error)

	// GetProjectByID returns a single cached project, or nil when the
	// cache has no record of it.
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)

	// ReplaceContractors replaces the cached contractor roster.
	ReplaceContractors(ctx context.Context, roster []model.Contractor) error

	// GetContractors returns the cached roster.
	GetContractors(ctx context.Context) ([]model.Contractor, error)

	// Close releases the underlying database.
	Close() error
}
