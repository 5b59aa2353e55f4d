// Package store persists computed layouts so the HTTP API can serve them
// by ID.
//
// Two backends implement [Store]:
//   - [MemoryStore]: process-local, for tests and single-instance servers
//   - [MongoStore]: MongoDB collection, for shared deployments
//
// IDs are random UUIDs assigned on Save.
package store

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/graph"
)

// ErrNotFound is returned (wrapped in a NOT_FOUND error) for unknown IDs.
var ErrNotFound = stderrors.New("layout not found")

// Store saves and loads layouts.
type Store interface {
	// Save stores l under a new ID and returns it. l.ID is ignored.
	Save(ctx context.Context, l graph.Layout) (string, error)

	// Get loads the layout with the given ID.
	Get(ctx context.Context, id string) (graph.Layout, error)

	// Delete removes a layout. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID returns a fresh layout ID.
func NewID() string { return uuid.NewString() }

// ValidateID rejects IDs that are not UUIDs with NOT_FOUND, since no such
// layout can exist.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(id)
	}
	return nil
}

func notFound(id string) error {
	return errors.Wrap(errors.ErrCodeNotFound, ErrNotFound, "layout %s not found", id)
}
