// Package store keeps named diagrams.
//
// The CLI reads diagrams straight from files; the HTTP server reads them
// from a [Store] so a deployment can choose where diagrams live:
//
//   - [DirStore]: a directory of .json, .yaml or .toml files, named by stem
//   - [MongoStore]: one MongoDB document per diagram, keyed by name
//
// Names are validated with [errors.ValidateDiagramName] before they reach a
// backend, so they are safe to use as file names and document IDs.
//
// [errors.ValidateDiagramName]: github.com/matzehuels/tocview/pkg/errors.ValidateDiagramName
package store

import (
	"context"

	"github.com/matzehuels/tocview/pkg/toc"
)

// Store is a collection of named diagrams. Implementations must be safe for
// concurrent use.
type Store interface {
	// List returns the names of all stored diagrams in sorted order.
	List(ctx context.Context) ([]string, error)

	// Get returns the diagram called name. A missing diagram is reported
	// with the DIAGRAM_NOT_FOUND code.
	Get(ctx context.Context, name string) (toc.Data, error)

	// Put creates or replaces the diagram called name.
	Put(ctx context.Context, name string, d toc.Data) error

	// Delete removes the diagram called name. Deleting a missing diagram is
	// not an error.
	Delete(ctx context.Context, name string) error

	// Close releases resources held by the store.
	Close() error
}
