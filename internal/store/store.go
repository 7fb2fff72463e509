// Package store provides durable persistence for research log entries.
// Two backends are available: a pure-Go SQLite database (the default) and a
// Neo4j graph database that keeps manual relations as first-class
// relationships.
package store

import (
	"context"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
)

// Filters narrows a List call. Zero values match everything.
type Filters struct {
	Category entry.Category
	Tag      string
}

// Store is the record store consumed by the HTTP layer and the correlation
// engine. List returns entries sorted by TimeAdded descending.
type Store interface {
	List(ctx context.Context, f Filters) ([]entry.Entry, error)
	Get(ctx context.Context, id string) (*entry.Entry, error)
	Create(ctx context.Context, in entry.CreateInput) (*entry.Entry, error)
	Update(ctx context.Context, id string, in entry.UpdateInput) (*entry.Entry, error)
	AllTags(ctx context.Context) ([]string, error)
	Close() error
}

func matchesTag(tags []string, tag string) bool {
	if tag == "" {
		return true
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
