package docstore

import (
	"context"
	"encoding/json"

	"github.com/siegestats/backend/internal/domain"
)

// Store persists one document per (category, profile) pair.
//
// Documents are opaque JSON at this layer; the app layer owns the typed shape.
// A stored document may be JSON null: "this profile is known to have no data in
// this category" is cached like any other result.
type Store interface {
	// IsOnline reports whether the backend is currently reachable. When it is
	// not, callers bypass caching entirely rather than fail.
	IsOnline(ctx context.Context) bool

	// Get returns the stored document. The second return is false when no
	// document exists for the pair.
	Get(ctx context.Context, category domain.Category, profileID string) (json.RawMessage, bool, error)

	// Insert creates the first document for the pair.
	Insert(ctx context.Context, category domain.Category, profileID string, document json.RawMessage) error

	// Update replaces the existing document for the pair.
	Update(ctx context.Context, category domain.Category, profileID string, document json.RawMessage) error
}
