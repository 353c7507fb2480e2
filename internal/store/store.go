package store

import (
	"context"

	"github.com/nalyk/sequentialthinking/internal/model"
)

// Store defines the durable sequence/thought storage interface the engine
// writes through. SQLiteStore is the only production implementation; tests
// substitute mocks.
type Store interface {
	// CreateSequence inserts a new active sequence.
	CreateSequence(ctx context.Context, title, description string) (*model.Sequence, error)

	// LoadSequence returns a sequence by id, or ErrSequenceNotFound.
	LoadSequence(ctx context.Context, id string) (*model.Sequence, error)

	// LoadThoughts returns a sequence's thoughts in submission order.
	LoadThoughts(ctx context.Context, sequenceID string) ([]model.ThoughtRecord, error)

	// SaveThought appends one thought row; callers supply thoughts in
	// submission order, one writer per sequence.
	SaveThought(ctx context.Context, t model.Thought, sequenceID string) (*model.ThoughtRecord, error)

	// TouchSequence updates count, status, and modification time.
	TouchSequence(ctx context.Context, id string, thoughtCount int, status string) error

	// DeleteSequence removes a sequence and cascades to its thoughts.
	DeleteSequence(ctx context.Context, id string) error

	// Export bundles a sequence with its thoughts.
	Export(ctx context.Context, sequenceID string) (*model.ExportBundle, error)

	// Import stores a bundle under a fresh id.
	Import(ctx context.Context, bundle *model.ExportBundle) (*model.Sequence, error)

	// ListSequences returns the most recently modified sequences.
	ListSequences(ctx context.Context, limit int) ([]model.Sequence, error)

	// Search matches sequences by fuzzy title/description score or by
	// full-text thought content.
	Search(ctx context.Context, p SearchParams) ([]model.Sequence, error)

	// Close closes the store.
	Close() error
}
