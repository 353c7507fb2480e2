package store

import (
	"context"
	"fmt"

	"github.com/nalyk/sequentialthinking/internal/model"
)

// Export returns a sequence and its thoughts as one bundle.
func (s *SQLiteStore) Export(ctx context.Context, sequenceID string) (*model.ExportBundle, error) {
	seq, err := s.LoadSequence(ctx, sequenceID)
	if err != nil {
		return nil, err
	}
	thoughts, err := s.LoadThoughts(ctx, sequenceID)
	if err != nil {
		return nil, fmt.Errorf("load thoughts: %w", err)
	}
	return &model.ExportBundle{Sequence: *seq, Thoughts: thoughts}, nil
}

// Import stores a bundle under a freshly allocated sequence id, re-parenting
// every thought to it in bundle order. Existing sequences are never
// overwritten.
func (s *SQLiteStore) Import(ctx context.Context, bundle *model.ExportBundle) (*model.Sequence, error) {
	seq, err := s.CreateSequence(ctx, bundle.Sequence.Title, bundle.Sequence.Description)
	if err != nil {
		return nil, err
	}

	for _, t := range bundle.Thoughts {
		if _, err := s.SaveThought(ctx, t.Thought, seq.ID); err != nil {
			return nil, fmt.Errorf("import thought %d: %w", t.Number, err)
		}
	}

	status := bundle.Sequence.Status
	if status == "" {
		status = model.SequenceActive
	}
	if err := s.TouchSequence(ctx, seq.ID, len(bundle.Thoughts), status); err != nil {
		return nil, err
	}
	seq.ThoughtCount = len(bundle.Thoughts)
	seq.Status = status
	return seq, nil
}
