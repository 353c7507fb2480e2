package engine

import (
	"sort"

	"github.com/nalyk/sequentialthinking/internal/model"
)

// ThoughtStore holds the in-memory thought state for one reasoning session:
// the main line in insertion order plus one list per branch. It has no side
// effects beyond its own maps; durability and bounds live elsewhere.
type ThoughtStore struct {
	history  []model.Thought
	branches map[string][]model.Thought
}

// NewThoughtStore returns an empty store.
func NewThoughtStore() *ThoughtStore {
	return &ThoughtStore{branches: make(map[string][]model.Thought)}
}

// Append adds a thought to the main line or, when BranchID is set, to that
// branch. A branch seen for the first time is seeded with a copy of every
// main-line thought numbered at or below BranchFromThought before the new
// thought is appended.
func (s *ThoughtStore) Append(t model.Thought) {
	if t.BranchID == "" {
		s.history = append(s.history, t)
		return
	}
	if _, ok := s.branches[t.BranchID]; !ok {
		s.branches[t.BranchID] = s.Seed(t.BranchFromThought)
	}
	s.branches[t.BranchID] = append(s.branches[t.BranchID], t)
}

// Seed returns copies of the main-line thoughts a branch forked at the given
// number would start with.
func (s *ThoughtStore) Seed(branchFrom int) []model.Thought {
	var seeded []model.Thought
	for _, t := range s.history {
		if t.Number <= branchFrom {
			seeded = append(seeded, t)
		}
	}
	return seeded
}

// SeedLength reports how many main-line thoughts a branch forked at the
// given number would copy.
func (s *ThoughtStore) SeedLength(branchFrom int) int {
	n := 0
	for _, t := range s.history {
		if t.Number <= branchFrom {
			n++
		}
	}
	return n
}

// ReviseInPlace overwrites the thought in the target line whose number
// matches t.RevisesThought. A revision naming a branch that does not exist
// yet seeds it and revises the seeded copy. It reports whether a matching
// thought existed; when none does, nothing is written.
func (s *ThoughtStore) ReviseInPlace(t model.Thought) bool {
	line := s.lineFor(t.BranchID)
	seeding := false
	if t.BranchID != "" && !s.HasBranch(t.BranchID) {
		line = s.Seed(t.BranchFromThought)
		seeding = true
	}
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].Number == t.RevisesThought {
			line[i] = t
			if seeding {
				s.branches[t.BranchID] = line
			}
			return true
		}
	}
	return false
}

// Get returns the latest main-line thought with the given number.
func (s *ThoughtStore) Get(number int) (model.Thought, bool) {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Number == number {
			return s.history[i], true
		}
	}
	return model.Thought{}, false
}

// AllInLine returns the thoughts of the given line in insertion order.
// An empty lineID addresses the main line. The returned slice is shared;
// callers must not mutate it.
func (s *ThoughtStore) AllInLine(lineID string) []model.Thought {
	return s.lineFor(lineID)
}

// HasBranch reports whether the branch already exists.
func (s *ThoughtStore) HasBranch(branchID string) bool {
	_, ok := s.branches[branchID]
	return ok
}

// BranchNames returns the branch ids in sorted order.
func (s *ThoughtStore) BranchNames() []string {
	names := make([]string, 0, len(s.branches))
	for name := range s.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the main-line length.
func (s *ThoughtStore) Len() int {
	return len(s.history)
}

func (s *ThoughtStore) lineFor(branchID string) []model.Thought {
	if branchID == "" {
		return s.history
	}
	return s.branches[branchID]
}

// numberExists reports whether any thought in the line carries the number,
// and separately whether a non-revision thought does.
func numberExists(line []model.Thought, number int) (found, nonRevision bool) {
	for _, t := range line {
		if t.Number != number {
			continue
		}
		found = true
		if !t.IsRevision {
			nonRevision = true
		}
	}
	return found, nonRevision
}
