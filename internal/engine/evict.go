package engine

import (
	"sort"

	"github.com/nalyk/sequentialthinking/internal/config"
)

// Prune enforces the configured bounds after an accepted mutation, dropping
// the oldest in-memory entries first. activeBranch names the branch the
// current operation wrote to; it is exempt from branch eviction for this
// call. Pruning never touches durable rows.
func Prune(s *ThoughtStore, limits config.Limits, activeBranch string) {
	if excess := len(s.history) - limits.MaxThoughtHistory; excess > 0 {
		s.history = s.history[excess:]
	}

	if len(s.branches) > limits.MaxBranches {
		pruneBranches(s, limits.MaxBranches, activeBranch)
	}

	for name, line := range s.branches {
		if excess := len(line) - limits.MaxThoughtsPerBranch; excess > 0 {
			s.branches[name] = line[excess:]
		}
	}
}

// pruneBranches deletes the least recently advanced branches until the count
// is at the limit. Recency is the number of a branch's last thought, not
// wall-clock time.
func pruneBranches(s *ThoughtStore, max int, activeBranch string) {
	type ranked struct {
		name string
		last int
	}
	candidates := make([]ranked, 0, len(s.branches))
	for name, line := range s.branches {
		if name == activeBranch {
			continue
		}
		last := 0
		if len(line) > 0 {
			last = line[len(line)-1].Number
		}
		candidates = append(candidates, ranked{name: name, last: last})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].last != candidates[j].last {
			return candidates[i].last < candidates[j].last
		}
		return candidates[i].name < candidates[j].name
	})

	for _, c := range candidates {
		if len(s.branches) <= max {
			break
		}
		delete(s.branches, c.name)
	}
}
