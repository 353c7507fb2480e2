package engine

import (
	"sort"

	"github.com/nalyk/sequentialthinking/internal/model"
)

// SnapshotVerification projects the hypothesis/verification state of one
// line. A hypothesis with at least one verification takes the result of the
// most recently submitted verification referencing it (highest number,
// insertion order breaking ties); hypotheses nobody references are listed
// as unverified. The projection is recomputed fresh on every call and never
// mutates the line.
func SnapshotVerification(line []model.Thought) model.VerificationWorkflow {
	type latest struct {
		number int
		order  int
		result string
	}

	hypotheses := make(map[int]*latest)
	for _, t := range line {
		if t.Type == model.ThoughtTypeHypothesis {
			if _, ok := hypotheses[t.Number]; !ok {
				hypotheses[t.Number] = nil
			}
		}
	}

	for order, t := range line {
		if t.Type != model.ThoughtTypeVerification {
			continue
		}
		result := t.VerificationResult
		if result == "" {
			result = model.VerificationPending
		}
		for _, ref := range t.RelatedTo {
			if _, ok := hypotheses[ref]; !ok {
				continue
			}
			cur := hypotheses[ref]
			if cur == nil || t.Number > cur.number || (t.Number == cur.number && order > cur.order) {
				hypotheses[ref] = &latest{number: t.Number, order: order, result: result}
			}
		}
	}

	var snap model.VerificationWorkflow
	snap.UnverifiedHypotheses = []int{}
	for number, v := range hypotheses {
		if v == nil {
			snap.UnverifiedHypotheses = append(snap.UnverifiedHypotheses, number)
			continue
		}
		switch v.result {
		case model.VerificationConfirmed:
			snap.Confirmed++
		case model.VerificationRefuted:
			snap.Refuted++
		case model.VerificationPartial:
			snap.Partial++
		default:
			snap.Pending++
		}
	}
	sort.Ints(snap.UnverifiedHypotheses)
	return snap
}
