package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalyk/sequentialthinking/internal/model"
)

func TestSanitizeContent(t *testing.T) {
	assert.Equal(t, "abc", SanitizeContent("a\x00b\x1bc"))
	assert.Equal(t, "line1\nline2\ttab", SanitizeContent("line1\nline2\ttab"))
	assert.Equal(t, "", SanitizeContent("\x07\x08"))
}

func TestValidateThoughtBounds(t *testing.T) {
	s := NewThoughtStore()

	cases := []struct {
		name  string
		mut   func(*model.Thought)
		field string
	}{
		{"zero number", func(th *model.Thought) { th.Number = 0 }, "thoughtNumber"},
		{"negative number", func(th *model.Thought) { th.Number = -3 }, "thoughtNumber"},
		{"empty content", func(th *model.Thought) { th.Content = "" }, "thought"},
		{"oversized content", func(th *model.Thought) { th.Content = strings.Repeat("x", MaxContentLength+1) }, "thought"},
		{"zero totalThoughts", func(th *model.Thought) { th.TotalThoughts = 0 }, "totalThoughts"},
		{"unknown type", func(th *model.Thought) { th.Type = "guess" }, "thoughtType"},
		{"unknown verification result", func(th *model.Thought) {
			th.Type = model.ThoughtTypeVerification
			th.VerificationResult = "maybe"
		}, "verificationResult"},
		{"oversized branch id", func(th *model.Thought) {
			th.BranchID = strings.Repeat("b", MaxBranchIDLen+1)
			th.BranchFromThought = 1
		}, "branchId"},
		{"too many relatedTo", func(th *model.Thought) { th.RelatedTo = make([]int, MaxRelatedTo+1) }, "relatedTo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			th := plainThought(1, "ok")
			tc.mut(&th)
			err := validateThought(th, s)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateLogicalConsistency(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "first"))

	t.Run("isRevision without revisesThought", func(t *testing.T) {
		th := plainThought(2, "rev")
		th.IsRevision = true
		var verr *ValidationError
		require.ErrorAs(t, validateThought(th, s), &verr)
		assert.Equal(t, "revisesThought", verr.Field)
	})

	t.Run("revisesThought without isRevision", func(t *testing.T) {
		th := plainThought(2, "rev")
		th.RevisesThought = 1
		var verr *ValidationError
		require.ErrorAs(t, validateThought(th, s), &verr)
		assert.Equal(t, "isRevision", verr.Field)
	})

	t.Run("branchFromThought without branchId", func(t *testing.T) {
		th := plainThought(2, "fork")
		th.BranchFromThought = 1
		var verr *ValidationError
		require.ErrorAs(t, validateThought(th, s), &verr)
		assert.Equal(t, "branchId", verr.Field)
	})

	t.Run("new branch without branchFromThought", func(t *testing.T) {
		th := plainThought(2, "fork")
		th.BranchID = "alt"
		var verr *ValidationError
		require.ErrorAs(t, validateThought(th, s), &verr)
		assert.Equal(t, "branchFromThought", verr.Field)
	})

	t.Run("verificationResult on plain thought", func(t *testing.T) {
		th := plainThought(2, "claim")
		th.VerificationResult = model.VerificationConfirmed
		var verr *ValidationError
		require.ErrorAs(t, validateThought(th, s), &verr)
		assert.Equal(t, "verificationResult", verr.Field)
	})
}

func TestValidateDuplicateNumber(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "first"))

	dup := plainThought(1, "again")
	var verr *ValidationError
	require.ErrorAs(t, validateThought(dup, s), &verr)
	assert.Equal(t, "thoughtNumber", verr.Field)
}

func TestValidateRevisionReferentialIntegrity(t *testing.T) {
	s := NewThoughtStore()

	rev := plainThought(5, "revise nothing")
	rev.IsRevision = true
	rev.RevisesThought = 5

	var nferr *NotFoundError
	require.ErrorAs(t, validateThought(rev, s), &nferr)
	assert.Equal(t, "thought", nferr.Kind)

	// Once thought 5 exists the same submission passes.
	for i := 1; i <= 5; i++ {
		s.Append(plainThought(i, "step"))
	}
	require.NoError(t, validateThought(rev, s))
}

func TestValidateBranchFromMissing(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "only"))

	th := plainThought(2, "fork")
	th.BranchID = "alt"
	th.BranchFromThought = 9

	var nferr *NotFoundError
	require.ErrorAs(t, validateThought(th, s), &nferr)
	assert.Equal(t, "thought", nferr.Kind)
}

func TestValidateVerificationLinkage(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "plain step"))

	hyp := plainThought(2, "maybe the cache is stale")
	hyp.Type = model.ThoughtTypeHypothesis
	s.Append(hyp)

	t.Run("referencing a non-hypothesis is rejected", func(t *testing.T) {
		v := plainThought(3, "checked")
		v.Type = model.ThoughtTypeVerification
		v.VerificationResult = model.VerificationConfirmed
		v.RelatedTo = []int{1}
		var nferr *NotFoundError
		require.ErrorAs(t, validateThought(v, s), &nferr)
		assert.Equal(t, "hypothesis", nferr.Kind)
	})

	t.Run("referencing an existing hypothesis passes", func(t *testing.T) {
		v := plainThought(3, "checked")
		v.Type = model.ThoughtTypeVerification
		v.VerificationResult = model.VerificationConfirmed
		v.RelatedTo = []int{2}
		require.NoError(t, validateThought(v, s))
	})
}

func TestValidateVerificationOpeningBranch(t *testing.T) {
	s := NewThoughtStore()
	hyp := plainThought(1, "maybe the cache is stale")
	hyp.Type = model.ThoughtTypeHypothesis
	s.Append(hyp)
	s.Append(plainThought(2, "narrow it down"))

	v := plainThought(3, "confirmed on a fork")
	v.Type = model.ThoughtTypeVerification
	v.VerificationResult = model.VerificationConfirmed
	v.RelatedTo = []int{1}
	v.BranchID = "alt"
	v.BranchFromThought = 2

	// The branch does not exist yet; the hypothesis arrives with the seed.
	require.NoError(t, validateThought(v, s))
}

func TestValidateNewBranchSeedNumberCollision(t *testing.T) {
	s := NewThoughtStore()
	for i := 1; i <= 3; i++ {
		s.Append(plainThought(i, "main"))
	}

	th := plainThought(2, "fork reusing a seeded number")
	th.BranchID = "alt"
	th.BranchFromThought = 3

	var verr *ValidationError
	require.ErrorAs(t, validateThought(th, s), &verr)
	assert.Equal(t, "thoughtNumber", verr.Field)
}

func TestValidateNeverMutates(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "first"))

	bad := plainThought(1, "duplicate")
	_ = validateThought(bad, s)

	require.Equal(t, 1, s.Len())
	assert.Empty(t, s.BranchNames())
}

func TestValidateDirectivesExclusive(t *testing.T) {
	sub := &model.Submission{
		SaveSequence: &model.SaveDirective{Title: "a"},
		LoadSequence: &model.LoadDirective{ID: "x"},
	}
	var verr *ValidationError
	require.ErrorAs(t, validateDirectives(sub), &verr)
}

func TestValidateSearchLimitCap(t *testing.T) {
	sub := &model.Submission{
		SearchSequence: &model.SearchDirective{Query: "q", Limit: MaxSearchLimit + 1},
	}
	var lerr *LimitExceededError
	require.ErrorAs(t, validateDirectives(sub), &lerr)
	assert.Equal(t, MaxSearchLimit, lerr.Max)
}
